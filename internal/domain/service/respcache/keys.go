package respcache

import "strings"

// Keys are derived from the lookup kind plus the canonical identifier so that
// identical logical queries collide regardless of incidental formatting:
// components are case-folded, whitespace is collapsed to underscores, and
// optional components join in a fixed order.

func PhoneKey(e164 string) string {
	return "phone_us:" + e164
}

func PeopleKey(firstName, lastName, city, state string) string {
	key := "people:" + canonical(strings.TrimSpace(firstName+" "+lastName))

	return appendComponents(key, city, state)
}

func AddressKey(street, city, state, zip string) string {
	key := "address:" + canonical(street) + ":" + canonical(city) + ":" + canonical(state)

	return appendComponents(key, zip)
}

func BackgroundKey(firstName, lastName, city, state string) string {
	key := "background:" + canonical(strings.TrimSpace(firstName+" "+lastName))

	return appendComponents(key, city, state)
}

func appendComponents(key string, components ...string) string {
	for _, c := range components {
		if c = canonical(c); c != "" {
			key += ":" + c
		}
	}

	return key
}

func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
