package middlewarex

import (
	"net"
	"net/http"
	"strings"

	"numberlookup/pkg/contextx"
)

const headerNameForwardedFor = "X-Forwarded-For"

// ClientIP resolves the client address once per request and stores it in the
// context. The first entry of X-Forwarded-For wins when a proxy is in front;
// otherwise the peer address is used as is.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := resolveClientIP(r)

		ctx := contextx.WithClientIP(r.Context(), contextx.ClientIP(ip))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(headerNameForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port (unix sockets, tests).
		return r.RemoteAddr
	}

	return host
}
