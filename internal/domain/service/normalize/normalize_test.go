package normalize_test

import (
	"errors"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/normalize"
	"numberlookup/pkg/errcodes"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "formatted US number", input: "(718) 222-2222", want: "7182222222"},
		{name: "dots and dashes", input: "718.222-2222", want: "7182222222"},
		{name: "leading plus kept", input: "+1 718 222 2222", want: "+17182222222"},
		{name: "repeated plus collapsed", input: "++1718222-2222", want: "+17182222222"},
		{name: "inner plus dropped", input: "1718+2222222", want: "17182222222"},
		{name: "surrounding whitespace", input: "  +17182222222  ", want: "+17182222222"},
		{name: "letters dropped", input: "call 718-222-2222 now", want: "7182222222"},
		{name: "empty", input: "", want: ""},
		{name: "lone plus", input: "+", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize.Clean(tc.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := normalize.New("US")

	t.Run("formatted US number", func(t *testing.T) {
		rq := require.New(t)

		num, err := n.Normalize("(718) 222-2222")
		rq.NoError(err)

		rq.Equal("+17182222222", num.E164)
		rq.Equal("(718) 222-2222", num.National)
		rq.Equal("US", num.Region)
		rq.Equal("718", num.AreaCode)
		rq.True(num.Valid)
	})

	t.Run("already canonical input is idempotent", func(t *testing.T) {
		rq := require.New(t)

		first, err := n.Normalize("+17182222222")
		rq.NoError(err)

		second, err := n.Normalize(first.E164)
		rq.NoError(err)
		rq.Equal(first.E164, second.E164)
		rq.Equal(first.AreaCode, second.AreaCode)
	})

	t.Run("deterministic", func(t *testing.T) {
		rq := require.New(t)

		a, err := n.Normalize("718-222-2222")
		rq.NoError(err)
		b, err := n.Normalize("718-222-2222")
		rq.NoError(err)
		rq.Equal(a, b)
	})

	t.Run("toll free line type", func(t *testing.T) {
		rq := require.New(t)

		num, err := n.Normalize("800-444-4444")
		rq.NoError(err)
		rq.Equal(entity.LineTypeTollFree, num.LineType)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := n.Normalize("123")
		requireCode(t, err, errcodes.InvalidPhoneFormat)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := n.Normalize("")
		requireCode(t, err, errcodes.InvalidPhoneFormat)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := n.Normalize("+1234567890123456")
		requireCode(t, err, errcodes.InvalidPhoneFormat)
	})

	t.Run("well formed but not a valid number", func(t *testing.T) {
		// 555-01XX block is unassigned.
		_, err := n.Normalize("+1 000 555 0100")
		requireCode(t, err, errcodes.PhoneNotValid)
	})

	t.Run("valid UK number rejected by region restriction", func(t *testing.T) {
		_, err := n.Normalize("+44 20 7946 0958")
		requireCode(t, err, errcodes.UnsupportedRegion)
	})
}

func requireCode(t *testing.T, err error, want failure.ErrorCode) {
	t.Helper()

	rq := require.New(t)
	rq.Error(err)

	var appErr *domain.AppError
	rq.True(errors.As(err, &appErr), "expected *domain.AppError, got %T", err)
	rq.Equal(want, appErr.Code)
}
