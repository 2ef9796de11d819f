package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"numberlookup/pkg/contextx"
	"numberlookup/pkg/middlewarex"
)

func TestClientIP(t *testing.T) {
	testCases := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		want         string
	}{
		{
			name:       "peer address",
			remoteAddr: "203.0.113.7:61234",
			want:       "203.0.113.7",
		},
		{
			name:         "single forwarded entry",
			remoteAddr:   "10.0.0.1:80",
			forwardedFor: "198.51.100.23",
			want:         "198.51.100.23",
		},
		{
			name:         "first forwarded entry wins",
			remoteAddr:   "10.0.0.1:80",
			forwardedFor: "198.51.100.23, 10.0.0.1, 172.16.0.1",
			want:         "198.51.100.23",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.7",
			want:       "203.0.113.7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var got contextx.ClientIP

			handler := middlewarex.ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ip, err := contextx.ClientIPFromContext(r.Context())
				rq.NoError(err)
				got = ip
			}))

			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwardedFor != "" {
				r.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}

			handler.ServeHTTP(httptest.NewRecorder(), r)

			rq.Equal(contextx.ClientIP(tc.want), got)
		})
	}
}
