package middlewarex

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberlookup/pkg/contextx"
	"numberlookup/pkg/logx"
)

func loggedRequest(t *testing.T, middleware func(http.Handler) http.Handler, body string) string {
	t.Helper()

	var logOutput bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logOutput, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"number":"+17182222222"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/search/phone", strings.NewReader(body))
	req = req.WithContext(contextx.WithLogger(req.Context(), log))

	rec := httptest.NewRecorder()
	middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	return logOutput.String()
}

func TestRequestLoggingMasksSensitiveFields(t *testing.T) {
	logged := loggedRequest(t,
		RequestLogging(logx.NewSensitiveDataMasker(), 4096),
		`{"number": "+17182222222"}`,
	)

	assert.Contains(t, logged, "http-request")
	assert.NotContains(t, logged, "+17182222222")
}

func TestRequestLoggingNopMaskerKeepsBody(t *testing.T) {
	logged := loggedRequest(t,
		RequestLogging(logx.NewNopSensitiveDataMasker(), 4096),
		`{"number": "+17182222222"}`,
	)

	assert.Contains(t, logged, "+17182222222")
}

func TestResponseLogging(t *testing.T) {
	logged := loggedRequest(t,
		ResponseLogging(logx.NewNopSensitiveDataMasker(), 4096),
		"",
	)

	assert.Contains(t, logged, "http-response")
	assert.Contains(t, logged, "response-status=200")
}

func TestResponseLoggingTruncatesBody(t *testing.T) {
	logged := loggedRequest(t,
		ResponseLogging(logx.NewNopSensitiveDataMasker(), 10),
		"",
	)

	assert.Contains(t, logged, "http-response")
	assert.NotContains(t, logged, "+17182222222")
}
