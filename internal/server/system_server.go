package server

import (
	"net/http"
	"time"

	"numberlookup/internal/domain/service/areacode"
	"numberlookup/pkg/httpx/reply"
	"numberlookup/pkg/rest"
)

type SystemServer struct {
	areaCodes areacode.Resolver
	version   string
	now       func() time.Time
}

func NewSystemServer(areaCodes areacode.Resolver, version string) SystemServer {
	return SystemServer{
		areaCodes: areaCodes,
		version:   version,
		now:       time.Now,
	}
}

func (s SystemServer) WithClock(now func() time.Time) SystemServer {
	s.now = now
	return s
}

func (s SystemServer) getHealth(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Health{
		Status:             "healthy",
		Message:            "API supports US phone numbers only",
		Timestamp:          s.now().UTC().Format(time.RFC3339),
		Version:            s.version,
		SupportedCountries: []string{"United States"},
		AreaCodesSupported: s.areaCodes.Size(),
	})

	return nil
}
