package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/lookup"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/httpx/reply"
	"numberlookup/pkg/httpx/req"
	"numberlookup/pkg/rest"
)

type phoneService interface {
	Lookup(ctx context.Context, meta lookup.RequestMeta, raw string) (entity.LookupResult, error)
	TrackAffiliateClick(ctx context.Context, meta lookup.RequestMeta, phone, affiliateName, clickID string) (string, error)
}

type LookupServer struct {
	phones phoneService
}

func NewLookupServer(phones phoneService) LookupServer {
	return LookupServer{
		phones: phones,
	}
}

func (s LookupServer) getPhoneLookup(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	result, err := s.phones.Lookup(ctx, requestMeta(r), chi.URLParam(r, "number"))
	if err != nil {
		return asFailure(fmt.Errorf("phoneService.Lookup: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPhoneLookup(result))

	return nil
}

func (s LookupServer) postAffiliateClick(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AffiliateClickRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	redirectURL, err := s.phones.TrackAffiliateClick(ctx, requestMeta(r), request.PhoneNumber, request.AffiliateName, request.ClickID)
	if err != nil {
		return asFailure(fmt.Errorf("phoneService.TrackAffiliateClick: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.AffiliateClickAck{
		Success:     true,
		Message:     "Click tracked",
		RedirectURL: redirectURL,
	})

	return nil
}

// requestMeta pulls the caller identity resolved by the ClientIP middleware.
func requestMeta(r *http.Request) lookup.RequestMeta {
	meta := lookup.RequestMeta{
		UserAgent: r.UserAgent(),
	}

	if ip, err := contextx.ClientIPFromContext(r.Context()); err == nil {
		meta.IP = ip.String()
		return meta
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		meta.IP = host
	} else {
		meta.IP = r.RemoteAddr
	}

	return meta
}
