package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/domain/service/search"
	"numberlookup/pkg/httpx/reply"
)

type searchService interface {
	People(ctx context.Context, meta search.Meta, query entity.PeopleQuery) (entity.PeopleSearchResult, error)
	Address(ctx context.Context, meta search.Meta, query entity.Address) (entity.AddressSearchResult, error)
	Background(ctx context.Context, meta search.Meta, query entity.PeopleQuery) (entity.BackgroundReport, error)
}

type SearchServer struct {
	searches searchService
}

func NewSearchServer(searches searchService) SearchServer {
	return SearchServer{
		searches: searches,
	}
}

func (s SearchServer) getPeopleSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	result, err := s.searches.People(ctx, searchMeta(r), peopleQuery(r))
	if err != nil {
		return asFailure(fmt.Errorf("searchService.People: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPeopleSearch(result))

	return nil
}

func (s SearchServer) getAddressSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := entity.Address{
		Street: queryParam(r, "street"),
		City:   queryParam(r, "city"),
		State:  queryParam(r, "state"),
		Zip:    queryParam(r, "zip_code"),
	}

	result, err := s.searches.Address(ctx, searchMeta(r), query)
	if err != nil {
		return asFailure(fmt.Errorf("searchService.Address: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAddressSearch(result))

	return nil
}

func (s SearchServer) getBackgroundCheck(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	result, err := s.searches.Background(ctx, searchMeta(r), peopleQuery(r))
	if err != nil {
		return asFailure(fmt.Errorf("searchService.Background: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBackgroundCheck(result))

	return nil
}

func peopleQuery(r *http.Request) entity.PeopleQuery {
	return entity.PeopleQuery{
		FirstName: queryParam(r, "first_name"),
		LastName:  queryParam(r, "last_name"),
		City:      queryParam(r, "city"),
		State:     queryParam(r, "state"),
	}
}

func queryParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func searchMeta(r *http.Request) search.Meta {
	meta := requestMeta(r)

	return search.Meta{
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}
}
