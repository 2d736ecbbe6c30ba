// Package user implements the directory listing and search flows.
package user

import (
	"context"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/validation"
)

const (
	PageDefault = 1

	ListLimitDefault = 50
	ListLimitMax     = 100

	SearchLimitDefault = 20
	SearchLimitMax     = 50
)

type Repo interface {
	List(ctx context.Context, page, limit int, search string) ([]domain.User, int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
}

type Service struct {
	users Repo
}

func NewService(users Repo) *Service {
	return &Service{users: users}
}

// Pagination is the directory page descriptor.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type ListResult struct {
	Users      []domain.User
	Pagination Pagination
}

// List returns one directory page. Out-of-range paging inputs are clamped,
// never rejected.
func (s *Service) List(ctx context.Context, page, limit int, search string) (ListResult, error) {
	if page < 1 {
		page = PageDefault
	}
	limit = clamp(limit, ListLimitDefault, ListLimitMax)
	search = validation.SecurityClean(search)

	users, total, err := s.users.List(ctx, page, limit, search)
	if err != nil {
		return ListResult{}, err
	}

	totalPages := (total + limit - 1) / limit
	return ListResult{
		Users: users,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

type SearchResult struct {
	Users []domain.User
	Query string
	Limit int
}

// Search requires a non-empty query after sanitization.
func (s *Service) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	query = validation.SecurityClean(query)
	if query == "" {
		return SearchResult{}, domain.ErrMissingQuery()
	}
	limit = clamp(limit, SearchLimitDefault, SearchLimitMax)

	users, err := s.users.Search(ctx, query, limit)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Users: users, Query: query, Limit: limit}, nil
}

func clamp(v, def, max int) int {
	if v == 0 {
		return def
	}
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}
