package dto

import (
	"github.com/novachat/nova-chat-server/internal/application/user"
	"github.com/novachat/nova-chat-server/internal/domain"
)

// UserView exposes only public account fields; the password hash never
// leaves the server.
type UserView struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
}

type UserListResponse struct {
	Users      []UserView      `json:"users"`
	Pagination user.Pagination `json:"pagination"`
}

type SearchMeta struct {
	Query string `json:"query"`
	Count int    `json:"count"`
	Limit int    `json:"limit"`
}

type UserSearchResponse struct {
	Users []UserView `json:"users"`
	Meta  SearchMeta `json:"meta"`
}

func NewUserListResponse(res user.ListResult) UserListResponse {
	return UserListResponse{Users: userViews(res.Users), Pagination: res.Pagination}
}

func NewUserSearchResponse(res user.SearchResult) UserSearchResponse {
	return UserSearchResponse{
		Users: userViews(res.Users),
		Meta:  SearchMeta{Query: res.Query, Count: len(res.Users), Limit: res.Limit},
	}
}

func userViews(users []domain.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, UserView{UserID: u.ID, Login: u.Login})
	}
	return out
}
