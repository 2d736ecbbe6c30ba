package dto

import "github.com/novachat/nova-chat-server/internal/application/auth"

type RegisterResponse struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds
	UserID       string `json:"user_id"`
	Login        string `json:"login"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       string `json:"user_id"`
}

func NewLoginResponse(res auth.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		TokenType:    res.Tokens.TokenType,
		ExpiresIn:    res.Tokens.ExpiresIn,
		UserID:       res.User.ID,
		Login:        res.User.Login,
	}
}

func NewRefreshResponse(res auth.RefreshResult) RefreshResponse {
	return RefreshResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		TokenType:    res.Tokens.TokenType,
		ExpiresIn:    res.Tokens.ExpiresIn,
		UserID:       res.UserID,
	}
}
