package middleware

import "context"

type ctxKey string

const (
	ctxUserID      ctxKey = "user_id"
	ctxLogin       ctxKey = "login"
	ctxAccessToken ctxKey = "access_token"
)

func WithUser(ctx context.Context, userID, login string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxLogin, login)
	return ctx
}

// WithAccessToken keeps the raw token around so logout/delete can blacklist
// the exact credential that authorized them.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxAccessToken, token)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserID).(string)
	return v, ok && v != ""
}

func LoginFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxLogin).(string)
	return v, ok && v != ""
}

func AccessTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxAccessToken).(string)
	return v, ok && v != ""
}
