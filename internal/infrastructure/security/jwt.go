package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/novachat/nova-chat-server/internal/domain"
	"github.com/novachat/nova-chat-server/internal/logger"
)

// Issuer is fixed; verification rejects tokens minted by anyone else.
const Issuer = "nova-chat-server"

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	minAccessExpiry = time.Minute
	maxAccessExpiry = 525600 * time.Minute
	minSecretLen    = 32
)

// TokenClaims is the decoded, verified view of a token.
type TokenClaims struct {
	UserID    string
	Login     string
	Type      string
	ExpiresAt time.Time
}

func (c TokenClaims) IsAccessToken() bool  { return c.Type == TokenTypeAccess }
func (c TokenClaims) IsRefreshToken() bool { return c.Type == TokenTypeRefresh }

type chatClaims struct {
	UserID string `json:"userID"`
	Login  string `json:"login,omitempty"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens and owns the revocation set.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    *RevocationSet
}

// NewJWTManager validates the configured lifetimes. Access expiry outside
// [1 minute, 525600 minutes] is fatal; a short secret is only a warning.
func NewJWTManager(secret string, accessExpiryMinutes, refreshExpiryDays int) (*JWTManager, error) {
	accessTTL := time.Duration(accessExpiryMinutes) * time.Minute
	if accessTTL < minAccessExpiry || accessTTL > maxAccessExpiry {
		return nil, fmt.Errorf("access token expiry %d minutes out of range [1, 525600]", accessExpiryMinutes)
	}
	if refreshExpiryDays < 1 {
		return nil, fmt.Errorf("refresh token expiry must be at least 1 day, got %d", refreshExpiryDays)
	}
	if len(secret) < minSecretLen {
		logger.Logger.Warn().
			Int("length", len(secret)).
			Msg("jwt secret is shorter than 32 bytes")
	}
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: time.Duration(refreshExpiryDays) * 24 * time.Hour,
		revoked:    NewRevocationSet(),
	}, nil
}

func (m *JWTManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *JWTManager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *JWTManager) GenerateAccessToken(userID, login string) (string, error) {
	if userID == "" || login == "" {
		return "", errors.New("user ID and login cannot be empty")
	}
	return m.sign(chatClaims{
		UserID: userID,
		Login:  login,
		Type:   TokenTypeAccess,
		RegisteredClaims: m.registered(TokenTypeAccess, m.accessTTL),
	})
}

func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}
	return m.sign(chatClaims{
		UserID: userID,
		Type:   TokenTypeRefresh,
		RegisteredClaims: m.registered(TokenTypeRefresh, m.refreshTTL),
	})
}

func (m *JWTManager) registered(sub string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		// jti keeps tokens unique even when two are minted within the same
		// second; without it, rotating a refresh token issued in the same
		// second as its replacement would delete the replacement's fingerprint.
		ID:        uuid.NewString(),
		Issuer:    Issuer,
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (m *JWTManager) sign(claims chatClaims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", domain.ErrInternal(err)
	}
	return signed, nil
}

// VerifyAndDecode rejects empty and revoked tokens up front, then verifies
// signature, issuer and expiry.
func (m *JWTManager) VerifyAndDecode(token string) (TokenClaims, error) {
	if token == "" {
		return TokenClaims{}, domain.ErrInvalidToken()
	}
	if m.revoked.IsRevoked(token) {
		return TokenClaims{}, domain.ErrInvalidToken()
	}

	parsed, err := jwt.ParseWithClaims(token, &chatClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrInvalidToken()
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
	)
	if err != nil {
		return TokenClaims{}, domain.ErrInvalidToken()
	}

	claims, ok := parsed.Claims.(*chatClaims)
	if !ok || !parsed.Valid {
		return TokenClaims{}, domain.ErrInvalidToken()
	}

	out := TokenClaims{
		UserID: claims.UserID,
		Login:  claims.Login,
		Type:   claims.Type,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// TokenExpiry decodes exp without verifying the signature. Used when
// blacklisting tokens whose validity is already established or irrelevant.
func (m *JWTManager) TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	var claims chatClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Revoke adds the token to the in-process revocation set. Tokens without a
// readable expiry are kept for the access TTL as an upper bound.
func (m *JWTManager) Revoke(token string) {
	if token == "" {
		return
	}
	exp, err := m.TokenExpiry(token)
	if err != nil {
		exp = time.Now().Add(m.accessTTL)
	}
	m.revoked.Add(token, exp)
}

func (m *JWTManager) IsRevoked(token string) bool { return m.revoked.IsRevoked(token) }

// Revoked exposes the revocation set so bootstrap can start the sweeper.
func (m *JWTManager) Revoked() *RevocationSet { return m.revoked }
