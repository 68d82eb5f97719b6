package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookie = "viewer_session"

type contextKey struct{}

// SessionID returns the viewer session id stored by the middleware, or ""
// when the request bypassed it.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware identifies viewer sessions with a signed HS256 token carried in
// a cookie or Authorization header. A missing or invalid token is not an
// error: a fresh session is minted and set on the response.
type Middleware struct {
	secretKey []byte
	tokenTTL  time.Duration
}

func NewMiddleware(secret string, tokenTTL time.Duration) *Middleware {
	return &Middleware{
		secretKey: []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

func (m *Middleware) Session(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := m.sessionFromRequest(r)

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := m.mintToken(sessionID)
			if err != nil {
				slog.Error("Failed to mint session token", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.tokenTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), contextKey{}, sessionID)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) sessionFromRequest(r *http.Request) string {
	tokenString := ""
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		tokenString = cookie.Value
	} else if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil || !token.Valid {
		slog.Warn("Invalid session token, reissuing", "error", err)
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sessionID, _ := claims["sub"].(string)
	return sessionID
}

func (m *Middleware) mintToken(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(m.tokenTTL).Unix(),
	})
	return token.SignedString(m.secretKey)
}
