// Package middleware holds the Connect interceptors shared by every service.
package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/secretsanta/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OrganizerIDKey is the context key for the authenticated organizer ID.
	OrganizerIDKey contextKey = "organizer_id"
	// EmailKey is the context key for the authenticated organizer's email.
	EmailKey contextKey = "email"
)

// GetOrganizerID extracts the organizer ID from the context.
// Returns empty string if not found.
func GetOrganizerID(ctx context.Context) string {
	id, _ := ctx.Value(OrganizerIDKey).(string)
	return id
}

// GetEmail extracts the organizer email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithOrganizer returns ctx carrying the given identity. Handlers are normally
// reached through Auth; this is for calling them directly.
func WithOrganizer(ctx context.Context, organizerID, email string) context.Context {
	ctx = context.WithValue(ctx, OrganizerIDKey, organizerID)
	return context.WithValue(ctx, EmailKey, email)
}

// Auth validates bearer tokens. Procedures listed in public may be called
// without a token; a valid token is still attached to their context, and an
// invalid one is ignored. Every other procedure requires a valid token.
func Auth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			claims, err := bearerClaims(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				if open[req.Spec().Procedure] {
					return next(ctx, req)
				}
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithOrganizer(ctx, claims.OrganizerID, claims.Email), req)
		}
	}
}

func bearerClaims(jwtManager *auth.JWTManager, header string) (*auth.Claims, error) {
	if header == "" {
		return nil, auth.ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(token)
}
