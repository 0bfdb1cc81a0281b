package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/pkg/ctxutil"
)

// visitorTokens is the token manager consumed by Visitor.
type visitorTokens interface {
	Issue(visitorID uuid.UUID) (string, time.Time, error)
	Parse(token string) (uuid.UUID, time.Time, error)
}

// VisitorCookie describes the cookie that carries the visitor token.
// A valid cookie whose remaining lifetime is below RenewWithin is re-issued
// for the same visitor; zero disables renewal.
type VisitorCookie struct {
	Name        string
	Secure      bool
	RenewWithin time.Duration
}

// Visitor identifies the browser by its signed visitor cookie. A missing or
// invalid cookie mints a fresh visitor ID and sets a new cookie. The ID is
// stored in the request context for downstream handlers.
func Visitor(tokens visitorTokens, cookie VisitorCookie, logger *slog.Logger) Middleware {
	log := logger.With("middleware", "visitor")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, expires, err := visitorFromCookie(r, cookie.Name, tokens)
			switch {
			case err != nil:
				log.DebugContext(ctx, "visitor cookie rejected", slog.String("error", err.Error()))
				id = uuid.New()
			case id == uuid.Nil:
				id = uuid.New()
			case time.Until(expires) >= cookie.RenewWithin:
				next.ServeHTTP(w, r.WithContext(ctxutil.WithVisitorID(ctx, id)))
				return
			default:
				log.DebugContext(ctx, "renewing visitor cookie", slog.String("visitor_id", id.String()))
			}

			token, newExpires, err := tokens.Issue(id)
			if err != nil {
				log.ErrorContext(ctx, "issue visitor token", slog.String("error", err.Error()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookie.Name,
				Value:    token,
				Path:     "/",
				Expires:  newExpires,
				HttpOnly: true,
				Secure:   cookie.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(ctxutil.WithVisitorID(ctx, id)))
		})
	}
}

// visitorFromCookie returns uuid.Nil and no error when the cookie is absent.
func visitorFromCookie(r *http.Request, name string, tokens visitorTokens) (uuid.UUID, time.Time, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return uuid.Nil, time.Time{}, nil
	}
	return tokens.Parse(c.Value)
}
