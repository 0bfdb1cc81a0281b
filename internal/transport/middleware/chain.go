package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware so that Chain(a, b)(h) == a(b(h)): a runs first.
// Nil entries are skipped, which lets callers pass optional middleware
// without branching.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			final = mws[i](final)
		}
		return final
	}
}
