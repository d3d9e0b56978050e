package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"runtime/debug"

	"items-backend/internal/auth"
)

type contextKey string

const identityContextKey = contextKey("identity")

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.authority.ValidateHeader(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches an identity when the request carries a
// valid token and lets every other request through anonymously.
func (s *Server) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := s.authority.OptionalValidate(r.Context(), r.Header.Get("Authorization"))
		if identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetIdentityFromContext(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityContextKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// Recoverer turns a panic into a logged INTERNAL_ERROR envelope.
func (s *Server) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			s.logger.Error(r.Context(), "panic while serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			writeErrorBody(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// clientIP is the peer address of r. It only reflects forwarding headers
// when middleware.RealIP ran first, which the router allows behind a
// trusted proxy.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return ip
}

func peerKey(r *http.Request) (string, error) {
	return clientIP(r), nil
}

func sessionMeta(r *http.Request) auth.SessionMeta {
	return auth.SessionMeta{UserAgent: r.UserAgent(), ClientIP: clientIP(r)}
}
