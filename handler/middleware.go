package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/auth"
	"github.com/lordvidex/x/resp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/game"
)

const (
	authHeaderKey = "Authorization"
	requestIDKey  = "X-Request-ID"
)

type contextKey struct {
	name string
}

// private vars
var (
	adminKey     = &contextKey{"admin"}
	requestIDCtx = &contextKey{"request_id"}
)

// Errors
var (
	ErrUnauthenticated = errs.B().Code(errs.Unauthenticated).Msg("admin is unauthenticated").Err()
)

// Admin returns the admin injected by authMiddleware.
func Admin(ctx context.Context) *game.Admin {
	v, _ := ctx.Value(adminKey).(*game.Admin)
	return v
}

// RequestID returns the ID of the request being served.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDCtx).(string)
	return v
}

// authMiddleware extracts the token from the authorization header, or the admin
// cookie when there is no header, validates it, and injects the admin into the
// request context.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tk, err := requestToken(r)
		if err != nil {
			resp.Error(w, err)
			return
		}
		admin, err := h.token.Validate(ctx, auth.Token(tk))
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("invalid admin token")
			if _, ckErr := r.Cookie(adminTokenKey); ckErr == nil {
				ck := newAdminCookie("")
				deleteCookie(w, &ck)
			}
			resp.Error(w, ErrUnauthenticated)
			return
		}
		ctx = context.WithValue(ctx, adminKey, &admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestToken(r *http.Request) (string, error) {
	if header := r.Header.Get(authHeaderKey); header != "" {
		return decodeHeader(header)
	}
	ck, err := r.Cookie(adminTokenKey)
	if err != nil || ck.Value == "" {
		return "", ErrUnauthenticated
	}
	return ck.Value, nil
}

func decodeHeader(auth string) (string, error) {
	spl := strings.Split(auth, " ")
	switch len(spl) {
	case 1:
		return spl[0], nil
	case 2:
		if strings.ToLower(spl[0]) != "bearer" {
			return "", ErrUnauthenticated
		}
		return spl[1], nil
	default:
		return "", ErrUnauthenticated
	}
}

// requestID tags the request with the X-Request-ID header, or a new uuid, and
// attaches a logger carrying it to the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDKey, id)

		logger := log.With().Str("request_id", id).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, requestIDCtx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog writes one line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
