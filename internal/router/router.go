package router

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rentfold/service-core/internal/house"
	"github.com/rentfold/service-core/internal/rental"
	"github.com/rentfold/service-core/internal/token"
	"github.com/rentfold/service-core/internal/user"
	"github.com/rentfold/service-core/pkg/utilities"
)

const prefix = "/rentfold-api-core"

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware logs each request at debug level with a snowflake
// request id so store operations can be correlated with requests.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := utilities.NewSnowflakeID()
			w.Header().Set("X-Request-Id", reqID)
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware sets common HTTP security headers. Intentionally
// simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware verifies the bearer session token, loads the account and
// attaches it to the request context. Inactive accounts are rejected even if
// their token has not expired yet.
func AuthMiddleware(tokens *token.Service, users *user.Service, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			sess, err := tokens.Verify(raw)
			if err != nil {
				logger.Debugw("token rejected", "err", err)
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				return
			}
			u, err := users.GetByID(sess.UserID)
			if err != nil || !u.IsActive {
				http.Error(w, "account unavailable", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(token.WithUser(r.Context(), u)))
		})
	}
}

// RegisterRoutes mounts all handlers on the standard library's http.ServeMux
// and wraps them with the middleware stack.
func RegisterRoutes(
	logger *zap.SugaredLogger,
	tokens *token.Service,
	userSvc *user.Service,
	houseSvc *house.Service,
	rentalSvc *rental.Service,
) http.Handler {
	mux := http.NewServeMux()

	auth := AuthMiddleware(tokens, userSvc, logger)
	authFunc := func(h http.HandlerFunc) http.Handler { return auth(h) }

	// health
	mux.HandleFunc("GET "+prefix+"/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// user routes
	userHandler := user.NewHandler(userSvc, tokens, logger)
	mux.HandleFunc("POST "+prefix+"/users/register", userHandler.Register)
	mux.HandleFunc("POST "+prefix+"/users/login", userHandler.Login)
	mux.Handle("GET "+prefix+"/users", authFunc(userHandler.List))
	mux.Handle("POST "+prefix+"/users/{id}/toggle-active", authFunc(userHandler.ToggleActive))
	mux.Handle("POST "+prefix+"/users/{id}/reset-password", authFunc(userHandler.ResetPassword))

	// house routes
	houseHandler := house.NewHandler(houseSvc, logger)
	mux.Handle("GET "+prefix+"/houses", authFunc(houseHandler.List))
	mux.Handle("POST "+prefix+"/houses", authFunc(houseHandler.Create))
	mux.Handle("GET "+prefix+"/houses/{id}", authFunc(houseHandler.Get))
	mux.Handle("PUT "+prefix+"/houses/{id}", authFunc(houseHandler.Update))
	mux.Handle("DELETE "+prefix+"/houses/{id}", authFunc(houseHandler.Delete))
	mux.Handle("POST "+prefix+"/houses/{id}/status", authFunc(houseHandler.SetStatus))

	// rental routes
	rentalHandler := rental.NewHandler(rentalSvc, logger)
	mux.Handle("GET "+prefix+"/rentals", authFunc(rentalHandler.List))
	mux.Handle("POST "+prefix+"/rentals", authFunc(rentalHandler.Create))
	mux.Handle("POST "+prefix+"/rentals/{id}/end", authFunc(rentalHandler.End))

	// wrap with security headers middleware then logging middleware
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux))
	return handler
}
