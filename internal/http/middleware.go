package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	twilioclient "github.com/twilio/twilio-go/client"

	"github.com/example/hours-bot/internal/logging"
)

const signatureHeader = "X-Twilio-Signature"

// RequestLogger tags every request with a generated id, stores the derived
// logger in the context and logs start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				"request_id", uuid.NewString(),
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

// ValidateTwilioSignature rejects webhook posts whose X-Twilio-Signature does
// not match the request as reconstructed against the public URL the webhook
// is registered under.
func ValidateTwilioSignature(authToken, publicURL string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	validator := twilioclient.NewRequestValidator(authToken)
	publicURL = strings.TrimSuffix(publicURL, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if err := r.ParseForm(); err != nil {
				logging.FromContext(ctx, logger).WarnContext(ctx, "malformed webhook form", "error", err)
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			params := make(map[string]string, len(r.PostForm))
			for key, values := range r.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}

			url := publicURL + r.URL.RequestURI()
			if !validator.Validate(url, params, r.Header.Get(signatureHeader)) {
				logging.FromContext(ctx, logger).WarnContext(ctx, "rejected webhook with invalid signature", "url", url)
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Recoverer converts handler panics into an apology reply. Twilio surfaces
// non-2xx responses to the user as a delivery error, so the recovery still
// answers 200 with TwiML.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					ctx := r.Context()
					logging.FromContext(ctx, logger).ErrorContext(ctx, "handler panicked", "panic", recovered)
					writeTwiML(ctx, w, logging.FromContext(ctx, logger), "⚠️ Something went wrong. Please try again.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
