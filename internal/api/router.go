package api

import (
	"context"
	"net/http"

	"rubconv/internal/conversion/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// NewRouter sends every path to the converter; only the method selects the action.
func NewRouter(converterHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(RequestID)

	router.Head("/*", converterHandler.Head)
	router.Get("/*", converterHandler.Get)
	router.Post("/*", converterHandler.Convert)
	return router
}

// RequestID keeps an incoming X-Request-Id or assigns a new UUID, and echoes it back.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(middleware.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
