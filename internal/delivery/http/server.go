package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(addr string, handlers *Handlers, hub *Hub, authSecret string, corsOrigins []string, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(handlers, hub, authSecret, corsOrigins, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter assembles the API routes behind auth and CORS.
func NewRouter(handlers *Handlers, hub *Hub, authSecret string, corsOrigins []string, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(authSecret, logger))

	api.HandleFunc("/assets", handlers.CreateAsset).Methods(http.MethodPost)
	api.HandleFunc("/assets", handlers.ListAssets).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id}/alerts", handlers.CreateAlert).Methods(http.MethodPost)
	api.HandleFunc("/alerts", handlers.ListAlerts).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{id}", handlers.DeleteAlert).Methods(http.MethodDelete)
	api.HandleFunc("/notifications", handlers.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods(http.MethodPost)
	api.HandleFunc("/push/subscriptions", handlers.SavePushSubscription).Methods(http.MethodPost)
	api.HandleFunc("/push/subscriptions", handlers.DeletePushSubscription).Methods(http.MethodDelete)
	api.HandleFunc("/ws", hub.HandleWS).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
