package router

import (
	"net/http"

	"github.com/BerylCAtieno/vakeel-gateway/internal/handlers"
	"github.com/BerylCAtieno/vakeel-gateway/internal/middleware"
	"github.com/BerylCAtieno/vakeel-gateway/internal/services"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(proxyService services.ProxyService, maxUploadSize int64, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	proxyHandler := handlers.NewProxyHandler(proxyService, maxUploadSize, logger)

	// Proxy routes sit on the root router so a wrong method gets 405
	r.HandleFunc("/api/proxy/analyze", proxyHandler.Analyze).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/proxy/generate", proxyHandler.Generate).Methods(http.MethodPost, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", handlers.Health(logger)).Methods(http.MethodGet)

	return r
}
