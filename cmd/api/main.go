package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"dcf_lite/pkg/api/valuation"
	"dcf_lite/pkg/core/config"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.WithError(err).Warn("unknown log level, using info")
	}

	router := mux.NewRouter()
	router.Use(valuation.CORSMiddleware)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	valuation.NewHandler(cfg, logger).RegisterRoutes(apiRouter)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":  cfg.Server.Addr,
			"years": cfg.Projection.Years,
		}).Info("API server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
