package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendsim/capacity-core/internal/capd"
	"github.com/attendsim/capacity-core/pkg/logger"
)

func main() {
	var httpAddr string
	var logLevel string
	var logFormat string

	flag.StringVar(&httpAddr, "http-addr", ":8080", "HTTP listen address")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&logFormat, "log-format", "text", "log format (json, text, dev)")
	flag.Parse()

	switch logFormat {
	case "json":
		logger.SetDefault(logger.New(logLevel, os.Stdout))
	case "dev":
		logger.SetDefault(logger.NewDev(logLevel, os.Stderr))
	default:
		logger.SetDefault(logger.NewText(logLevel, os.Stdout))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := capd.NewStore()
	metrics := capd.NewMetrics()
	executor := capd.NewExecutor(store, metrics)

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           capd.NewHTTPServer(store, executor, metrics).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
}
