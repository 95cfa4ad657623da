package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/stats"
	statslogger "github.com/discochess/repertoire/internal/stats/logger"
	promstats "github.com/discochess/repertoire/internal/stats/prometheus"
)

// startMetrics serves Prometheus metrics on addr and returns the collector
// feeding them, teed into the debug log when verbose. With an empty addr
// nothing is served. The returned func stops the server.
func startMetrics(addr string, verbose bool, logger *zap.Logger) (stats.Collector, func()) {
	var debug stats.Collector
	if verbose {
		debug = statslogger.New(logger)
	}
	if addr == "" {
		return stats.NewTee(debug), func() {}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	return stats.NewTee(promstats.New(registry), debug), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
