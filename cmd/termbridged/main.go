// Command termbridged boots the synchronization core as a standalone
// daemon: it dials the transport, opens one Connection per configured
// account, and serves the read-only admin HTTP surface.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termbridge/internal/adminhttp"
	"termbridge/internal/config"
	"termbridge/internal/connection"
	"termbridge/internal/healthlog"
	"termbridge/internal/logger"
	"termbridge/internal/quotesession"
	"termbridge/internal/syncctl"
	"termbridge/internal/wstransport"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the daemon's YAML configuration file")
	flag.Parse()

	log := logger.New("termbridged")

	cfg, err := config.New(*configPath)
	if err != nil {
		log.Critical("failed to load config: %v", err)
	}
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := wstransport.New(
		cfg.Transport.URL,
		time.Duration(cfg.Transport.HandshakeTimeoutS)*time.Second,
		time.Duration(cfg.Ordering.PacketOrderingTimeoutSeconds)*time.Second,
		log,
	)
	if err := tr.Connect(ctx); err != nil {
		log.Critical("failed to connect transport: %v", err)
	}
	defer tr.Close()

	fallback := quotesession.NewProvider()
	registry := connection.NewRegistry()

	var recorder *healthlog.Recorder
	if cfg.HealthLog.Enabled {
		recorder, err = healthlog.Open(cfg.HealthLog.Driver, cfg.HealthLog.DSN)
		if err != nil {
			log.Critical("failed to open health log: %v", err)
		}
		defer recorder.Close()
	}

	for _, acct := range cfg.Accounts {
		historyStart := time.Time{}
		if acct.HistoryStartTime != "" {
			parsed, err := time.Parse(time.RFC3339, acct.HistoryStartTime)
			if err != nil {
				log.Critical("invalid history_start_time for account %s: %v", acct.AccountID, err)
			}
			historyStart = parsed
		}

		conn, err := connection.New(connection.Options{
			AccountID:        acct.AccountID,
			ApplicationTag:   acct.ApplicationTag,
			HistoryStartTime: historyStart,
			Fallback:         fallback,
			SyncConfig: syncctl.Config{
				InitialRetrySeconds:            cfg.Sync.SynchronizeInitialRetrySeconds,
				MaxRetrySeconds:                cfg.Sync.SynchronizeMaxRetrySeconds,
				WaitSynchronizedTimeoutSeconds: cfg.Sync.WaitSynchronizedTimeoutSeconds,
				WaitSynchronizedIntervalMillis: cfg.Sync.WaitSynchronizedIntervalMillis,
				SubscribeInitialBackoffSeconds: cfg.Sync.SubscribeInitialBackoffSeconds,
				SubscribeMaxBackoffSeconds:     cfg.Sync.SubscribeMaxBackoffSeconds,
			},
		}, tr, registry, log)
		if err != nil {
			log.Critical("invalid connection options for account %s: %v", acct.AccountID, err)
		}

		if err := conn.Initialize(ctx); err != nil {
			log.Critical("failed to initialize connection for account %s: %v", acct.AccountID, err)
		}
		log.Info("connection initialized for account %s", acct.AccountID)
	}

	if recorder != nil {
		go runHealthLog(ctx, registry, recorder, time.Duration(cfg.HealthLog.SampleIntervalSeconds)*time.Second, log)
	}

	admin := adminhttp.New(registry, log, cfg.AdminHost, cfg.AdminPort, cfg.LogLevel == "debug")
	go func() {
		if err := admin.Start(); err != nil {
			log.Error("admin HTTP server stopped: %v", err)
		}
	}()

	waitForShutdown(ctx, registry, log)
}

// runHealthLog periodically records every open connection's health
// status and uptime windows.
func runHealthLog(ctx context.Context, registry *connection.Registry, recorder *healthlog.Recorder, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, conn := range registry.All() {
				status := conn.HealthMonitor().HealthStatus()
				uptime := conn.HealthMonitor().Uptime()
				if err := recorder.Record(ctx, conn.AccountID(), now, status, uptime); err != nil {
					log.Warning("failed to record health sample for %s: %v", conn.AccountID(), err)
				}
			}
		}
	}
}

func waitForShutdown(ctx context.Context, registry *connection.Registry, log *logger.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, conn := range registry.All() {
		if err := conn.Close(closeCtx); err != nil {
			log.Warning("error closing connection for account %s: %v", conn.AccountID(), err)
		}
	}
}
