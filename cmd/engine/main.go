package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"hhscout-engine/internal/collect"
	"hhscout-engine/internal/config"
	"hhscout-engine/internal/events"
	"hhscout-engine/internal/export"
	"hhscout-engine/internal/httpapi"
	"hhscout-engine/internal/scheduler"
	"hhscout-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (a desktop wrapper can pass
	// one), else local folder.
	dataDir := os.Getenv("HHSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would corrupt the
	// config save dance and fight over the SQLite file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !locked {
		log.Fatalf("another engine instance already runs in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "hhscout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var collectStatus atomic.Value
	collectStatus.Store(collect.Status{})

	deps := httpapi.Deps{
		DB:            db,
		Hub:           hub,
		CfgVal:        &cfgVal,
		CollectStatus: &collectStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		RunCollect:    collect.Run,
	}
	mux := httpapi.NewMux(deps)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodic export cleanup; keep_days comes from the live config so
	// a settings change applies without a restart.
	go scheduler.Every(rootCtx, 12*time.Hour, "export-cleanup", func(ctx context.Context) error {
		cur := cfgVal.Load().(config.Config)
		removed, err := export.CleanupOld(cur.Export.Dir, cur.Export.KeepDays)
		if removed > 0 {
			log.Printf("level=info msg=\"export cleanup\" removed=%d", removed)
		}
		return err
	})

	// Keep SSE connections alive through proxies and idle timeouts.
	go scheduler.Every(rootCtx, 30*time.Second, "sse-ping", func(ctx context.Context) error {
		hub.Publish(events.MakeEvent("", events.TypePing, 1, nil))
		return nil
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s", addr, dbPath)

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("level=info msg=\"shutdown token\" token=%s", token)

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine stopped\"")
}
