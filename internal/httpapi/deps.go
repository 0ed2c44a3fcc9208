package httpapi

import (
	"context"
	"sync/atomic"

	"hhscout-engine/internal/collect"
	"hhscout-engine/internal/config"
	"hhscout-engine/internal/events"
	"hhscout-engine/internal/store"
)

type Deps struct {
	DB *store.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	CollectStatus *atomic.Value // stores collect.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Collection entrypoint (inject for testability)
	RunCollect func(ctx context.Context, db *store.DB, cfg config.Config, req collect.Request, report func(collect.Status)) (saved int, err error)
}
