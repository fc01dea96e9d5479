package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/cache"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/adapters/remote"
	"go.trai.ch/nourish/internal/adapters/session"
	"go.trai.ch/nourish/internal/adapters/telemetry/progrock"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
)

// NodeID is the unique identifier for the fetch coordinator Graft node.
const NodeID graft.ID = "engine.fetch"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ValuesNodeID,
			cache.NodeID,
			session.NodeID,
			remote.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*cache.Store](ctx)
			if err != nil {
				return nil, err
			}
			users, err := graft.Dep[*session.FileProvider](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[ports.RemoteClient](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, users, client,
				WithTelemetry(tel),
				WithMessages(domain.MessagesFor(cfg.Locale)),
				WithPrefetchConcurrency(cfg.Fetch.PrefetchConcurrency),
			), nil
		},
	})
}
