package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/temporal"
)

// NodeID is the unique identifier for the summary cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ValuesNodeID,
			temporal.NodeID,
		},
		Run: func(ctx context.Context) (*Store, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			codec, err := graft.Dep[*temporal.Codec](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(codec, cfg.Cache.DailyCapacity, cfg.Cache.WeeklyCapacity)
		},
	})
}
