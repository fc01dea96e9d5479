package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/core/domain"
)

// NodeID is the unique identifier for the session store Graft node.
const NodeID graft.ID = "adapter.session"

func init() {
	graft.Register(graft.Node[*FileProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ValuesNodeID},
		Run: func(ctx context.Context) (*FileProvider, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileProvider(cfg.Session.Path), nil
		},
	})
}
