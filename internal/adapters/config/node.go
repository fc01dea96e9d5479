package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// ValuesNodeID is the unique identifier for the resolved configuration node.
	ValuesNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        ValuesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load(PathFromContext(ctx))
			if err != nil {
				return nil, err
			}
			if ProgressFromContext(ctx) {
				cfg.Log.Progress = true
			}
			return cfg, nil
		},
	})
}
