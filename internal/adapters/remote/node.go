package remote

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/config"
	"go.trai.ch/nourish/internal/adapters/logger"
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/temporal"
)

// NodeID is the unique identifier for the remote client Graft node.
const NodeID graft.ID = "adapter.remote"

func init() {
	graft.Register(graft.Node[ports.RemoteClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ValuesNodeID, temporal.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RemoteClient, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			codec, err := graft.Dep[*temporal.Codec](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.API, codec, log), nil
		},
	})
}
