package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nourish/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/nourish/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/nourish/internal/adapters/remote"             //nolint:depguard // Wired in app layer
	"go.trai.ch/nourish/internal/adapters/session"            //nolint:depguard // Wired in app layer
	"go.trai.ch/nourish/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
	"go.trai.ch/nourish/internal/engine/fetch"
	"go.trai.ch/nourish/internal/temporal"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ValuesNodeID,
			temporal.NodeID,
			fetch.NodeID,
			remote.NodeID,
			session.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	codec, err := graft.Dep[*temporal.Codec](ctx)
	if err != nil {
		return nil, err
	}

	coordinator, err := graft.Dep[*fetch.Coordinator](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[ports.RemoteClient](ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := graft.Dep[*session.FileProvider](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(codec, coordinator, client, sessions, telemetry, domain.MessagesFor(cfg.Locale)), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
