package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/adapters/cache"       //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/fingerprint" //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/health"      //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/metrics"     //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/probe"       //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/vigil/internal/core/ports"
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
			config.NodeID,
			logger.NodeID,
			logger.PortNodeID,
			metrics.NodeID,
			fingerprint.NodeID,
			telemetry.NodeID,
			watcher.NodeID,
			probe.NodeID,
			cache.NodeID,
			health.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.PortNodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	concrete, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	fp, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	client, err := graft.Dep[*probe.HTTPChecker](ctx)
	if err != nil {
		return nil, err
	}
	openCache, err := graft.Dep[cache.Opener](ctx)
	if err != nil {
		return nil, err
	}
	openTracker, err := graft.Dep[health.Opener](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, m, fp, tracer, w, client, openCache, openTracker).
		WithLogControl(concrete), nil
}
