package health

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/adapters/logger"
	"go.trai.ch/vigil/internal/adapters/metrics"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// NodeID is the unique identifier for the tracker opener Graft node.
const NodeID graft.ID = "adapter.health"

// Opener opens the tracker described by a resolved configuration.
type Opener func(cfg *domain.Config) *Tracker

func init() {
	graft.Register(graft.Node[Opener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.PortNodeID, metrics.NodeID},
		Run: func(ctx context.Context) (Opener, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg *domain.Config) *Tracker {
				return NewTracker(NewSnapshotStore(cfg.SnapshotPath), cfg.CheckTimeout, log, m)
			}, nil
		},
	})
}
