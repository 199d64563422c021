package probe

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/build"
)

// NodeID is the unique identifier for the HTTP checker Graft node.
const NodeID graft.ID = "adapter.probe"

func init() {
	graft.Register(graft.Node[*HTTPChecker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*HTTPChecker, error) {
			return NewHTTPChecker(&http.Client{}, "vigil/"+build.Version), nil
		},
	})
}
