package project

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the project root Graft node.
const NodeID graft.ID = "adapter.project"

func init() {
	graft.Register(graft.Node[Root]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Root, error) {
			if dir := os.Getenv("CAPSTAN_PROJECT_DIR"); dir != "" {
				return Locate(dir), nil
			}
			cwd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return Locate(cwd), nil
		},
	})
}
