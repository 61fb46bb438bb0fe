// Package grouping keeps member-container graphs: users in groups, and documents in folders.
package grouping

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/types"
)

// New creates a concurrent safe grouping, persisted if gp is not nil
func New(ctx context.Context, gp types.GroupingPersister, l logr.Logger) (types.Grouping, error) {
	g := newSyncedGrouping(newFatGrouping())
	if gp == nil {
		return g, nil
	}
	return newPersistedGrouping(ctx, g, gp, l)
}
