// Package permission keeps explicit grants of subjects on targets.
package permission

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/types"
)

// New creates a concurrent safe grant store, persisted if pp is not nil
func New(ctx context.Context, pp types.PermissionPersister, l logr.Logger) (types.GrantStore, error) {
	p := newSyncedPermission(newThinPermission())
	if pp == nil {
		return p, nil
	}
	return newPersistedPermission(ctx, p, pp, l)
}
