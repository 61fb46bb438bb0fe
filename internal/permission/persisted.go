package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/internal/persist/filter"
	"github.com/supremind/docperm/types"
)

var _ types.GrantStore = (*persistedPermission)(nil)

// persistedPermission writes grants through to a persister before applying them to the inner store,
// and applies changes made by others it watches from the persister
type persistedPermission struct {
	persist types.PermissionPersister
	types.GrantStore
	log logr.Logger
}

func newPersistedPermission(ctx context.Context, inner types.GrantStore, persist types.PermissionPersister, l logr.Logger) (*persistedPermission, error) {
	p := &persistedPermission{
		persist:    filter.NewPermissionPersister(persist),
		GrantStore: inner,
		log:        l,
	}

	if e := p.loadPersisted(); e != nil {
		return nil, e
	}
	if e := p.startWatching(ctx); e != nil {
		return nil, e
	}

	return p, nil
}

func (p *persistedPermission) loadPersisted() error {
	p.log.V(4).Info("load persisted polices")

	polices, e := p.persist.List()
	if e != nil {
		return e
	}
	for _, policy := range polices {
		if e := p.GrantStore.Grant(policy.Subject, policy.Target, policy.Permission); e != nil {
			return e
		}
	}

	return nil
}

func (p *persistedPermission) startWatching(ctx context.Context) error {
	changes, e := p.persist.Watch(ctx)
	if e != nil {
		return e
	}

	go func() {
		for {
			select {
			case change, ok := <-changes:
				if !ok {
					return
				}
				if e := p.coordinateChange(change); e != nil {
					p.log.Error(e, "coordinate permission changes")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (p *persistedPermission) coordinateChange(change types.PermissionPolicyChange) error {
	p.log.V(4).Info("coordinate permission changes", "change", change)

	switch change.Method {
	case types.PersistInsert:
		return p.GrantStore.Grant(change.Subject, change.Target, change.Permission)
	case types.PersistDelete:
		return p.GrantStore.Revoke(change.Subject, change.Target, change.Permission)
	}

	return fmt.Errorf("%w: permission persister changes: %s", types.ErrUnsupportedPersist, change.Method)
}

// Grant permission to subject on target
func (p *persistedPermission) Grant(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.log.V(4).Info("grant", "subject", sub, "target", tgt, "permission", perm)

	if e := p.persist.Insert(sub, tgt, perm); e != nil && !errors.Is(e, types.ErrAlreadyExists) {
		return e
	}
	return p.GrantStore.Grant(sub, tgt, perm)
}

// Revoke permission from subject on target
func (p *persistedPermission) Revoke(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.log.V(4).Info("revoke", "subject", sub, "target", tgt, "permission", perm)

	if e := p.persist.Remove(sub, tgt, perm); e != nil {
		return e
	}
	return p.GrantStore.Revoke(sub, tgt, perm)
}
