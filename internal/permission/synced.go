package permission

import (
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.GrantStore = (*syncedPermission)(nil)

// syncedPermission makes the inner store safe in concurrent usages
type syncedPermission struct {
	p types.GrantStore
	sync.RWMutex
}

func newSyncedPermission(p types.GrantStore) *syncedPermission {
	return &syncedPermission{p: p}
}

func (p *syncedPermission) Grant(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()
	return p.p.Grant(sub, tgt, perm)
}

func (p *syncedPermission) Revoke(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()
	return p.p.Revoke(sub, tgt, perm)
}

func (p *syncedPermission) Has(sub types.Subject, tgt types.Target, perm types.Permission) (bool, error) {
	p.RLock()
	defer p.RUnlock()
	return p.p.Has(sub, tgt, perm)
}

func (p *syncedPermission) PermissionsOf(sub types.Subject, tgt types.Target) (types.PermissionSet, error) {
	p.RLock()
	defer p.RUnlock()
	return p.p.PermissionsOf(sub, tgt)
}

func (p *syncedPermission) PermissionsOn(tgt types.Target) (map[types.Subject]types.PermissionSet, error) {
	p.RLock()
	defer p.RUnlock()
	return p.p.PermissionsOn(tgt)
}

func (p *syncedPermission) PermissionsFor(sub types.Subject) (map[types.Target]types.PermissionSet, error) {
	p.RLock()
	defer p.RUnlock()
	return p.p.PermissionsFor(sub)
}
