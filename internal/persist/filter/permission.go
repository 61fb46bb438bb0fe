package filter

import (
	"context"
	"sync"

	"github.com/supremind/docperm/types"
)

type permissionPersisterFilter struct {
	types.PermissionPersister
	changes map[types.PermissionPolicyChange]int
	sync.Mutex
}

// NewPermissionPersister drops changes made through itself from the watched changes,
// so that a watcher only sees changes made by others
func NewPermissionPersister(p types.PermissionPersister) *permissionPersisterFilter {
	return &permissionPersisterFilter{
		PermissionPersister: p,
		changes:             make(map[types.PermissionPolicyChange]int),
	}
}

// Insert a permission policy to the persister
func (f *permissionPersisterFilter) Insert(sub types.Subject, tgt types.Target, perm types.Permission) error {
	change := types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistInsert,
	}

	f.expect(change)
	if e := f.PermissionPersister.Insert(sub, tgt, perm); e != nil {
		f.forget(change)
		return e
	}
	return nil
}

// Remove a permission policy from the persister
func (f *permissionPersisterFilter) Remove(sub types.Subject, tgt types.Target, perm types.Permission) error {
	change := types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistDelete,
	}

	f.expect(change)
	if e := f.PermissionPersister.Remove(sub, tgt, perm); e != nil {
		f.forget(change)
		return e
	}
	return nil
}

// Watch changes not made through the filter
func (f *permissionPersisterFilter) Watch(ctx context.Context) (<-chan types.PermissionPolicyChange, error) {
	in, e := f.PermissionPersister.Watch(ctx)
	if e != nil {
		return nil, e
	}

	// keep draining in after ctx is done, the inner persister closes it
	out := make(chan types.PermissionPolicyChange)
	go func() {
		defer close(out)
		for change := range in {
			if f.forget(change) {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}

func (f *permissionPersisterFilter) expect(change types.PermissionPolicyChange) {
	f.Lock()
	defer f.Unlock()
	f.changes[change]++
}

// forget tells if the change is expected, and stops expecting it once
func (f *permissionPersisterFilter) forget(change types.PermissionPolicyChange) bool {
	f.Lock()
	defer f.Unlock()

	if f.changes[change] == 0 {
		return false
	}
	f.changes[change]--
	if f.changes[change] == 0 {
		delete(f.changes, change)
	}
	return true
}
