package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.PermissionPersister = (*PermissionPersister)(nil)

type permissionKey struct {
	sub types.Subject
	tgt types.Target
}

// PermissionPersister keeps permission polices in memory
type PermissionPersister struct {
	polices map[permissionKey]types.PermissionSet
	changes chan types.PermissionPolicyChange
	sync.Mutex
}

// NewPermissionPersister returns a fake permission persister holding initPolices
func NewPermissionPersister(initPolices ...types.PermissionPolicy) *PermissionPersister {
	pp := &PermissionPersister{
		polices: make(map[permissionKey]types.PermissionSet),
	}

	for _, policy := range initPolices {
		key := permissionKey{sub: policy.Subject, tgt: policy.Target}
		if pp.polices[key] == nil {
			pp.polices[key] = make(types.PermissionSet)
		}
		pp.polices[key].Add(policy.Permission)
	}

	return pp
}

// Insert implements PermissionPersister interface
func (p *PermissionPersister) Insert(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()

	key := permissionKey{sub: sub, tgt: tgt}
	if p.polices[key].Has(perm) {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrAlreadyExists, sub, perm, tgt)
	}
	if p.polices[key] == nil {
		p.polices[key] = make(types.PermissionSet)
	}
	p.polices[key].Add(perm)

	p.notify(types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistInsert,
	})
	return nil
}

// Remove implements PermissionPersister interface
func (p *PermissionPersister) Remove(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()

	key := permissionKey{sub: sub, tgt: tgt}
	if !p.polices[key].Has(perm) {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrNotFound, sub, perm, tgt)
	}
	p.polices[key].Remove(perm)
	if len(p.polices[key]) == 0 {
		delete(p.polices, key)
	}

	p.notify(types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistDelete,
	})
	return nil
}

// List implements PermissionPersister interface
func (p *PermissionPersister) List() ([]types.PermissionPolicy, error) {
	p.Lock()
	defer p.Unlock()

	polices := make([]types.PermissionPolicy, 0, len(p.polices))
	for key, perms := range p.polices {
		for perm := range perms {
			polices = append(polices, types.PermissionPolicy{
				Subject:    key.sub,
				Target:     key.tgt,
				Permission: perm,
			})
		}
	}

	return polices, nil
}

// Watch implements PermissionPersister interface, only the latest watcher receives changes
func (p *PermissionPersister) Watch(ctx context.Context) (<-chan types.PermissionPolicyChange, error) {
	p.Lock()
	defer p.Unlock()

	changes := make(chan types.PermissionPolicyChange)
	p.changes = changes

	go func() {
		<-ctx.Done()
		p.Lock()
		defer p.Unlock()
		if p.changes == changes {
			p.changes = nil
		}
		close(changes)
	}()

	return changes, nil
}

// notify must be called with the lock held
func (p *PermissionPersister) notify(change types.PermissionPolicyChange) {
	if p.changes != nil {
		p.changes <- change
	}
}
