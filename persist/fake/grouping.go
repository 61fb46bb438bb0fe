// Package fake provides in-memory persisters, they should not be used in real works
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.GroupingPersister = (*GroupingPersister)(nil)

// GroupingPersister keeps grouping polices in memory
type GroupingPersister struct {
	policies map[types.Entity]map[types.Container]struct{}
	changes  chan types.GroupingPolicyChange
	sync.Mutex
}

// NewGroupingPersister returns a fake grouping persister holding initPolices
func NewGroupingPersister(initPolices ...types.GroupingPolicy) *GroupingPersister {
	gp := &GroupingPersister{
		policies: make(map[types.Entity]map[types.Container]struct{}),
	}

	for _, policy := range initPolices {
		if gp.policies[policy.Entity] == nil {
			gp.policies[policy.Entity] = make(map[types.Container]struct{})
		}
		gp.policies[policy.Entity][policy.Container] = struct{}{}
	}

	return gp
}

// Insert implements GroupingPersister interface
func (p *GroupingPersister) Insert(ent types.Entity, c types.Container) error {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.policies[ent][c]; ok {
		return fmt.Errorf("%w: grouping policy %s -> %s", types.ErrAlreadyExists, ent, c)
	}
	if p.policies[ent] == nil {
		p.policies[ent] = make(map[types.Container]struct{})
	}
	p.policies[ent][c] = struct{}{}

	p.notify(types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistInsert,
	})
	return nil
}

// Remove implements GroupingPersister interface
func (p *GroupingPersister) Remove(ent types.Entity, c types.Container) error {
	p.Lock()
	defer p.Unlock()

	if _, ok := p.policies[ent][c]; !ok {
		return fmt.Errorf("%w: grouping policy %s -> %s", types.ErrNotFound, ent, c)
	}
	delete(p.policies[ent], c)
	if len(p.policies[ent]) == 0 {
		delete(p.policies, ent)
	}

	p.notify(types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistDelete,
	})
	return nil
}

// List implements GroupingPersister interface
func (p *GroupingPersister) List() ([]types.GroupingPolicy, error) {
	p.Lock()
	defer p.Unlock()

	polices := make([]types.GroupingPolicy, 0, len(p.policies))
	for ent, containers := range p.policies {
		for c := range containers {
			polices = append(polices, types.GroupingPolicy{Entity: ent, Container: c})
		}
	}

	return polices, nil
}

// Watch implements GroupingPersister interface, only the latest watcher receives changes
func (p *GroupingPersister) Watch(ctx context.Context) (<-chan types.GroupingPolicyChange, error) {
	p.Lock()
	defer p.Unlock()

	changes := make(chan types.GroupingPolicyChange)
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
func (p *GroupingPersister) notify(change types.GroupingPolicyChange) {
	if p.changes != nil {
		p.changes <- change
	}
}
