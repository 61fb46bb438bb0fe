package filter

import (
	"context"
	"sync"

	"github.com/supremind/docperm/types"
)

type groupingPersisterFilter struct {
	types.GroupingPersister
	changes map[types.GroupingPolicyChange]int
	sync.Mutex
}

// NewGroupingPersister drops changes made through itself from the watched changes,
// so that a watcher only sees changes made by others
func NewGroupingPersister(p types.GroupingPersister) *groupingPersisterFilter {
	return &groupingPersisterFilter{
		GroupingPersister: p,
		changes:           make(map[types.GroupingPolicyChange]int),
	}
}

// Insert inserts a policy to the persister
func (f *groupingPersisterFilter) Insert(ent types.Entity, c types.Container) error {
	change := types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistInsert,
	}

	f.expect(change)
	if e := f.GroupingPersister.Insert(ent, c); e != nil {
		f.forget(change)
		return e
	}
	return nil
}

// Remove a policy from the persister
func (f *groupingPersisterFilter) Remove(ent types.Entity, c types.Container) error {
	change := types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistDelete,
	}

	f.expect(change)
	if e := f.GroupingPersister.Remove(ent, c); e != nil {
		f.forget(change)
		return e
	}
	return nil
}

// Watch changes not made through the filter
func (f *groupingPersisterFilter) Watch(ctx context.Context) (<-chan types.GroupingPolicyChange, error) {
	in, e := f.GroupingPersister.Watch(ctx)
	if e != nil {
		return nil, e
	}

	// keep draining in after ctx is done, the inner persister closes it
	out := make(chan types.GroupingPolicyChange)
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

func (f *groupingPersisterFilter) expect(change types.GroupingPolicyChange) {
	f.Lock()
	defer f.Unlock()
	f.changes[change]++
}

// forget tells if the change is expected, and stops expecting it once
func (f *groupingPersisterFilter) forget(change types.GroupingPolicyChange) bool {
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
