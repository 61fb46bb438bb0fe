package grouping

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/internal/persist/filter"
	"github.com/supremind/docperm/types"
)

var _ types.Grouping = (*persistedGrouping)(nil)

// persistedGrouping writes grouping polices through to a persister before applying them to the inner grouping,
// and applies changes made by others it watches from the persister
type persistedGrouping struct {
	persist types.GroupingPersister
	types.Grouping
	log logr.Logger
}

func newPersistedGrouping(ctx context.Context, inner types.Grouping, persist types.GroupingPersister, l logr.Logger) (*persistedGrouping, error) {
	g := &persistedGrouping{
		persist:  filter.NewGroupingPersister(persist),
		Grouping: inner,
		log:      l,
	}
	if e := g.loadPersisted(); e != nil {
		return nil, e
	}
	if e := g.startWatching(ctx); e != nil {
		return nil, e
	}

	return g, nil
}

func (g *persistedGrouping) loadPersisted() error {
	g.log.V(4).Info("load persisted polices")

	polices, e := g.persist.List()
	if e != nil {
		return e
	}
	for _, policy := range polices {
		if e := g.Grouping.Join(policy.Entity, policy.Container); e != nil {
			return e
		}
	}
	return nil
}

func (g *persistedGrouping) startWatching(ctx context.Context) error {
	changes, e := g.persist.Watch(ctx)
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
				if e := g.coordinateChange(change); e != nil {
					g.log.Error(e, "coordinate grouping changes")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (g *persistedGrouping) coordinateChange(change types.GroupingPolicyChange) error {
	g.log.V(4).Info("coordinate grouping changes", "change", change)

	switch change.Method {
	case types.PersistInsert:
		return g.Grouping.Join(change.Entity, change.Container)
	case types.PersistDelete:
		return g.Grouping.Leave(change.Entity, change.Container)
	}

	return fmt.Errorf("%w: grouping persister changes: %s", types.ErrUnsupportedPersist, change.Method)
}

func (g *persistedGrouping) Join(ent types.Entity, c types.Container) error {
	g.log.V(4).Info("join", "entity", ent, "container", c)

	if ent == types.Entity(c) {
		return fmt.Errorf("%w: %s could not contain itself", types.ErrInvalidContainer, c)
	}
	if e := g.persist.Insert(ent, c); e != nil && !errors.Is(e, types.ErrAlreadyExists) {
		return e
	}
	return g.Grouping.Join(ent, c)
}

func (g *persistedGrouping) Leave(ent types.Entity, c types.Container) error {
	g.log.V(4).Info("leave", "entity", ent, "container", c)

	if e := g.persist.Remove(ent, c); e != nil {
		return e
	}
	return g.Grouping.Leave(ent, c)
}

func (g *persistedGrouping) RemoveContainer(c types.Container) error {
	g.log.V(4).Info("remove container", "container", c)

	entities, e := g.Grouping.ImmediateEntitiesIn(c)
	if e != nil {
		return e
	}
	for ent := range entities {
		if e := g.persist.Remove(ent, c); e != nil {
			return e
		}
	}

	containers, e := g.Grouping.ImmediateContainersOf(c)
	if e != nil {
		return e
	}
	for super := range containers {
		if e := g.persist.Remove(c, super); e != nil {
			return e
		}
	}

	return g.Grouping.RemoveContainer(c)
}

func (g *persistedGrouping) RemoveMember(m types.Member) error {
	g.log.V(4).Info("remove member", "member", m)

	containers, e := g.Grouping.ImmediateContainersOf(m)
	if e != nil {
		return e
	}
	for c := range containers {
		if e := g.persist.Remove(m, c); e != nil {
			return e
		}
	}

	return g.Grouping.RemoveMember(m)
}
