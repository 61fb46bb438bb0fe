package grouping

import (
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.Grouping = (*syncedGrouping)(nil)

// syncedGrouping makes the inner grouping be safe in concurrent usages,
// fatGrouping fills its caches on reads, so reads take the write lock too
type syncedGrouping struct {
	g types.Grouping
	sync.Mutex
}

func newSyncedGrouping(g types.Grouping) *syncedGrouping {
	return &syncedGrouping{
		g: g,
	}
}

// Join implements Grouping interface
func (g *syncedGrouping) Join(ent types.Entity, c types.Container) error {
	g.Lock()
	defer g.Unlock()
	return g.g.Join(ent, c)
}

// Leave implements Grouping interface
func (g *syncedGrouping) Leave(ent types.Entity, c types.Container) error {
	g.Lock()
	defer g.Unlock()
	return g.g.Leave(ent, c)
}

// IsIn implements Grouping interface
func (g *syncedGrouping) IsIn(ent types.Entity, c types.Container) (bool, error) {
	g.Lock()
	defer g.Unlock()
	return g.g.IsIn(ent, c)
}

// AllContainers implements Grouping interface
func (g *syncedGrouping) AllContainers() (map[types.Container]struct{}, error) {
	g.Lock()
	defer g.Unlock()
	return g.g.AllContainers()
}

// AllMembers implements Grouping interface
func (g *syncedGrouping) AllMembers() (map[types.Member]struct{}, error) {
	g.Lock()
	defer g.Unlock()
	return g.g.AllMembers()
}

// ContainersOf implements Grouping interface
func (g *syncedGrouping) ContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	g.Lock()
	defer g.Unlock()

	containers, e := g.g.ContainersOf(ent)
	if e != nil {
		return nil, e
	}
	return copyContainers(containers), nil
}

// MembersIn implements Grouping interface
func (g *syncedGrouping) MembersIn(c types.Container) (map[types.Member]struct{}, error) {
	g.Lock()
	defer g.Unlock()

	members, e := g.g.MembersIn(c)
	if e != nil {
		return nil, e
	}
	res := make(map[types.Member]struct{}, len(members))
	for m := range members {
		res[m] = struct{}{}
	}
	return res, nil
}

// PathsOf implements Grouping interface
func (g *syncedGrouping) PathsOf(ent types.Entity) ([][]types.Container, error) {
	g.Lock()
	defer g.Unlock()

	paths, e := g.g.PathsOf(ent)
	if e != nil {
		return nil, e
	}
	res := make([][]types.Container, 0, len(paths))
	for _, path := range paths {
		res = append(res, append([]types.Container(nil), path...))
	}
	return res, nil
}

// ImmediateContainersOf implements Grouping interface
func (g *syncedGrouping) ImmediateContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	g.Lock()
	defer g.Unlock()

	containers, e := g.g.ImmediateContainersOf(ent)
	if e != nil {
		return nil, e
	}
	return copyContainers(containers), nil
}

// ImmediateEntitiesIn implements Grouping interface
func (g *syncedGrouping) ImmediateEntitiesIn(c types.Container) (map[types.Entity]struct{}, error) {
	g.Lock()
	defer g.Unlock()

	entities, e := g.g.ImmediateEntitiesIn(c)
	if e != nil {
		return nil, e
	}
	res := make(map[types.Entity]struct{}, len(entities))
	for ent := range entities {
		res[ent] = struct{}{}
	}
	return res, nil
}

// RemoveContainer implements Grouping interface
func (g *syncedGrouping) RemoveContainer(c types.Container) error {
	g.Lock()
	defer g.Unlock()
	return g.g.RemoveContainer(c)
}

// RemoveMember implements Grouping interface
func (g *syncedGrouping) RemoveMember(m types.Member) error {
	g.Lock()
	defer g.Unlock()
	return g.g.RemoveMember(m)
}

func copyContainers(containers map[types.Container]struct{}) map[types.Container]struct{} {
	res := make(map[types.Container]struct{}, len(containers))
	for c := range containers {
		res[c] = struct{}{}
	}
	return res
}
