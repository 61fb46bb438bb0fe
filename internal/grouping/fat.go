package grouping

import (
	"github.com/supremind/docperm/types"
)

var _ types.Grouping = (*fatGrouping)(nil)

// fatGrouping caches transitive relationships to speed up querying,
// caches are dropped on every write and filled again on demand
type fatGrouping struct {
	slim *slimGrouping // no sense to use another implementation

	// entity => all containers it belongs to
	containers map[types.Entity]map[types.Container]struct{}
	// container => all members belongs to it
	members map[types.Container]map[types.Member]struct{}
	// entity => all chains to its ancestors
	paths map[types.Entity][][]types.Container
}

func newFatGrouping() *fatGrouping {
	g := &fatGrouping{slim: newSlimGrouping()}
	g.reset()
	return g
}

func (g *fatGrouping) reset() {
	g.containers = make(map[types.Entity]map[types.Container]struct{})
	g.members = make(map[types.Container]map[types.Member]struct{})
	g.paths = make(map[types.Entity][][]types.Container)
}

func (g *fatGrouping) Join(ent types.Entity, c types.Container) error {
	if e := g.slim.Join(ent, c); e != nil {
		return e
	}
	g.reset()
	return nil
}

func (g *fatGrouping) Leave(ent types.Entity, c types.Container) error {
	if e := g.slim.Leave(ent, c); e != nil {
		return e
	}
	g.reset()
	return nil
}

func (g *fatGrouping) RemoveContainer(c types.Container) error {
	if e := g.slim.RemoveContainer(c); e != nil {
		return e
	}
	g.reset()
	return nil
}

func (g *fatGrouping) RemoveMember(m types.Member) error {
	if e := g.slim.RemoveMember(m); e != nil {
		return e
	}
	g.reset()
	return nil
}

func (g *fatGrouping) IsIn(ent types.Entity, c types.Container) (bool, error) {
	containers, e := g.ContainersOf(ent)
	if e != nil {
		return false, e
	}
	_, ok := containers[c]
	return ok, nil
}

func (g *fatGrouping) AllContainers() (map[types.Container]struct{}, error) {
	return g.slim.AllContainers()
}

func (g *fatGrouping) AllMembers() (map[types.Member]struct{}, error) {
	return g.slim.AllMembers()
}

func (g *fatGrouping) ContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	if containers, ok := g.containers[ent]; ok {
		return containers, nil
	}
	containers, e := g.slim.ContainersOf(ent)
	if e != nil {
		return nil, e
	}
	g.containers[ent] = containers
	return containers, nil
}

func (g *fatGrouping) MembersIn(c types.Container) (map[types.Member]struct{}, error) {
	if members, ok := g.members[c]; ok {
		return members, nil
	}
	members, e := g.slim.MembersIn(c)
	if e != nil {
		return nil, e
	}
	g.members[c] = members
	return members, nil
}

func (g *fatGrouping) PathsOf(ent types.Entity) ([][]types.Container, error) {
	if paths, ok := g.paths[ent]; ok {
		return paths, nil
	}
	paths, e := g.slim.PathsOf(ent)
	if e != nil {
		return nil, e
	}
	g.paths[ent] = paths
	return paths, nil
}

func (g *fatGrouping) ImmediateContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	return g.slim.ImmediateContainersOf(ent)
}

func (g *fatGrouping) ImmediateEntitiesIn(c types.Container) (map[types.Entity]struct{}, error) {
	return g.slim.ImmediateEntitiesIn(c)
}
