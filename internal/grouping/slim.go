package grouping

import (
	"fmt"
	"sort"

	"github.com/supremind/docperm/types"
)

var _ types.Grouping = (*slimGrouping)(nil)

// slimGrouping is a simplest implementation of Grouping interface
// it is used as a prototype of concept and baseline for testing
type slimGrouping struct {
	parents  map[types.Entity]map[types.Container]struct{}
	children map[types.Container]map[types.Entity]struct{}
	maxDepth int
}

func newSlimGrouping() *slimGrouping {
	return &slimGrouping{
		parents:  make(map[types.Entity]map[types.Container]struct{}),
		children: make(map[types.Container]map[types.Entity]struct{}),
		maxDepth: 10,
	}
}

// Join implements Grouping interface
func (g *slimGrouping) Join(ent types.Entity, c types.Container) error {
	if ent == types.Entity(c) {
		return fmt.Errorf("%w: %s could not contain itself", types.ErrInvalidContainer, c)
	}

	if g.parents[ent] == nil {
		g.parents[ent] = make(map[types.Container]struct{}, 1)
	}
	g.parents[ent][c] = struct{}{}

	if g.children[c] == nil {
		g.children[c] = make(map[types.Entity]struct{})
	}
	g.children[c][ent] = struct{}{}

	return nil
}

// Leave implements Grouping interface
func (g *slimGrouping) Leave(ent types.Entity, c types.Container) error {
	if _, ok := g.parents[ent][c]; !ok {
		return fmt.Errorf("%w: grouping policy: %s -> %s", types.ErrNotFound, ent, c)
	}
	if _, ok := g.children[c][ent]; !ok {
		return fmt.Errorf("%w: grouping policy: %s -> %s", types.ErrNotFound, c, ent)
	}

	delete(g.parents[ent], c)
	delete(g.children[c], ent)

	return nil
}

// IsIn implements Grouping interface
func (g *slimGrouping) IsIn(ent types.Entity, c types.Container) (bool, error) {
	containers, e := g.ContainersOf(ent)
	if e != nil {
		return false, e
	}

	_, ok := containers[c]
	return ok, nil
}

// AllContainers implements Grouping interface
func (g *slimGrouping) AllContainers() (map[types.Container]struct{}, error) {
	containers := make(map[types.Container]struct{}, len(g.children))
	for c := range g.children {
		containers[c] = struct{}{}
	}
	for ent := range g.parents {
		if c, ok := ent.(types.Container); ok {
			containers[c] = struct{}{}
		}
	}
	return containers, nil
}

// AllMembers implements Grouping interface
func (g *slimGrouping) AllMembers() (map[types.Member]struct{}, error) {
	members := make(map[types.Member]struct{}, len(g.parents))
	for ent := range g.parents {
		if m, ok := ent.(types.Member); ok {
			members[m] = struct{}{}
		}
	}
	return members, nil
}

// ContainersOf implements Grouping interface
func (g *slimGrouping) ContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	ancients := make(map[types.Container]struct{})

	var query func(ent types.Entity, depth int)
	query = func(ent types.Entity, depth int) {
		if depth > g.maxDepth {
			return
		}
		for c := range g.parents[ent] {
			if _, ok := ancients[c]; ok {
				continue
			}
			ancients[c] = struct{}{}
			query(c, depth+1)
		}
	}
	query(ent, 0)

	return ancients, nil
}

// MembersIn implements Grouping interface
func (g *slimGrouping) MembersIn(c types.Container) (map[types.Member]struct{}, error) {
	members := make(map[types.Member]struct{})
	seen := make(map[types.Container]struct{})

	var query func(c types.Container, depth int)
	query = func(c types.Container, depth int) {
		if depth > g.maxDepth {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}

		for ch := range g.children[c] {
			if m, ok := ch.(types.Member); ok {
				members[m] = struct{}{}
			} else {
				query(ch.(types.Container), depth+1)
			}
		}
	}
	query(c, 0)

	return members, nil
}

// PathsOf implements Grouping interface
func (g *slimGrouping) PathsOf(ent types.Entity) ([][]types.Container, error) {
	var paths [][]types.Container

	var walk func(from types.Entity, path []types.Container)
	walk = func(from types.Entity, path []types.Container) {
		if len(path) > g.maxDepth {
			return
		}

		parents := make([]types.Container, 0, len(g.parents[from]))
		for c := range g.parents[from] {
			parents = append(parents, c)
		}
		sort.Slice(parents, func(i, j int) bool { return parents[i].String() < parents[j].String() })

	next:
		for _, c := range parents {
			if types.Entity(c) == ent {
				continue
			}
			for _, seen := range path {
				if seen == c {
					continue next
				}
			}

			chain := make([]types.Container, len(path)+1)
			copy(chain, path)
			chain[len(path)] = c
			paths = append(paths, chain)
			walk(c, chain)
		}
	}
	walk(ent, nil)

	return paths, nil
}

// ImmediateContainersOf implements Grouping interface
func (g *slimGrouping) ImmediateContainersOf(ent types.Entity) (map[types.Container]struct{}, error) {
	return g.parents[ent], nil
}

// ImmediateEntitiesIn implements Grouping interface
func (g *slimGrouping) ImmediateEntitiesIn(c types.Container) (map[types.Entity]struct{}, error) {
	return g.children[c], nil
}

// RemoveContainer implements Grouping interface
func (g *slimGrouping) RemoveContainer(c types.Container) error {
	children := g.children[c]
	parents := g.parents[c]

	delete(g.children, c)
	delete(g.parents, c)

	for ch := range children {
		delete(g.parents[ch], c)
	}
	for p := range parents {
		delete(g.children[p], c)
	}

	return nil
}

// RemoveMember implements Grouping interface
func (g *slimGrouping) RemoveMember(m types.Member) error {
	parents := g.parents[m]
	delete(g.parents, m)

	for p := range parents {
		delete(g.children[p], m)
	}
	return nil
}
