package types

import (
	"sort"
	"strings"
)

// State tells how a permission is held by a subject
type State int

// possible states of a permission, mapped to unticked, ticked, and half ticked boxes
const (
	StateNone State = iota
	StateExplicit
	StateInferred
)

var stateNames = map[State]string{
	StateNone:     "none",
	StateExplicit: "explicit",
	StateInferred: "inferred",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// InheritancePath explains why a permission is inherited,
// segments are group names from the nearest group, followed by folder names from the nearest folder
type InheritancePath []string

func (p InheritancePath) String() string {
	return strings.Join(p, " > ")
}

// InheritedMap maps permissions to all paths they are inherited through
type InheritedMap map[Permission][]InheritancePath

// Has tells if p is inherited, a nil map has nothing
func (m InheritedMap) Has(p Permission) bool {
	_, ok := m[p]
	return ok
}

// Add records that p is inherited through path, a path is only recorded once
func (m InheritedMap) Add(p Permission, path InheritancePath) {
	for _, known := range m[p] {
		if known.String() == path.String() {
			return
		}
	}
	m[p] = append(m[p], path)
	sort.Slice(m[p], func(i, j int) bool { return m[p][i].String() < m[p][j].String() })
}

// Permissions returns the set of inherited permissions
func (m InheritedMap) Permissions() PermissionSet {
	s := make(PermissionSet, len(m))
	for p := range m {
		s[p] = struct{}{}
	}
	return s
}

// ImpliedByRule states that holding Trigger implies holding other permissions, for display only.
// An empty Implies means every other permission.
type ImpliedByRule struct {
	Trigger Permission
	Label   string
	Implies []Permission
}

// Covers tells if the rule implies p
func (r ImpliedByRule) Covers(p Permission) bool {
	if p == r.Trigger {
		return false
	}
	if len(r.Implies) == 0 {
		return true
	}
	for _, i := range r.Implies {
		if i == p {
			return true
		}
	}
	return false
}

// PermissionState is the computed state of a permission for a subject, it is never persisted
type PermissionState struct {
	Permission Permission
	State      State

	// Paths are the inheritance paths of an inferred permission,
	// or of its trigger if it is implied by an inherited permission
	Paths []InheritancePath

	// ImpliedBy is the label of the rule implying the permission, if any
	ImpliedBy string
	// Trigger is the permission the rule is triggered by
	Trigger Permission
}

// Describe renders the provenance of the state as human-readable lines
func (s PermissionState) Describe() []string {
	if s.State != StateInferred {
		return nil
	}

	lines := make([]string, 0, len(s.Paths)+1)
	if s.ImpliedBy != "" {
		lines = append(lines, s.ImpliedBy)
		for _, path := range s.Paths {
			lines = append(lines, string(s.Trigger)+" inherited from: "+path.String())
		}
		return lines
	}

	for _, path := range s.Paths {
		lines = append(lines, "Inherited from: "+path.String())
	}
	return lines
}

// CreateSummary summarises create permissions on a folder
type CreateSummary struct {
	// Explicit lists document types granted directly
	Explicit string
	// Effective lists document types granted directly or inherited
	Effective string
}
