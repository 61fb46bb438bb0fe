package changeset

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/internal/inference"
	"github.com/supremind/docperm/types"
)

var _ types.EditSession = (*Session)(nil)

// Session tracks toggles of explicit permissions on one target,
// relative to the reports the session is started with.
type Session struct {
	target   types.Target
	catalog  types.Catalog
	subjects map[types.Subject]*subjectState
	cs       *types.ChangeSet
	log      logr.Logger
}

type subjectState struct {
	current         types.PermissionSet
	inherited       types.InheritedMap
	inheritedCreate []string
}

// New starts an edit session on target, for subjects of the reports
func New(target types.Target, catalog types.Catalog, reports []*types.Report, l logr.Logger) *Session {
	s := &Session{
		target:   target,
		catalog:  catalog,
		subjects: make(map[types.Subject]*subjectState, len(reports)),
		cs:       types.NewChangeSet(),
		log:      l,
	}

	for _, r := range reports {
		st := &subjectState{
			current:   r.Explicit.Clone(),
			inherited: make(types.InheritedMap, len(r.Inherited)),
		}
		for _, dt := range r.ExplicitCreate {
			st.current.Add(types.CreatePermission(dt))
		}
		for p, paths := range r.Inherited {
			st.inherited[p] = paths
		}
		for dt, paths := range r.InheritedCreate {
			st.inherited[types.CreatePermission(dt)] = paths
			st.inheritedCreate = append(st.inheritedCreate, dt)
		}
		s.subjects[r.Subject] = st
	}

	return s
}

// Target being edited
func (s *Session) Target() types.Target {
	return s.target
}

func (s *Session) subject(sub types.Subject) (*subjectState, error) {
	st, ok := s.subjects[sub]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrSubjectNotInSession, sub)
	}
	return st, nil
}

// Toggle grants p to sub if it is not granted explicitly, or revokes it otherwise
func (s *Session) Toggle(sub types.Subject, p types.Permission) (types.PermissionState, error) {
	if dt, ok := p.DocType(); ok {
		if _, ok := s.target.(types.Folder); !ok {
			return types.PermissionState{}, fmt.Errorf("%w: %s", types.ErrNotAFolder, s.target)
		}
		if len(s.catalog.DocTypes) > 0 && dt != types.AllDocTypes && !s.catalog.HasDocType(dt) {
			return types.PermissionState{}, fmt.Errorf("%w: %s", types.ErrUnknownPermission, p)
		}
	} else if len(s.catalog.Permissions) > 0 && !s.catalog.Has(p) {
		return types.PermissionState{}, fmt.Errorf("%w: %s", types.ErrUnknownPermission, p)
	}

	st, e := s.subject(sub)
	if e != nil {
		return types.PermissionState{}, e
	}

	if st.current.Has(p) {
		s.log.V(4).Info("toggle off", "subject", sub, "target", s.target, "permission", p)
		st.current.Remove(p)
		s.cs.Remove(sub, p)
	} else {
		s.log.V(4).Info("toggle on", "subject", sub, "target", s.target, "permission", p)
		st.current.Add(p)
		s.cs.Add(sub, p)
	}

	return inference.ComputeState(p, st.current, st.inherited, s.catalog.Rules), nil
}

// ToggleCreate toggles the permission to create documents of docType
func (s *Session) ToggleCreate(sub types.Subject, docType string) (types.PermissionState, error) {
	return s.Toggle(sub, types.CreatePermission(docType))
}

// State of p for sub, with edits applied
func (s *Session) State(sub types.Subject, p types.Permission) (types.PermissionState, error) {
	st, e := s.subject(sub)
	if e != nil {
		return types.PermissionState{}, e
	}
	return inference.ComputeState(p, st.current, st.inherited, s.catalog.Rules), nil
}

// States of all catalog permissions for sub, with edits applied
func (s *Session) States(sub types.Subject) ([]types.PermissionState, error) {
	st, e := s.subject(sub)
	if e != nil {
		return nil, e
	}
	return inference.ComputeStates(s.catalog, st.current, st.inherited), nil
}

// Explicit permissions of sub, with edits applied
func (s *Session) Explicit(sub types.Subject) (types.PermissionSet, error) {
	st, e := s.subject(sub)
	if e != nil {
		return nil, e
	}
	return st.current.Clone(), nil
}

// CreateSummary of sub, with edits applied
func (s *Session) CreateSummary(sub types.Subject) (types.CreateSummary, error) {
	st, e := s.subject(sub)
	if e != nil {
		return types.CreateSummary{}, e
	}
	_, explicit := st.current.Split()
	return inference.CreatePermissionSummary(explicit, st.inheritedCreate, s.catalog), nil
}

// ChangeSet returns net changes made in the session
func (s *Session) ChangeSet() *types.ChangeSet {
	return s.cs
}
