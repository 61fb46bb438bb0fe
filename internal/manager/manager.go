// Package manager puts groupings, grants, and permission inference together.
package manager

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/supremind/docperm/internal/changeset"
	"github.com/supremind/docperm/internal/inference"
	"github.com/supremind/docperm/internal/report"
	"github.com/supremind/docperm/types"
)

// Config holds what a manager knows besides polices
type Config struct {
	ApplicationCatalog types.Catalog
	DocumentCatalog    types.Catalog
	Namer              types.Namer
}

type manager struct {
	subjects  types.Grouping
	documents types.Grouping
	grants    types.GrantStore
	resolver  *report.Resolver
	cfg       Config
	l         logr.Logger
}

// New creates a manager, safe in concurrent usages
func New(subjects, documents types.Grouping, grants types.GrantStore, cfg Config, l logr.Logger) types.Manager {
	var m types.Manager
	m = &manager{
		subjects:  subjects,
		documents: documents,
		grants:    grants,
		resolver:  report.New(subjects, documents, grants, cfg.Namer, l.WithName("report")),
		cfg:       cfg,
		l:         l,
	}

	m = newSyncedManager(m)

	return m
}

// JoinGroup joins a user or a sub group to a group
func (m *manager) JoinGroup(sub types.Subject, grp types.Group) error {
	m.l.V(4).Info("join group", "subject", sub, "group", grp)

	return m.subjects.Join(sub, grp)
}

// LeaveGroup removes a user or a sub group from a group
func (m *manager) LeaveGroup(sub types.Subject, grp types.Group) error {
	m.l.V(4).Info("leave group", "subject", sub, "group", grp)

	return m.subjects.Leave(sub, grp)
}

// RemoveUser removes a user and all policies about it
func (m *manager) RemoveUser(user types.User) error {
	m.l.V(4).Info("remove user", "user", user)

	if e := m.subjects.RemoveMember(user); e != nil {
		return e
	}
	return m.revokeAllFor(user)
}

// RemoveGroup removes a group and all policies about it
func (m *manager) RemoveGroup(grp types.Group) error {
	m.l.V(4).Info("remove group", "group", grp)

	if e := m.subjects.RemoveContainer(grp); e != nil {
		return e
	}
	return m.revokeAllFor(grp)
}

func (m *manager) revokeAllFor(sub types.Subject) error {
	perms, e := m.grants.PermissionsFor(sub)
	if e != nil {
		return e
	}
	for tgt, ps := range perms {
		for p := range ps {
			if e := m.grants.Revoke(sub, tgt, p); e != nil {
				return e
			}
		}
	}
	return nil
}

// Subjects returns the GroupingReader interface for subjects
func (m *manager) Subjects() types.GroupingReader {
	return m.subjects
}

// Place puts a document or a sub folder into a folder
func (m *manager) Place(tgt types.Target, folder types.Folder) error {
	m.l.V(4).Info("place", "target", tgt, "folder", folder)

	ent, ok := tgt.(types.Entity)
	if !ok {
		return fmt.Errorf("%w: %s could not be placed into folders", types.ErrInvalidTarget, tgt)
	}
	return m.documents.Join(ent, folder)
}

// Unplace takes a document or a sub folder out of a folder
func (m *manager) Unplace(tgt types.Target, folder types.Folder) error {
	m.l.V(4).Info("unplace", "target", tgt, "folder", folder)

	ent, ok := tgt.(types.Entity)
	if !ok {
		return fmt.Errorf("%w: %s is never placed into folders", types.ErrInvalidTarget, tgt)
	}
	return m.documents.Leave(ent, folder)
}

// RemoveDocument removes a document and all polices about it
func (m *manager) RemoveDocument(doc types.Document) error {
	m.l.V(4).Info("remove document", "document", doc)

	if e := m.documents.RemoveMember(doc); e != nil {
		return e
	}
	return m.revokeAllOn(doc)
}

// RemoveFolder removes a folder and all polices about it,
// documents and sub folders in it are kept, but they are not placed in it anymore
func (m *manager) RemoveFolder(folder types.Folder) error {
	m.l.V(4).Info("remove folder", "folder", folder)

	if e := m.documents.RemoveContainer(folder); e != nil {
		return e
	}
	return m.revokeAllOn(folder)
}

func (m *manager) revokeAllOn(tgt types.Target) error {
	perms, e := m.grants.PermissionsOn(tgt)
	if e != nil {
		return e
	}
	for sub, ps := range perms {
		for p := range ps {
			if e := m.grants.Revoke(sub, tgt, p); e != nil {
				return e
			}
		}
	}
	return nil
}

// Documents returns the GroupingReader interface for documents
func (m *manager) Documents() types.GroupingReader {
	return m.documents
}

// Grant permission to subject on target
func (m *manager) Grant(sub types.Subject, tgt types.Target, perm types.Permission) error {
	m.l.V(4).Info("grant", "subject", sub, "target", tgt, "permission", perm)

	if e := m.validate(tgt, perm); e != nil {
		return e
	}
	return m.grants.Grant(sub, tgt, perm)
}

// Revoke permission from subject on target
func (m *manager) Revoke(sub types.Subject, tgt types.Target, perm types.Permission) error {
	m.l.V(4).Info("revoke", "subject", sub, "target", tgt, "permission", perm)

	has, e := m.grants.Has(sub, tgt, perm)
	if e != nil {
		return e
	}
	if !has {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrNotFound, sub, perm, tgt)
	}
	return m.grants.Revoke(sub, tgt, perm)
}

func (m *manager) validate(tgt types.Target, perm types.Permission) error {
	if dt, ok := perm.DocType(); ok {
		if _, ok := tgt.(types.Folder); !ok {
			return fmt.Errorf("%w: %s on %s", types.ErrNotAFolder, perm, tgt)
		}
		docTypes := m.cfg.DocumentCatalog.DocTypes
		if len(docTypes) > 0 && dt != types.AllDocTypes && !m.cfg.DocumentCatalog.HasDocType(dt) {
			return fmt.Errorf("%w: %s on %s", types.ErrUnknownPermission, perm, tgt)
		}
		return nil
	}

	catalog := m.catalogOf(tgt)
	if len(catalog.Permissions) > 0 && !catalog.Has(perm) {
		return fmt.Errorf("%w: %s on %s", types.ErrUnknownPermission, perm, tgt)
	}
	return nil
}

// GrantCreate allows subject to create documents of docType in folder
func (m *manager) GrantCreate(sub types.Subject, folder types.Folder, docType string) error {
	return m.Grant(sub, folder, types.CreatePermission(docType))
}

// RevokeCreate disallows subject to create documents of docType in folder
func (m *manager) RevokeCreate(sub types.Subject, folder types.Folder, docType string) error {
	return m.Revoke(sub, folder, types.CreatePermission(docType))
}

// Explicit returns permissions granted directly to subject on target
func (m *manager) Explicit(sub types.Subject, tgt types.Target) (types.PermissionSet, error) {
	m.l.V(6).Info("explicit", "subject", sub, "target", tgt)

	return m.grants.PermissionsOf(sub, tgt)
}

// Report returns explicit and inherited permissions of subject on target
func (m *manager) Report(sub types.Subject, tgt types.Target) (*types.Report, error) {
	return m.resolver.Report(sub, tgt)
}

func (m *manager) catalogOf(tgt types.Target) types.Catalog {
	if _, ok := tgt.(types.Application); ok {
		return m.cfg.ApplicationCatalog
	}
	return m.cfg.DocumentCatalog
}

// States returns the state of every catalog permission of subject on target
func (m *manager) States(sub types.Subject, tgt types.Target) ([]types.PermissionState, error) {
	m.l.V(6).Info("states", "subject", sub, "target", tgt)

	r, e := m.resolver.Report(sub, tgt)
	if e != nil {
		return nil, e
	}
	return inference.ComputeStates(m.catalogOf(tgt), r.Explicit, r.Inherited), nil
}

// CreateSummary summarises create permissions of subject in folder
func (m *manager) CreateSummary(sub types.Subject, folder types.Folder) (types.CreateSummary, error) {
	m.l.V(6).Info("create summary", "subject", sub, "folder", folder)

	r, e := m.resolver.Report(sub, folder)
	if e != nil {
		return types.CreateSummary{}, e
	}

	inherited := make([]string, 0, len(r.InheritedCreate))
	for dt := range r.InheritedCreate {
		inherited = append(inherited, dt)
	}
	return inference.CreatePermissionSummary(r.ExplicitCreate, inherited, m.cfg.DocumentCatalog), nil
}

// Edit starts an edit session on target for subjects
func (m *manager) Edit(tgt types.Target, subs ...types.Subject) (types.EditSession, error) {
	m.l.V(4).Info("edit", "target", tgt, "subjects", subs)

	reports := make([]*types.Report, 0, len(subs))
	for _, sub := range subs {
		r, e := m.resolver.Report(sub, tgt)
		if e != nil {
			return nil, e
		}
		reports = append(reports, r)
	}

	return changeset.New(tgt, m.catalogOf(tgt), reports, m.l.WithName("session")), nil
}

// Commit applies net changes of a change set on target
func (m *manager) Commit(tgt types.Target, cs *types.ChangeSet) error {
	m.l.V(4).Info("commit", "target", tgt)

	return m.Apply(cs.Changes(tgt)...)
}

// Apply changes in order, stop at the first failure
func (m *manager) Apply(changes ...types.Change) error {
	for _, change := range changes {
		if e := m.apply(change); e != nil {
			return e
		}
	}
	return nil
}

func (m *manager) apply(change types.Change) error {
	switch c := change.(type) {
	case types.AddPermission:
		return m.Grant(c.Subject, c.Target, c.Permission)
	case types.RemovePermission:
		return m.Revoke(c.Subject, c.Target, c.Permission)
	case types.AddCreatePermission:
		return m.GrantCreate(c.Subject, c.Folder, c.DocType)
	case types.RemoveCreatePermission:
		return m.RevokeCreate(c.Subject, c.Folder, c.DocType)
	case types.AddAllCreatePermissions:
		return m.GrantCreate(c.Subject, c.Folder, types.AllDocTypes)
	case types.RemoveAllCreatePermissions:
		return m.revokeWhere(c.Subject, c.Folder, types.Permission.IsCreate)
	case types.RemoveAllPermissions:
		return m.revokeWhere(c.Subject, c.Target, func(types.Permission) bool { return true })
	}

	return fmt.Errorf("%w: %T", types.ErrUnsupportedChange, change)
}

func (m *manager) revokeWhere(sub types.Subject, tgt types.Target, match func(types.Permission) bool) error {
	m.l.V(4).Info("revoke all", "subject", sub, "target", tgt)

	perms, e := m.grants.PermissionsOf(sub, tgt)
	if e != nil {
		return e
	}
	for p := range perms {
		if !match(p) {
			continue
		}
		if e := m.grants.Revoke(sub, tgt, p); e != nil {
			return e
		}
	}
	return nil
}
