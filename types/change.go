package types

import "sort"

// Change is a mutation of explicit permissions, it is one of
// AddPermission, RemovePermission, AddCreatePermission, RemoveCreatePermission,
// AddAllCreatePermissions, RemoveAllCreatePermissions, and RemoveAllPermissions.
// Change is not expecting custom implementations
type Change interface {
	change() string
}

// AddPermission grants Permission to Subject on Target
type AddPermission struct {
	Subject    Subject
	Target     Target
	Permission Permission
}

// RemovePermission revokes Permission from Subject on Target
type RemovePermission struct {
	Subject    Subject
	Target     Target
	Permission Permission
}

// AddCreatePermission allows Subject to create documents of DocType in Folder
type AddCreatePermission struct {
	Subject Subject
	Folder  Folder
	DocType string
}

// RemoveCreatePermission disallows Subject to create documents of DocType in Folder
type RemoveCreatePermission struct {
	Subject Subject
	Folder  Folder
	DocType string
}

// AddAllCreatePermissions allows Subject to create documents of any type in Folder
type AddAllCreatePermissions struct {
	Subject Subject
	Folder  Folder
}

// RemoveAllCreatePermissions revokes every create permission of Subject in Folder
type RemoveAllCreatePermissions struct {
	Subject Subject
	Folder  Folder
}

// RemoveAllPermissions revokes every permission of Subject on Target
type RemoveAllPermissions struct {
	Subject Subject
	Target  Target
}

func (AddPermission) change() string              { return "add permission" }
func (RemovePermission) change() string           { return "remove permission" }
func (AddCreatePermission) change() string        { return "add create permission" }
func (RemoveCreatePermission) change() string     { return "remove create permission" }
func (AddAllCreatePermissions) change() string    { return "add all create permissions" }
func (RemoveAllCreatePermissions) change() string { return "remove all create permissions" }
func (RemoveAllPermissions) change() string       { return "remove all permissions" }

// ChangeSet accumulates net additions and removals of explicit permissions per subject,
// relative to the permissions as loaded.
// A permission is never pending for both addition and removal of the same subject.
type ChangeSet struct {
	additions map[Subject]PermissionSet
	removals  map[Subject]PermissionSet
}

// NewChangeSet creates an empty change set
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		additions: make(map[Subject]PermissionSet),
		removals:  make(map[Subject]PermissionSet),
	}
}

// Add records p being granted to sub, cancelling a pending removal of it if there is one
func (cs *ChangeSet) Add(sub Subject, p Permission) {
	if cs.removals[sub].Has(p) {
		cs.removals[sub].Remove(p)
		cs.tidy(sub)
		return
	}
	if cs.additions[sub] == nil {
		cs.additions[sub] = make(PermissionSet)
	}
	cs.additions[sub].Add(p)
}

// Remove records p being revoked from sub, cancelling a pending addition of it if there is one
func (cs *ChangeSet) Remove(sub Subject, p Permission) {
	if cs.additions[sub].Has(p) {
		cs.additions[sub].Remove(p)
		cs.tidy(sub)
		return
	}
	if cs.removals[sub] == nil {
		cs.removals[sub] = make(PermissionSet)
	}
	cs.removals[sub].Add(p)
}

func (cs *ChangeSet) tidy(sub Subject) {
	if len(cs.additions[sub]) == 0 {
		delete(cs.additions, sub)
	}
	if len(cs.removals[sub]) == 0 {
		delete(cs.removals, sub)
	}
}

// Additions returns permissions pending to be granted to sub
func (cs *ChangeSet) Additions(sub Subject) PermissionSet {
	return cs.additions[sub].Clone()
}

// Removals returns permissions pending to be revoked from sub
func (cs *ChangeSet) Removals(sub Subject) PermissionSet {
	return cs.removals[sub].Clone()
}

// Subjects returns subjects having pending changes, in serialized order
func (cs *ChangeSet) Subjects() []Subject {
	seen := make(map[Subject]struct{}, len(cs.additions)+len(cs.removals))
	for sub := range cs.additions {
		seen[sub] = struct{}{}
	}
	for sub := range cs.removals {
		seen[sub] = struct{}{}
	}

	subs := make([]Subject, 0, len(seen))
	for sub := range seen {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].String() < subs[j].String() })
	return subs
}

// Empty tells if there is nothing to commit
func (cs *ChangeSet) Empty() bool {
	return len(cs.additions) == 0 && len(cs.removals) == 0
}

// Changes translates the change set into changes on target,
// removals of a subject come before its additions.
func (cs *ChangeSet) Changes(target Target) []Change {
	folder, isFolder := target.(Folder)

	var changes []Change
	for _, sub := range cs.Subjects() {
		for _, p := range cs.removals[sub].Sorted() {
			if dt, ok := p.DocType(); ok && isFolder {
				changes = append(changes, RemoveCreatePermission{Subject: sub, Folder: folder, DocType: dt})
			} else {
				changes = append(changes, RemovePermission{Subject: sub, Target: target, Permission: p})
			}
		}
		for _, p := range cs.additions[sub].Sorted() {
			if dt, ok := p.DocType(); ok && isFolder {
				changes = append(changes, AddCreatePermission{Subject: sub, Folder: folder, DocType: dt})
			} else {
				changes = append(changes, AddPermission{Subject: sub, Target: target, Permission: p})
			}
		}
	}
	return changes
}
