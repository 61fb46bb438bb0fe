package types

// Manager is the top level interface for end use.
// It manages group memberships, the document tree, and explicit grants,
// and reports how permissions are held by subjects.
type Manager interface {
	Subjector
	Documenter
	Permitter
	Explainer
}

// Subjector manages user-group memberships
type Subjector interface {
	// JoinGroup joins a user or a sub group to a group
	JoinGroup(sub Subject, grp Group) error

	// LeaveGroup removes a user or a sub group from a group
	LeaveGroup(sub Subject, grp Group) error

	// RemoveUser removes a user and all policies about it
	RemoveUser(user User) error

	// RemoveGroup removes a group and all policies about it
	RemoveGroup(grp Group) error

	// Subjects returns the GroupingReader interface for subjects
	Subjects() GroupingReader
}

// Documenter manages the folder tree of documents
type Documenter interface {
	// Place puts a document or a sub folder into a folder
	Place(tgt Target, folder Folder) error

	// Unplace takes a document or a sub folder out of a folder
	Unplace(tgt Target, folder Folder) error

	// RemoveDocument removes a document and all polices about it
	RemoveDocument(doc Document) error

	// RemoveFolder removes a folder and all polices about it
	RemoveFolder(folder Folder) error

	// Documents returns the GroupingReader interface for documents
	Documents() GroupingReader
}

// Permitter manages explicit grants
type Permitter interface {
	// Grant permission to subject on target
	Grant(sub Subject, tgt Target, perm Permission) error

	// Revoke permission from subject on target
	Revoke(sub Subject, tgt Target, perm Permission) error

	// GrantCreate allows subject to create documents of docType in folder
	GrantCreate(sub Subject, folder Folder, docType string) error

	// RevokeCreate disallows subject to create documents of docType in folder
	RevokeCreate(sub Subject, folder Folder, docType string) error

	// Explicit returns permissions granted directly to subject on target
	Explicit(sub Subject, tgt Target) (PermissionSet, error)
}

// Explainer explains how permissions are held, and commits edits
type Explainer interface {
	// Report returns explicit and inherited permissions of subject on target
	Report(sub Subject, tgt Target) (*Report, error)

	// States returns the state of every catalog permission of subject on target
	States(sub Subject, tgt Target) ([]PermissionState, error)

	// CreateSummary summarises create permissions of subject in folder
	CreateSummary(sub Subject, folder Folder) (CreateSummary, error)

	// Edit starts an edit session on target for subjects
	Edit(tgt Target, subs ...Subject) (EditSession, error)

	// Commit applies net changes of a change set on target
	Commit(tgt Target, cs *ChangeSet) error

	// Apply changes in order, stop at the first failure
	Apply(changes ...Change) error
}

// Report is the permission report of a subject on a target
type Report struct {
	Subject Subject
	Target  Target

	Explicit  PermissionSet
	Inherited InheritedMap

	// ExplicitCreate and InheritedCreate are document types of create permissions,
	// they are only reported on folders
	ExplicitCreate  []string
	InheritedCreate map[string][]InheritancePath
}

// EditSession tracks tick-box edits of explicit permissions on a single target.
// EditSession is confined to one caller and is not safe in concurrent usages.
type EditSession interface {
	// Target being edited
	Target() Target

	// Toggle grants p to sub if it is not granted explicitly, or revokes it otherwise
	Toggle(sub Subject, p Permission) (PermissionState, error)

	// ToggleCreate toggles the create permission of docType
	ToggleCreate(sub Subject, docType string) (PermissionState, error)

	// State of p for sub, with edits applied
	State(sub Subject, p Permission) (PermissionState, error)

	// States of all catalog permissions for sub, with edits applied
	States(sub Subject) ([]PermissionState, error)

	// Explicit permissions of sub, with edits applied
	Explicit(sub Subject) (PermissionSet, error)

	// CreateSummary of sub, with edits applied
	CreateSummary(sub Subject) (CreateSummary, error)

	// ChangeSet returns net changes made in the session
	ChangeSet() *ChangeSet
}

// Namer returns the display name of an entity in inheritance paths
type Namer func(Entity) string
