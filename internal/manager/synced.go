package manager

import (
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.Manager = (*syncedManager)(nil)

// syncedManager makes compound operations of the given manager atomic
type syncedManager struct {
	sync.RWMutex
	m types.Manager
}

func newSyncedManager(m types.Manager) *syncedManager {
	return &syncedManager{m: m}
}

// JoinGroup joins a user or a sub group to a group
func (sm *syncedManager) JoinGroup(sub types.Subject, grp types.Group) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.JoinGroup(sub, grp)
}

// LeaveGroup removes a user or a sub group from a group
func (sm *syncedManager) LeaveGroup(sub types.Subject, grp types.Group) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.LeaveGroup(sub, grp)
}

// RemoveUser removes a user and all policies about it
func (sm *syncedManager) RemoveUser(user types.User) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.RemoveUser(user)
}

// RemoveGroup removes a group and all policies about it
func (sm *syncedManager) RemoveGroup(grp types.Group) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.RemoveGroup(grp)
}

// Subjects returns the GroupingReader interface for subjects
func (sm *syncedManager) Subjects() types.GroupingReader {
	return sm.m.Subjects()
}

// Place puts a document or a sub folder into a folder
func (sm *syncedManager) Place(tgt types.Target, folder types.Folder) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Place(tgt, folder)
}

// Unplace takes a document or a sub folder out of a folder
func (sm *syncedManager) Unplace(tgt types.Target, folder types.Folder) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Unplace(tgt, folder)
}

// RemoveDocument removes a document and all polices about it
func (sm *syncedManager) RemoveDocument(doc types.Document) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.RemoveDocument(doc)
}

// RemoveFolder removes a folder and all polices about it
func (sm *syncedManager) RemoveFolder(folder types.Folder) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.RemoveFolder(folder)
}

// Documents returns the GroupingReader interface for documents
func (sm *syncedManager) Documents() types.GroupingReader {
	return sm.m.Documents()
}

// Grant permission to subject on target
func (sm *syncedManager) Grant(sub types.Subject, tgt types.Target, perm types.Permission) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Grant(sub, tgt, perm)
}

// Revoke permission from subject on target
func (sm *syncedManager) Revoke(sub types.Subject, tgt types.Target, perm types.Permission) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Revoke(sub, tgt, perm)
}

// GrantCreate allows subject to create documents of docType in folder
func (sm *syncedManager) GrantCreate(sub types.Subject, folder types.Folder, docType string) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.GrantCreate(sub, folder, docType)
}

// RevokeCreate disallows subject to create documents of docType in folder
func (sm *syncedManager) RevokeCreate(sub types.Subject, folder types.Folder, docType string) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.RevokeCreate(sub, folder, docType)
}

// Explicit returns permissions granted directly to subject on target
func (sm *syncedManager) Explicit(sub types.Subject, tgt types.Target) (types.PermissionSet, error) {
	sm.RLock()
	defer sm.RUnlock()

	return sm.m.Explicit(sub, tgt)
}

// Report returns explicit and inherited permissions of subject on target
func (sm *syncedManager) Report(sub types.Subject, tgt types.Target) (*types.Report, error) {
	sm.RLock()
	defer sm.RUnlock()

	return sm.m.Report(sub, tgt)
}

// States returns the state of every catalog permission of subject on target
func (sm *syncedManager) States(sub types.Subject, tgt types.Target) ([]types.PermissionState, error) {
	sm.RLock()
	defer sm.RUnlock()

	return sm.m.States(sub, tgt)
}

// CreateSummary summarises create permissions of subject in folder
func (sm *syncedManager) CreateSummary(sub types.Subject, folder types.Folder) (types.CreateSummary, error) {
	sm.RLock()
	defer sm.RUnlock()

	return sm.m.CreateSummary(sub, folder)
}

// Edit starts an edit session on target for subjects
func (sm *syncedManager) Edit(tgt types.Target, subs ...types.Subject) (types.EditSession, error) {
	sm.RLock()
	defer sm.RUnlock()

	return sm.m.Edit(tgt, subs...)
}

// Commit applies net changes of a change set on target
func (sm *syncedManager) Commit(tgt types.Target, cs *types.ChangeSet) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Commit(tgt, cs)
}

// Apply changes in order, stop at the first failure
func (sm *syncedManager) Apply(changes ...types.Change) error {
	sm.Lock()
	defer sm.Unlock()

	return sm.m.Apply(changes...)
}
