package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.PermissionPersister = (*PermissionPersister)(nil)

// PermissionPersister keeps permission polices in a table of subject, target, and permission columns
type PermissionPersister struct {
	db      *sql.DB
	table   string
	changes chan types.PermissionPolicyChange
	sync.Mutex
}

// NewPermissionPersister creates the table if it does not exist
func NewPermissionPersister(db *sql.DB, table string) (*PermissionPersister, error) {
	if e := checkTable(table); e != nil {
		return nil, e
	}

	q := `CREATE TABLE IF NOT EXISTS ` + table + ` (
		subject TEXT NOT NULL,
		target TEXT NOT NULL,
		permission TEXT NOT NULL,
		PRIMARY KEY (subject, target, permission)
	)`
	if _, e := db.Exec(q); e != nil {
		return nil, fmt.Errorf("create table %s: %w", table, e)
	}

	return &PermissionPersister{db: db, table: table}, nil
}

// Insert implements PermissionPersister interface
func (p *PermissionPersister) Insert(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()

	res, e := p.db.Exec(`INSERT OR IGNORE INTO `+p.table+` (subject, target, permission) VALUES (?, ?, ?)`,
		sub.String(), tgt.String(), string(perm))
	if e != nil {
		return fmt.Errorf("insert permission %s -[%s]-> %s: %w", sub, perm, tgt, e)
	}
	ok, e := affected(res)
	if e != nil {
		return e
	}
	if !ok {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrAlreadyExists, sub, perm, tgt)
	}

	p.notify(types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistInsert,
	})
	return nil
}

// Remove implements PermissionPersister interface
func (p *PermissionPersister) Remove(sub types.Subject, tgt types.Target, perm types.Permission) error {
	p.Lock()
	defer p.Unlock()

	res, e := p.db.Exec(`DELETE FROM `+p.table+` WHERE subject = ? AND target = ? AND permission = ?`,
		sub.String(), tgt.String(), string(perm))
	if e != nil {
		return fmt.Errorf("remove permission %s -[%s]-> %s: %w", sub, perm, tgt, e)
	}
	ok, e := affected(res)
	if e != nil {
		return e
	}
	if !ok {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrNotFound, sub, perm, tgt)
	}

	p.notify(types.PermissionPolicyChange{
		PermissionPolicy: types.PermissionPolicy{Subject: sub, Target: tgt, Permission: perm},
		Method:           types.PersistDelete,
	})
	return nil
}

// List implements PermissionPersister interface
func (p *PermissionPersister) List() ([]types.PermissionPolicy, error) {
	rows, e := p.db.Query(`SELECT subject, target, permission FROM ` + p.table + ` ORDER BY subject, target, permission`)
	if e != nil {
		return nil, fmt.Errorf("list permission polices: %w", e)
	}
	defer rows.Close()

	var polices []types.PermissionPolicy
	for rows.Next() {
		var sub, tgt, perm string
		if e := rows.Scan(&sub, &tgt, &perm); e != nil {
			return nil, e
		}

		subject, e := types.ParseSubject(sub)
		if e != nil {
			return nil, e
		}
		target, e := types.ParseTarget(tgt)
		if e != nil {
			return nil, e
		}
		polices = append(polices, types.PermissionPolicy{
			Subject:    subject,
			Target:     target,
			Permission: types.Permission(perm),
		})
	}

	return polices, rows.Err()
}

// Watch implements PermissionPersister interface, only the latest watcher receives changes
func (p *PermissionPersister) Watch(ctx context.Context) (<-chan types.PermissionPolicyChange, error) {
	p.Lock()
	defer p.Unlock()

	changes := make(chan types.PermissionPolicyChange)
	p.changes = changes

	go func() {
		<-ctx.Done()
		p.Lock()
		defer p.Unlock()
		if p.changes == changes {
			p.changes = nil
		}
		close(changes)
	}()

	return changes, nil
}

// notify must be called with the lock held
func (p *PermissionPersister) notify(change types.PermissionPolicyChange) {
	if p.changes != nil {
		p.changes <- change
	}
}
