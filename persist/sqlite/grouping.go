package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/supremind/docperm/types"
)

var _ types.GroupingPersister = (*GroupingPersister)(nil)

// GroupingPersister keeps grouping polices in a table of entity and container columns
type GroupingPersister struct {
	db      *sql.DB
	table   string
	changes chan types.GroupingPolicyChange
	sync.Mutex
}

// NewGroupingPersister creates the table if it does not exist
func NewGroupingPersister(db *sql.DB, table string) (*GroupingPersister, error) {
	if e := checkTable(table); e != nil {
		return nil, e
	}

	q := `CREATE TABLE IF NOT EXISTS ` + table + ` (
		entity TEXT NOT NULL,
		container TEXT NOT NULL,
		PRIMARY KEY (entity, container)
	)`
	if _, e := db.Exec(q); e != nil {
		return nil, fmt.Errorf("create table %s: %w", table, e)
	}

	return &GroupingPersister{db: db, table: table}, nil
}

// Insert implements GroupingPersister interface
func (p *GroupingPersister) Insert(ent types.Entity, c types.Container) error {
	p.Lock()
	defer p.Unlock()

	res, e := p.db.Exec(`INSERT OR IGNORE INTO `+p.table+` (entity, container) VALUES (?, ?)`, ent.String(), c.String())
	if e != nil {
		return fmt.Errorf("insert grouping policy %s -> %s: %w", ent, c, e)
	}
	ok, e := affected(res)
	if e != nil {
		return e
	}
	if !ok {
		return fmt.Errorf("%w: grouping policy %s -> %s", types.ErrAlreadyExists, ent, c)
	}

	p.notify(types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistInsert,
	})
	return nil
}

// Remove implements GroupingPersister interface
func (p *GroupingPersister) Remove(ent types.Entity, c types.Container) error {
	p.Lock()
	defer p.Unlock()

	res, e := p.db.Exec(`DELETE FROM `+p.table+` WHERE entity = ? AND container = ?`, ent.String(), c.String())
	if e != nil {
		return fmt.Errorf("remove grouping policy %s -> %s: %w", ent, c, e)
	}
	ok, e := affected(res)
	if e != nil {
		return e
	}
	if !ok {
		return fmt.Errorf("%w: grouping policy %s -> %s", types.ErrNotFound, ent, c)
	}

	p.notify(types.GroupingPolicyChange{
		GroupingPolicy: types.GroupingPolicy{Entity: ent, Container: c},
		Method:         types.PersistDelete,
	})
	return nil
}

// List implements GroupingPersister interface
func (p *GroupingPersister) List() ([]types.GroupingPolicy, error) {
	rows, e := p.db.Query(`SELECT entity, container FROM ` + p.table + ` ORDER BY entity, container`)
	if e != nil {
		return nil, fmt.Errorf("list grouping polices: %w", e)
	}
	defer rows.Close()

	var polices []types.GroupingPolicy
	for rows.Next() {
		var ent, c string
		if e := rows.Scan(&ent, &c); e != nil {
			return nil, e
		}

		entity, e := types.ParseEntity(ent)
		if e != nil {
			return nil, e
		}
		container, e := types.ParseContainer(c)
		if e != nil {
			return nil, e
		}
		polices = append(polices, types.GroupingPolicy{Entity: entity, Container: container})
	}

	return polices, rows.Err()
}

// Watch implements GroupingPersister interface, only the latest watcher receives changes
func (p *GroupingPersister) Watch(ctx context.Context) (<-chan types.GroupingPolicyChange, error) {
	p.Lock()
	defer p.Unlock()

	changes := make(chan types.GroupingPolicyChange)
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
func (p *GroupingPersister) notify(change types.GroupingPolicyChange) {
	if p.changes != nil {
		p.changes <- change
	}
}
