package permission

import (
	"fmt"

	"github.com/supremind/docperm/types"
)

var _ types.GrantStore = (*thinPermission)(nil)

// thinPermission knows only direct subject-target-permission grants
type thinPermission struct {
	bySubject map[types.Subject]map[types.Target]types.PermissionSet
	byTarget  map[types.Target]map[types.Subject]types.PermissionSet
}

func newThinPermission() *thinPermission {
	return &thinPermission{
		bySubject: make(map[types.Subject]map[types.Target]types.PermissionSet),
		byTarget:  make(map[types.Target]map[types.Subject]types.PermissionSet),
	}
}

func (p *thinPermission) Grant(sub types.Subject, tgt types.Target, perm types.Permission) error {
	if _, ok := p.bySubject[sub]; !ok {
		p.bySubject[sub] = make(map[types.Target]types.PermissionSet)
	}
	if _, ok := p.bySubject[sub][tgt]; !ok {
		p.bySubject[sub][tgt] = make(types.PermissionSet)
	}
	p.bySubject[sub][tgt].Add(perm)

	if _, ok := p.byTarget[tgt]; !ok {
		p.byTarget[tgt] = make(map[types.Subject]types.PermissionSet)
	}
	if _, ok := p.byTarget[tgt][sub]; !ok {
		p.byTarget[tgt][sub] = make(types.PermissionSet)
	}
	p.byTarget[tgt][sub].Add(perm)

	return nil
}

func (p *thinPermission) Revoke(sub types.Subject, tgt types.Target, perm types.Permission) error {
	if !p.bySubject[sub][tgt].Has(perm) {
		return fmt.Errorf("%w: permission %s -[%s]-> %s", types.ErrNotFound, sub, perm, tgt)
	}

	p.bySubject[sub][tgt].Remove(perm)
	if len(p.bySubject[sub][tgt]) == 0 {
		delete(p.bySubject[sub], tgt)
	}
	if len(p.bySubject[sub]) == 0 {
		delete(p.bySubject, sub)
	}

	p.byTarget[tgt][sub].Remove(perm)
	if len(p.byTarget[tgt][sub]) == 0 {
		delete(p.byTarget[tgt], sub)
	}
	if len(p.byTarget[tgt]) == 0 {
		delete(p.byTarget, tgt)
	}

	return nil
}

func (p *thinPermission) Has(sub types.Subject, tgt types.Target, perm types.Permission) (bool, error) {
	return p.bySubject[sub][tgt].Has(perm), nil
}

func (p *thinPermission) PermissionsOf(sub types.Subject, tgt types.Target) (types.PermissionSet, error) {
	return p.bySubject[sub][tgt].Clone(), nil
}

func (p *thinPermission) PermissionsOn(tgt types.Target) (map[types.Subject]types.PermissionSet, error) {
	out := make(map[types.Subject]types.PermissionSet, len(p.byTarget[tgt]))
	for sub, perms := range p.byTarget[tgt] {
		out[sub] = perms.Clone()
	}
	return out, nil
}

func (p *thinPermission) PermissionsFor(sub types.Subject) (map[types.Target]types.PermissionSet, error) {
	out := make(map[types.Target]types.PermissionSet, len(p.bySubject[sub]))
	for tgt, perms := range p.bySubject[sub] {
		out[tgt] = perms.Clone()
	}
	return out, nil
}
