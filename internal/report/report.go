// Package report explains how permissions are held by subjects on targets,
// walking group memberships and folder ancestry.
package report

import (
	"github.com/go-logr/logr"
	"github.com/supremind/docperm/types"
)

// Resolver builds permission reports from groupings and explicit grants
type Resolver struct {
	subjects  types.GroupingReader
	documents types.GroupingReader
	grants    types.GrantStore
	name      types.Namer
	log       logr.Logger
}

// New creates a resolver, entities are named by their bare identifiers if name is nil
func New(subjects, documents types.GroupingReader, grants types.GrantStore, name types.Namer, l logr.Logger) *Resolver {
	if name == nil {
		name = func(ent types.Entity) string { return ent.Name() }
	}
	return &Resolver{
		subjects:  subjects,
		documents: documents,
		grants:    grants,
		name:      name,
		log:       l,
	}
}

// chain leads from an entity to the holder of some grants,
// an empty chain means the entity itself
type chain []types.Container

// Report returns explicit and inherited permissions of sub on tgt.
// Grants held by sub on tgt itself are explicit, grants held by groups of sub,
// or on folders of tgt, are inherited.
func (r *Resolver) Report(sub types.Subject, tgt types.Target) (*types.Report, error) {
	r.log.V(6).Info("report", "subject", sub, "target", tgt)

	subjectChains, e := r.chainsOf(r.subjects, sub)
	if e != nil {
		return nil, e
	}

	var targetChains []chain
	if ent, ok := tgt.(types.Entity); ok {
		targetChains, e = r.chainsOf(r.documents, ent)
		if e != nil {
			return nil, e
		}
	} else {
		targetChains = []chain{nil}
	}

	explicit := make(types.PermissionSet)
	inherited := make(types.InheritedMap)

	for _, sc := range subjectChains {
		holder := sub
		if len(sc) > 0 {
			holder = sc[len(sc)-1].(types.Subject)
		}

		for _, tc := range targetChains {
			on := tgt
			if len(tc) > 0 {
				on = tc[len(tc)-1].(types.Target)
			}

			perms, e := r.grants.PermissionsOf(holder, on)
			if e != nil {
				return nil, e
			}
			if len(perms) == 0 {
				continue
			}

			if len(sc) == 0 && len(tc) == 0 {
				for p := range perms {
					explicit.Add(p)
				}
				continue
			}

			path := r.pathOf(sc, tc)
			for p := range perms {
				inherited.Add(p, path)
			}
		}
	}

	return r.assemble(sub, tgt, explicit, inherited), nil
}

func (r *Resolver) chainsOf(g types.GroupingReader, ent types.Entity) ([]chain, error) {
	paths, e := g.PathsOf(ent)
	if e != nil {
		return nil, e
	}

	chains := make([]chain, 0, len(paths)+1)
	chains = append(chains, nil)
	for _, p := range paths {
		chains = append(chains, chain(p))
	}
	return chains, nil
}

func (r *Resolver) pathOf(sc, tc chain) types.InheritancePath {
	path := make(types.InheritancePath, 0, len(sc)+len(tc))
	for _, c := range sc {
		path = append(path, r.name(c))
	}
	for _, c := range tc {
		path = append(path, r.name(c))
	}
	return path
}

// assemble splits create permissions out of the report, they are only meaningful on folders
func (r *Resolver) assemble(sub types.Subject, tgt types.Target, explicit types.PermissionSet, inherited types.InheritedMap) *types.Report {
	_, isFolder := tgt.(types.Folder)

	report := &types.Report{
		Subject:   sub,
		Target:    tgt,
		Inherited: make(types.InheritedMap, len(inherited)),
	}

	plain, docTypes := explicit.Split()
	report.Explicit = plain
	if isFolder {
		report.ExplicitCreate = docTypes
		report.InheritedCreate = make(map[string][]types.InheritancePath)
	}

	for p, paths := range inherited {
		if dt, ok := p.DocType(); ok {
			if isFolder {
				report.InheritedCreate[dt] = paths
			}
			continue
		}
		report.Inherited[p] = paths
	}

	return report
}
