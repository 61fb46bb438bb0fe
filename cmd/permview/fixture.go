package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/supremind/docperm/types"
)

// fixture describes groups, the document tree, and grants to load into a manager
type fixture struct {
	// Names are display names keyed by serialized entities, such as "folder:<uuid>"
	Names       map[string]string `yaml:"names"`
	Memberships []struct {
		Member string `yaml:"member"`
		Group  string `yaml:"group"`
	} `yaml:"memberships"`
	Placements []struct {
		Target string `yaml:"target"`
		Folder string `yaml:"folder"`
	} `yaml:"placements"`
	Grants []struct {
		Subject     string             `yaml:"subject"`
		Target      string             `yaml:"target"`
		Permissions []types.Permission `yaml:"permissions"`
	} `yaml:"grants"`
}

func loadFixture(path string) (*fixture, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()

	var fx fixture
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if e := dec.Decode(&fx); e != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, e)
	}
	return &fx, nil
}

func (fx *fixture) namer() types.Namer {
	return func(ent types.Entity) string {
		if n, ok := fx.Names[ent.String()]; ok {
			return n
		}
		return ent.Name()
	}
}

// apply loads the fixture into m, polices already known are kept as they are
func (fx *fixture) apply(m types.Manager) error {
	for _, ms := range fx.Memberships {
		sub, e := types.ParseSubject(ms.Member)
		if e != nil {
			return e
		}
		grp, e := parseGroup(ms.Group)
		if e != nil {
			return e
		}
		if e := m.JoinGroup(sub, grp); e != nil {
			return e
		}
	}

	for _, pl := range fx.Placements {
		tgt, e := types.ParseTarget(pl.Target)
		if e != nil {
			return e
		}
		folder, e := parseFolder(pl.Folder)
		if e != nil {
			return e
		}
		if e := m.Place(tgt, folder); e != nil {
			return e
		}
	}

	for _, g := range fx.Grants {
		sub, e := types.ParseSubject(g.Subject)
		if e != nil {
			return e
		}
		tgt, e := types.ParseTarget(g.Target)
		if e != nil {
			return e
		}
		for _, p := range g.Permissions {
			if e := m.Grant(sub, tgt, p); e != nil {
				return e
			}
		}
	}

	return nil
}

func parseGroup(s string) (types.Group, error) {
	sub, e := types.ParseSubject(s)
	if e != nil {
		return "", e
	}
	grp, ok := sub.(types.Group)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a group", types.ErrInvalidContainer, s)
	}
	return grp, nil
}

func parseFolder(s string) (types.Folder, error) {
	tgt, e := types.ParseTarget(s)
	if e != nil {
		return "", e
	}
	folder, ok := tgt.(types.Folder)
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrNotAFolder, s)
	}
	return folder, nil
}
