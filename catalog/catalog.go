// Package catalog loads permission catalogs from yaml files.
//
// A catalog file looks like:
//
//	scope: document
//	permissions:
//	  - permission: VIEW
//	    name: View
//	  - permission: OWNER
//	    name: Owner
//	rules:
//	  - trigger: OWNER
//	    label: Implied by OWNER
//	docTypes:
//	  - type: Feed
//	    name: Feed
package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/supremind/docperm/types"
)

type file struct {
	Scope       types.Scope `yaml:"scope"`
	Permissions []struct {
		Permission  types.Permission `yaml:"permission"`
		Name        string           `yaml:"name"`
		Description string           `yaml:"description"`
	} `yaml:"permissions"`
	Rules []struct {
		Trigger types.Permission   `yaml:"trigger"`
		Label   string             `yaml:"label"`
		Implies []types.Permission `yaml:"implies"`
	} `yaml:"rules"`
	DocTypes []struct {
		Type string `yaml:"type"`
		Name string `yaml:"name"`
	} `yaml:"docTypes"`
}

// Load reads a catalog from r, unknown fields are refused
func Load(r io.Reader) (types.Catalog, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if e := dec.Decode(&f); e != nil {
		return types.Catalog{}, fmt.Errorf("%w: %v", types.ErrInvalidCatalog, e)
	}

	c := types.Catalog{Scope: f.Scope}
	switch f.Scope {
	case types.ScopeApplication, types.ScopeDocument:
	default:
		return types.Catalog{}, fmt.Errorf("%w: unknown scope %q", types.ErrInvalidCatalog, f.Scope)
	}

	for _, p := range f.Permissions {
		if p.Permission == "" || p.Permission.IsCreate() {
			return types.Catalog{}, fmt.Errorf("%w: bad permission %q", types.ErrInvalidCatalog, p.Permission)
		}
		if c.Has(p.Permission) {
			return types.Catalog{}, fmt.Errorf("%w: duplicated permission %q", types.ErrInvalidCatalog, p.Permission)
		}
		c.Permissions = append(c.Permissions, types.PermissionDef{
			Permission:  p.Permission,
			DisplayName: p.Name,
			Description: p.Description,
		})
	}

	for _, r := range f.Rules {
		if !c.Has(r.Trigger) {
			return types.Catalog{}, fmt.Errorf("%w: rule triggered by unknown permission %q", types.ErrInvalidCatalog, r.Trigger)
		}
		for _, p := range r.Implies {
			if !c.Has(p) {
				return types.Catalog{}, fmt.Errorf("%w: rule %q implies unknown permission %q", types.ErrInvalidCatalog, r.Trigger, p)
			}
		}
		label := r.Label
		if label == "" {
			label = "Implied by " + string(r.Trigger)
		}
		c.Rules = append(c.Rules, types.ImpliedByRule{Trigger: r.Trigger, Label: label, Implies: r.Implies})
	}

	for _, dt := range f.DocTypes {
		if dt.Type == "" || dt.Type == types.AllDocTypes {
			return types.Catalog{}, fmt.Errorf("%w: bad document type %q", types.ErrInvalidCatalog, dt.Type)
		}
		if c.HasDocType(dt.Type) {
			return types.Catalog{}, fmt.Errorf("%w: duplicated document type %q", types.ErrInvalidCatalog, dt.Type)
		}
		c.DocTypes = append(c.DocTypes, types.DocType{Type: dt.Type, DisplayName: dt.Name})
	}
	if len(c.DocTypes) > 0 && f.Scope != types.ScopeDocument {
		return types.Catalog{}, fmt.Errorf("%w: document types in %s scope", types.ErrInvalidCatalog, f.Scope)
	}

	return c, nil
}

// LoadFile reads a catalog from the file at path
func LoadFile(path string) (types.Catalog, error) {
	f, e := os.Open(path)
	if e != nil {
		return types.Catalog{}, e
	}
	defer f.Close()

	return Load(f)
}
