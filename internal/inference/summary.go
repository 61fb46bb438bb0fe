package inference

import (
	"sort"
	"strings"

	"github.com/supremind/docperm/types"
)

// CreatePermissionSummary summarises explicit and effective (explicit or inherited) create permissions.
// A summary is "ALL" if its set holds the sentinel or every document type of the catalog,
// otherwise the sorted display names of its document types.
func CreatePermissionSummary(explicit, inherited []string, catalog types.Catalog) types.CreateSummary {
	effective := make([]string, 0, len(explicit)+len(inherited))
	effective = append(effective, explicit...)
	effective = append(effective, inherited...)

	return types.CreateSummary{
		Explicit:  summarise(explicit, catalog),
		Effective: summarise(effective, catalog),
	}
}

func summarise(docTypes []string, catalog types.Catalog) string {
	set := make(map[string]struct{}, len(docTypes))
	known := 0
	for _, dt := range docTypes {
		if dt == types.AllDocTypes {
			return types.AllDocTypes
		}
		if _, ok := set[dt]; ok {
			continue
		}
		set[dt] = struct{}{}
		if catalog.HasDocType(dt) {
			known++
		}
	}

	if len(catalog.DocTypes) > 0 && known == len(catalog.DocTypes) {
		return types.AllDocTypes
	}

	names := make([]string, 0, len(set))
	for dt := range set {
		names = append(names, catalog.DocTypeName(dt))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
