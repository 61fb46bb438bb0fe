// Package inference computes how permissions are displayed for a subject:
// granted explicitly, inferred from inheritance or implying rules, or not held at all.
// Everything here is pure and total, unknown permissions resolve to StateNone.
package inference

import "github.com/supremind/docperm/types"

// ComputeState resolves the state of p, first match wins:
// explicit grants, inherited grants, then implying rules in declared order.
func ComputeState(p types.Permission, explicit types.PermissionSet, inherited types.InheritedMap, rules []types.ImpliedByRule) types.PermissionState {
	return resolve(p, explicit, inherited, rules, make(map[types.Permission]struct{}))
}

func resolve(p types.Permission, explicit types.PermissionSet, inherited types.InheritedMap, rules []types.ImpliedByRule, visiting map[types.Permission]struct{}) types.PermissionState {
	if explicit.Has(p) {
		return types.PermissionState{Permission: p, State: types.StateExplicit}
	}

	if inherited.Has(p) {
		return types.PermissionState{
			Permission: p,
			State:      types.StateInferred,
			Paths:      clonePaths(inherited[p]),
		}
	}

	visiting[p] = struct{}{}
	defer delete(visiting, p)

	for _, rule := range rules {
		if !rule.Covers(p) {
			continue
		}
		if _, ok := visiting[rule.Trigger]; ok {
			continue
		}

		trigger := resolve(rule.Trigger, explicit, inherited, rules, visiting)
		if trigger.State == types.StateNone {
			continue
		}

		st := types.PermissionState{
			Permission: p,
			State:      types.StateInferred,
			ImpliedBy:  rule.Label,
			Trigger:    rule.Trigger,
		}
		if trigger.State == types.StateInferred && trigger.ImpliedBy == "" {
			st.Paths = trigger.Paths
		}
		return st
	}

	return types.PermissionState{Permission: p, State: types.StateNone}
}

// ComputeStates resolves every permission of the catalog, in catalog order
func ComputeStates(catalog types.Catalog, explicit types.PermissionSet, inherited types.InheritedMap) []types.PermissionState {
	states := make([]types.PermissionState, 0, len(catalog.Permissions))
	for _, def := range catalog.Permissions {
		states = append(states, ComputeState(def.Permission, explicit, inherited, catalog.Rules))
	}
	return states
}

func clonePaths(paths []types.InheritancePath) []types.InheritancePath {
	out := make([]types.InheritancePath, 0, len(paths))
	for _, path := range paths {
		out = append(out, append(types.InheritancePath(nil), path...))
	}
	return out
}
