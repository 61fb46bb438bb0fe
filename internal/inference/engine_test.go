package inference

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

var adminRule = ImpliedByRule{Trigger: Administrator, Label: "Implied by Administrator"}

var appCatalog = Catalog{
	Scope: ScopeApplication,
	Permissions: []PermissionDef{
		{Permission: View}, {Permission: Edit}, {Permission: Delete}, {Permission: Administrator},
	},
	Rules: []ImpliedByRule{adminRule},
}

var _ = Describe("compute state", func() {
	Context("with explicit view and inherited edit", func() {
		explicit := NewPermissionSet(View)
		inherited := InheritedMap{Edit: {{"GroupA"}}}

		DescribeTable("states",
			func(p Permission, want PermissionState) {
				Expect(ComputeState(p, explicit, inherited, appCatalog.Rules)).To(Equal(want))
			},
			Entry("view is explicit", View, PermissionState{Permission: View, State: StateExplicit}),
			Entry("edit is inherited", Edit, PermissionState{
				Permission: Edit, State: StateInferred, Paths: []InheritancePath{{"GroupA"}},
			}),
			Entry("delete is absent", Delete, PermissionState{Permission: Delete, State: StateNone}),
			Entry("administrator is absent", Administrator, PermissionState{Permission: Administrator, State: StateNone}),
		)
	})

	Context("with explicit administrator", func() {
		explicit := NewPermissionSet(Administrator)

		It("should infer everything else", func() {
			states := ComputeStates(appCatalog, explicit, nil)
			Expect(states).To(HaveLen(4))
			for _, st := range states[:3] {
				Expect(st.State).To(Equal(StateInferred), string(st.Permission))
				Expect(st.ImpliedBy).To(Equal("Implied by Administrator"))
				Expect(st.Trigger).To(Equal(Administrator))
				Expect(st.Paths).To(BeEmpty())
			}
			Expect(states[3]).To(Equal(PermissionState{Permission: Administrator, State: StateExplicit}))
		})
	})

	Context("with inherited administrator", func() {
		inherited := InheritedMap{Administrator: {{"Admins", "Everyone"}}}

		It("should carry the trigger paths", func() {
			st := ComputeState(ManageUsers, nil, inherited, appCatalog.Rules)
			Expect(st.State).To(Equal(StateInferred))
			Expect(st.Paths).To(Equal([]InheritancePath{{"Admins", "Everyone"}}))
			Expect(st.Describe()).To(Equal([]string{
				"Implied by Administrator",
				"ADMINISTRATOR inherited from: Admins > Everyone",
			}))
		})
	})

	It("should prefer explicit over inherited and implied", func() {
		explicit := NewPermissionSet(View, Administrator)
		inherited := InheritedMap{View: {{"GroupA"}}}
		Expect(ComputeState(View, explicit, inherited, appCatalog.Rules).State).To(Equal(StateExplicit))
	})

	It("should prefer inherited over implied", func() {
		explicit := NewPermissionSet(Administrator)
		inherited := InheritedMap{View: {{"GroupA"}}}
		st := ComputeState(View, explicit, inherited, appCatalog.Rules)
		Expect(st.State).To(Equal(StateInferred))
		Expect(st.ImpliedBy).To(BeEmpty())
		Expect(st.Paths).To(Equal([]InheritancePath{{"GroupA"}}))
	})

	It("should treat an inherited key without paths as inherited", func() {
		st := ComputeState(View, nil, InheritedMap{View: nil}, nil)
		Expect(st.State).To(Equal(StateInferred))
	})

	It("should resolve unknown permissions to none", func() {
		Expect(ComputeState("NOT_A_PERMISSION", nil, nil, nil).State).To(Equal(StateNone))
		Expect(ComputeState("", NewPermissionSet(), InheritedMap{}, appCatalog.Rules).State).To(Equal(StateNone))
	})

	It("should not copy inherited paths by reference", func() {
		inherited := InheritedMap{Edit: {{"GroupA"}}}
		st := ComputeState(Edit, nil, inherited, nil)
		st.Paths[0][0] = "changed"
		Expect(inherited[Edit][0][0]).To(Equal("GroupA"))
	})

	Describe("document hierarchy", func() {
		rules := []ImpliedByRule{
			{Trigger: Owner, Label: "Implied by Owner"},
			{Trigger: Delete, Label: "Implied by Delete", Implies: []Permission{Edit, View, Use}},
			{Trigger: Edit, Label: "Implied by Edit", Implies: []Permission{View, Use}},
			{Trigger: View, Label: "Implied by View", Implies: []Permission{Use}},
		}

		DescribeTable("implied states",
			func(explicit PermissionSet, p Permission, state State, label string) {
				st := ComputeState(p, explicit, nil, rules)
				Expect(st.State).To(Equal(state))
				Expect(st.ImpliedBy).To(Equal(label))
			},
			Entry("owner implies delete", NewPermissionSet(Owner), Delete, StateInferred, "Implied by Owner"),
			Entry("owner implies use", NewPermissionSet(Owner), Use, StateInferred, "Implied by Owner"),
			Entry("edit implies view", NewPermissionSet(Edit), View, StateInferred, "Implied by Edit"),
			Entry("edit implies use through the first matching rule", NewPermissionSet(Edit), Use, StateInferred, "Implied by Edit"),
			Entry("edit does not imply delete", NewPermissionSet(Edit), Delete, StateNone, ""),
			Entry("view does not imply owner", NewPermissionSet(View), Owner, StateNone, ""),
		)
	})

	It("should not attribute paths of a chained trigger to the outer rule", func() {
		rules := []ImpliedByRule{
			{Trigger: View, Label: "Implied by View", Implies: []Permission{Use}},
			{Trigger: Edit, Label: "Implied by Edit", Implies: []Permission{View, Use}},
		}
		inherited := InheritedMap{Edit: {{"GroupA"}}}

		view := ComputeState(View, nil, inherited, rules)
		Expect(view.ImpliedBy).To(Equal("Implied by Edit"))
		Expect(view.Paths).To(Equal([]InheritancePath{{"GroupA"}}))

		use := ComputeState(Use, nil, inherited, rules)
		Expect(use.State).To(Equal(StateInferred))
		Expect(use.ImpliedBy).To(Equal("Implied by View"))
		Expect(use.Trigger).To(Equal(View))
		Expect(use.Paths).To(BeEmpty())
		Expect(use.Describe()).To(Equal([]string{"Implied by View"}))
	})

	It("should terminate on cyclic rules", func() {
		rules := []ImpliedByRule{
			{Trigger: View, Label: "by view", Implies: []Permission{Edit}},
			{Trigger: Edit, Label: "by edit", Implies: []Permission{View}},
		}
		Expect(ComputeState(View, nil, nil, rules).State).To(Equal(StateNone))
		Expect(ComputeState(Edit, NewPermissionSet(View), nil, rules).ImpliedBy).To(Equal("by view"))
	})

	It("should be idempotent", func() {
		explicit := NewPermissionSet(Administrator)
		first := ComputeStates(appCatalog, explicit, nil)
		second := ComputeStates(appCatalog, explicit, nil)
		Expect(first).To(Equal(second))
	})
})
