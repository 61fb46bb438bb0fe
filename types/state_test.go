package types_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

var _ = Describe("permission state", func() {
	It("should describe inherited permissions", func() {
		s := PermissionState{
			Permission: Edit,
			State:      StateInferred,
			Paths:      []InheritancePath{{"GroupA"}, {"GroupB", "Reports"}},
		}
		Expect(s.Describe()).To(Equal([]string{
			"Inherited from: GroupA",
			"Inherited from: GroupB > Reports",
		}))
	})

	It("should describe implied permissions", func() {
		s := PermissionState{
			Permission: ManageUsers,
			State:      StateInferred,
			ImpliedBy:  "Implied by Administrator",
			Trigger:    Administrator,
			Paths:      []InheritancePath{{"Admins"}},
		}
		Expect(s.Describe()).To(Equal([]string{
			"Implied by Administrator",
			"ADMINISTRATOR inherited from: Admins",
		}))
	})

	It("should describe nothing for explicit and absent permissions", func() {
		Expect(PermissionState{State: StateExplicit}.Describe()).To(BeEmpty())
		Expect(PermissionState{State: StateNone}.Describe()).To(BeEmpty())
	})

	It("should record each path once, in order", func() {
		m := make(InheritedMap)
		m.Add(View, InheritancePath{"b"})
		m.Add(View, InheritancePath{"a"})
		m.Add(View, InheritancePath{"b"})
		Expect(m[View]).To(Equal([]InheritancePath{{"a"}, {"b"}}))
		Expect(m.Has(View)).To(BeTrue())
		Expect(m.Has(Edit)).To(BeFalse())
		Expect(m.Permissions()).To(Equal(NewPermissionSet(View)))
	})

	Describe("implied by rules", func() {
		all := ImpliedByRule{Trigger: Administrator}
		some := ImpliedByRule{Trigger: Edit, Implies: []Permission{View, Use}}

		It("should never cover its own trigger", func() {
			Expect(all.Covers(Administrator)).To(BeFalse())
			Expect(some.Covers(Edit)).To(BeFalse())
		})

		It("should cover everything else when implies nothing in particular", func() {
			Expect(all.Covers(ManageUsers)).To(BeTrue())
			Expect(all.Covers("SOMETHING_UNKNOWN")).To(BeTrue())
		})

		It("should cover only listed permissions", func() {
			Expect(some.Covers(View)).To(BeTrue())
			Expect(some.Covers(Delete)).To(BeFalse())
		})
	})
})
