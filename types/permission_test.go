package types_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

var _ = Describe("permission", func() {
	DescribeTable("create permissions",
		func(p Permission, docType string, isCreate bool) {
			dt, ok := p.DocType()
			Expect(ok).To(Equal(isCreate))
			Expect(dt).To(Equal(docType))
			Expect(p.IsCreate()).To(Equal(isCreate))
		},
		Entry("create feed", CreatePermission("Feed"), "Feed", true),
		Entry("create all", CreatePermission(AllDocTypes), AllDocTypes, true),
		Entry("view", View, "", false),
		Entry("administrator", Administrator, "", false),
	)

	It("should split create permissions from others", func() {
		s := NewPermissionSet(View, Edit, CreatePermission("Feed"), CreatePermission("Dashboard"))
		plain, docTypes := s.Split()
		Expect(plain).To(Equal(NewPermissionSet(View, Edit)))
		Expect(docTypes).To(Equal([]string{"Dashboard", "Feed"}))
	})

	It("should treat nil sets as empty", func() {
		var s PermissionSet
		Expect(s.Has(View)).To(BeFalse())
		Expect(s.Clone()).To(BeEmpty())
		Expect(s.Sorted()).To(BeEmpty())
		Expect(s.Equal(NewPermissionSet())).To(BeTrue())
	})

	It("should clone without sharing", func() {
		s := NewPermissionSet(View)
		c := s.Clone()
		c.Add(Edit)
		Expect(s.Has(Edit)).To(BeFalse())
	})

	Describe("catalog", func() {
		c := Catalog{
			Scope: ScopeDocument,
			Permissions: []PermissionDef{
				{Permission: View, DisplayName: "View"},
				{Permission: Owner},
			},
			DocTypes: []DocType{{Type: "XSLT", DisplayName: "XSL Translation"}},
		}

		DescribeTable("display names",
			func(p Permission, name string) {
				Expect(c.DisplayName(p)).To(Equal(name))
			},
			Entry("named", View, "View"),
			Entry("unnamed", Owner, "OWNER"),
			Entry("unknown", Edit, "EDIT"),
			Entry("create known type", CreatePermission("XSLT"), "Create XSL Translation"),
			Entry("create unknown type", CreatePermission("Feed"), "Create Feed"),
		)

		It("should know its members", func() {
			Expect(c.Has(View)).To(BeTrue())
			Expect(c.Has(Delete)).To(BeFalse())
			Expect(c.HasDocType("XSLT")).To(BeTrue())
			Expect(c.HasDocType("Feed")).To(BeFalse())
		})
	})
})
