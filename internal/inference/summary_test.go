package inference

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

var _ = Describe("create permission summary", func() {
	catalog := Catalog{
		Scope: ScopeDocument,
		DocTypes: []DocType{
			{Type: "Folder", DisplayName: "Folder"},
			{Type: "Feed", DisplayName: "Feed"},
			{Type: "Dashboard", DisplayName: "Dashboard"},
		},
	}

	It("should summarise explicit and effective permissions independently", func() {
		s := CreatePermissionSummary([]string{"Folder", "Feed"}, []string{"Dashboard"}, catalog)
		Expect(s.Explicit).To(Equal("Feed, Folder"))
		Expect(s.Effective).To(Equal("ALL"))
	})

	DescribeTable("summaries",
		func(explicit, inherited []string, want CreateSummary) {
			Expect(CreatePermissionSummary(explicit, inherited, catalog)).To(Equal(want))
		},
		Entry("nothing", nil, nil, CreateSummary{}),
		Entry("sentinel", []string{AllDocTypes}, nil, CreateSummary{Explicit: "ALL", Effective: "ALL"}),
		Entry("inherited sentinel", []string{"Feed"}, []string{AllDocTypes}, CreateSummary{Explicit: "Feed", Effective: "ALL"}),
		Entry("every type", []string{"Dashboard", "Feed", "Folder"}, nil, CreateSummary{Explicit: "ALL", Effective: "ALL"}),
		Entry("duplicates", []string{"Feed", "Feed"}, []string{"Feed"}, CreateSummary{Explicit: "Feed", Effective: "Feed"}),
		Entry("unknown types by identifier", []string{"XSLT"}, nil, CreateSummary{Explicit: "XSLT", Effective: "XSLT"}),
	)

	It("should not depend on input order", func() {
		a := CreatePermissionSummary([]string{"Folder", "Feed"}, nil, catalog)
		b := CreatePermissionSummary([]string{"Feed", "Folder"}, nil, catalog)
		Expect(a).To(Equal(b))
	})

	It("should use display names", func() {
		named := Catalog{DocTypes: []DocType{{Type: "XSLT", DisplayName: "XSL Translation"}, {Type: "Feed"}}}
		Expect(CreatePermissionSummary([]string{"XSLT"}, nil, named).Explicit).To(Equal("XSL Translation"))
	})
})
