package types_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

var _ = Describe("change set", func() {
	var cs *ChangeSet
	alan, admins := User("alan"), Group("admins")

	BeforeEach(func() {
		cs = NewChangeSet()
	})

	It("should start empty", func() {
		Expect(cs.Empty()).To(BeTrue())
		Expect(cs.Subjects()).To(BeEmpty())
		Expect(cs.Changes(App)).To(BeEmpty())
	})

	It("should cancel a pending removal when adding", func() {
		cs.Remove(alan, View)
		Expect(cs.Removals(alan)).To(Equal(NewPermissionSet(View)))

		cs.Add(alan, View)
		Expect(cs.Removals(alan)).To(BeEmpty())
		Expect(cs.Additions(alan)).To(BeEmpty())
		Expect(cs.Empty()).To(BeTrue())
	})

	It("should cancel a pending addition when removing", func() {
		cs.Add(alan, Edit)
		cs.Remove(alan, Edit)
		Expect(cs.Empty()).To(BeTrue())
	})

	It("should never hold a permission as both added and removed", func() {
		ops := []struct {
			add bool
			p   Permission
		}{
			{true, View}, {false, View}, {false, View}, {true, Edit},
			{false, Delete}, {true, Delete}, {true, Delete}, {false, Edit},
		}
		for _, op := range ops {
			if op.add {
				cs.Add(alan, op.p)
			} else {
				cs.Remove(alan, op.p)
			}
			for p := range cs.Additions(alan) {
				Expect(cs.Removals(alan).Has(p)).To(BeFalse())
			}
		}
	})

	It("should translate into ordered changes", func() {
		cs.Add(admins, Edit)
		cs.Add(alan, View)
		cs.Remove(alan, Delete)

		Expect(cs.Subjects()).To(Equal([]Subject{admins, alan}))
		doc := Document(reportsFolder)
		Expect(cs.Changes(doc)).To(Equal([]Change{
			AddPermission{Subject: admins, Target: doc, Permission: Edit},
			RemovePermission{Subject: alan, Target: doc, Permission: Delete},
			AddPermission{Subject: alan, Target: doc, Permission: View},
		}))
	})

	It("should translate create permissions on folders", func() {
		folder := Folder(reportsFolder)
		cs.Add(alan, CreatePermission("Feed"))
		cs.Remove(alan, CreatePermission("XSLT"))

		Expect(cs.Changes(folder)).To(Equal([]Change{
			RemoveCreatePermission{Subject: alan, Folder: folder, DocType: "XSLT"},
			AddCreatePermission{Subject: alan, Folder: folder, DocType: "Feed"},
		}))
	})
})
