package types_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/types"
)

const reportsFolder = "6a1a5a4e-2d1e-4b59-9b1e-0c5f1d3f2a10"

var _ = Describe("entities", func() {
	DescribeTable("parse entities",
		func(s string, ent Entity) {
			Expect(ParseEntity(s)).To(Equal(ent))
			Expect(ent.String()).To(Equal(s))
		},
		Entry("user", "user:alan", User("alan")),
		Entry("group", "group:admins", Group("admins")),
		Entry("document", "doc:"+reportsFolder, Document(reportsFolder)),
		Entry("folder", "folder:"+reportsFolder, Folder(reportsFolder)),
	)

	DescribeTable("reject invalid entities",
		func(s string, target error) {
			_, e := ParseEntity(s)
			Expect(errors.Is(e, target)).To(BeTrue(), e.Error())
		},
		Entry("no prefix", "alan", ErrInvalidEntity),
		Entry("unknown prefix", "role:admin", ErrInvalidEntity),
		Entry("document without uuid", "doc:reports", ErrInvalidDocumentID),
		Entry("folder without uuid", "folder:reports", ErrInvalidDocumentID),
	)

	It("should tell containers from members", func() {
		_, e := ParseContainer("user:alan")
		Expect(errors.Is(e, ErrInvalidContainer)).To(BeTrue())
		_, e = ParseMember("group:admins")
		Expect(errors.Is(e, ErrInvalidMember)).To(BeTrue())

		Expect(ParseContainer("folder:" + reportsFolder)).To(Equal(Folder(reportsFolder)))
		Expect(ParseMember("doc:" + reportsFolder)).To(Equal(Document(reportsFolder)))
	})

	DescribeTable("parse subjects",
		func(s string, sub Subject) {
			Expect(ParseSubject(s)).To(Equal(sub))
		},
		Entry("user", "user:alan", User("alan")),
		Entry("group", "group:admins", Group("admins")),
	)

	It("should reject documents as subjects", func() {
		_, e := ParseSubject("doc:" + reportsFolder)
		Expect(errors.Is(e, ErrInvalidSubject)).To(BeTrue())
	})

	DescribeTable("parse targets",
		func(s string, tgt Target) {
			Expect(ParseTarget(s)).To(Equal(tgt))
			Expect(tgt.String()).To(Equal(s))
		},
		Entry("application", "app", App),
		Entry("document", "doc:"+reportsFolder, Document(reportsFolder)),
		Entry("folder", "folder:"+reportsFolder, Folder(reportsFolder)),
	)

	It("should reject users as targets", func() {
		_, e := ParseTarget("user:alan")
		Expect(errors.Is(e, ErrInvalidTarget)).To(BeTrue())
	})
})
