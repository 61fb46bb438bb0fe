// Package test holds behaviour cases every persister is expected to pass
package test

import (
	"context"
	"errors"
	"fmt"

	"github.com/supremind/docperm/types"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// well known document ids used by the cases
const (
	ReportsFolder = "0f8fad5b-d9cb-469f-a165-70867728950e"
	DailyFolder   = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	SalesDoc      = "a3bb189e-8bf9-3888-9912-ace4e6543002"
	AuditDoc      = "e6c5a2ba-6c1f-4d4c-9f8b-0f4f5c0e8a11"
)

// GroupingCases describes grouping persisters created by newPersister
func GroupingCases(newPersister func() types.GroupingPersister) bool {
	return Describe("grouping persister", func() {
		insertPolices := []types.GroupingPolicy{
			{Entity: types.User("alan"), Container: types.Group("a")},
			{Entity: types.User("albert"), Container: types.Group("a")},
			{Entity: types.Group("a"), Container: types.Group("everyone")},
			{Entity: types.Document(SalesDoc), Container: types.Folder(DailyFolder)},
			{Entity: types.Folder(DailyFolder), Container: types.Folder(ReportsFolder)},
		}
		removePolices := []types.GroupingPolicy{
			{Entity: types.User("albert"), Container: types.Group("a")},
			{Entity: types.Document(SalesDoc), Container: types.Folder(DailyFolder)},
		}

		changes := make([]types.GroupingPolicyChange, 0, len(insertPolices)+len(removePolices))
		for _, policy := range insertPolices {
			changes = append(changes, types.GroupingPolicyChange{
				GroupingPolicy: policy,
				Method:         types.PersistInsert,
			})
		}
		for _, policy := range removePolices {
			changes = append(changes, types.GroupingPolicyChange{
				GroupingPolicy: policy,
				Method:         types.PersistDelete,
			})
		}

		var gp types.GroupingPersister
		BeforeEach(func() {
			gp = newPersister()
		})

		It("should insert and remove a policy only once", func() {
			policy := insertPolices[0]
			Expect(gp.Insert(policy.Entity, policy.Container)).To(Succeed())
			e := gp.Insert(policy.Entity, policy.Container)
			Expect(errors.Is(e, types.ErrAlreadyExists)).To(BeTrue())

			Expect(gp.Remove(policy.Entity, policy.Container)).To(Succeed())
			e = gp.Remove(policy.Entity, policy.Container)
			Expect(errors.Is(e, types.ErrNotFound)).To(BeTrue())
		})

		It("should list current policies", func() {
			for _, policy := range insertPolices {
				Expect(gp.Insert(policy.Entity, policy.Container)).To(Succeed())
			}
			for _, policy := range removePolices {
				Expect(gp.Remove(policy.Entity, policy.Container)).To(Succeed())
			}

			Expect(gp.List()).To(ConsistOf(
				types.GroupingPolicy{Entity: types.User("alan"), Container: types.Group("a")},
				types.GroupingPolicy{Entity: types.Group("a"), Container: types.Group("everyone")},
				types.GroupingPolicy{Entity: types.Folder(DailyFolder), Container: types.Folder(ReportsFolder)},
			))
		})

		It("should deliver changes in sequence", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			By("start watching grouping policy changes")
			w, e := gp.Watch(ctx)
			Expect(e).To(Succeed())

			go func() {
				defer GinkgoRecover()

				for _, policy := range insertPolices {
					Expect(gp.Insert(policy.Entity, policy.Container)).To(Succeed())
				}
				for _, policy := range removePolices {
					Expect(gp.Remove(policy.Entity, policy.Container)).To(Succeed())
				}
			}()

			By("observe changes in sequence")
			for _, change := range changes {
				By(fmt.Sprintf("should observe %v", change))
				var got types.GroupingPolicyChange
				Eventually(w).Should(Receive(&got))
				Expect(got).To(Equal(change))
			}

			By("stop watching")
			cancel()
			Eventually(w).Should(BeClosed())
		})
	})
}
