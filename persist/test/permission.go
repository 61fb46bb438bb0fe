package test

import (
	"context"
	"errors"
	"fmt"

	"github.com/supremind/docperm/types"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// PermissionCases describes permission persisters created by newPersister
func PermissionCases(newPersister func() types.PermissionPersister) bool {
	return Describe("permission persister", func() {
		insertPolices := []types.PermissionPolicy{
			{Subject: types.User("alan"), Target: types.App, Permission: types.ManageUsers},
			{Subject: types.User("alan"), Target: types.App, Permission: types.ManageTasks},
			{Subject: types.Group("a"), Target: types.Folder(ReportsFolder), Permission: types.Edit},
			{Subject: types.Group("a"), Target: types.Folder(ReportsFolder), Permission: types.CreatePermission("Feed")},
			{Subject: types.User("albert"), Target: types.Document(SalesDoc), Permission: types.Owner},
		}
		removePolices := []types.PermissionPolicy{
			{Subject: types.User("alan"), Target: types.App, Permission: types.ManageTasks},
			{Subject: types.User("albert"), Target: types.Document(SalesDoc), Permission: types.Owner},
		}

		changes := make([]types.PermissionPolicyChange, 0, len(insertPolices)+len(removePolices))
		for _, policy := range insertPolices {
			changes = append(changes, types.PermissionPolicyChange{
				PermissionPolicy: policy,
				Method:           types.PersistInsert,
			})
		}
		for _, policy := range removePolices {
			changes = append(changes, types.PermissionPolicyChange{
				PermissionPolicy: policy,
				Method:           types.PersistDelete,
			})
		}

		var pp types.PermissionPersister
		BeforeEach(func() {
			pp = newPersister()
		})

		It("should insert and remove a policy only once", func() {
			policy := insertPolices[0]
			Expect(pp.Insert(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
			e := pp.Insert(policy.Subject, policy.Target, policy.Permission)
			Expect(errors.Is(e, types.ErrAlreadyExists)).To(BeTrue())

			Expect(pp.Remove(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
			e = pp.Remove(policy.Subject, policy.Target, policy.Permission)
			Expect(errors.Is(e, types.ErrNotFound)).To(BeTrue())
		})

		It("should list current policies", func() {
			for _, policy := range insertPolices {
				Expect(pp.Insert(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
			}
			for _, policy := range removePolices {
				Expect(pp.Remove(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
			}

			Expect(pp.List()).To(ConsistOf(insertPolices[0], insertPolices[2], insertPolices[3]))
		})

		It("should deliver changes in sequence", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			By("start watching permission policy changes")
			w, e := pp.Watch(ctx)
			Expect(e).To(Succeed())

			go func() {
				defer GinkgoRecover()

				for _, policy := range insertPolices {
					Expect(pp.Insert(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
				}
				for _, policy := range removePolices {
					Expect(pp.Remove(policy.Subject, policy.Target, policy.Permission)).To(Succeed())
				}
			}()

			By("observe changes in sequence")
			for _, change := range changes {
				By(fmt.Sprintf("should observe %v", change))
				var got types.PermissionPolicyChange
				Eventually(w).Should(Receive(&got))
				Expect(got).To(Equal(change))
			}

			By("stop watching")
			cancel()
			Eventually(w).Should(BeClosed())
		})
	})
}
