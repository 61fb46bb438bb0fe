package grouping

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/docperm/internal/testdata"
	"github.com/supremind/docperm/persist/fake"
	"github.com/supremind/docperm/types"
)

func usersOf(users []types.User) []interface{} {
	is := make([]interface{}, 0, len(users))
	for _, u := range users {
		is = append(is, u)
	}
	return is
}

func groupsOf(groups []types.Group) []interface{} {
	is := make([]interface{}, 0, len(groups))
	for _, g := range groups {
		is = append(is, g)
	}
	return is
}

var _ = Describe("grouping implementation", func() {
	Expect(UserGroups).NotTo(BeEmpty())
	Expect(GroupUsers).NotTo(BeEmpty())

	var groupings = []struct {
		name string
		new  func(ctx context.Context) types.Grouping
	}{
		{
			name: "slim",
			new:  func(context.Context) types.Grouping { return newSlimGrouping() },
		},
		{
			name: "fat",
			new:  func(context.Context) types.Grouping { return newFatGrouping() },
		},
		{
			name: "synced fat",
			new:  func(context.Context) types.Grouping { return newSyncedGrouping(newFatGrouping()) },
		},
		{
			name: "synced slim",
			new:  func(context.Context) types.Grouping { return newSyncedGrouping(newSlimGrouping()) },
		},
		{
			name: "persisted",
			new: func(ctx context.Context) types.Grouping {
				g, e := New(ctx, fake.NewGroupingPersister(), logr.Discard())
				Expect(e).To(Succeed())
				return g
			},
		},
	}

	for _, tg := range groupings {
		tg := tg
		Context(tg.name, func() {
			var (
				g      types.Grouping
				cancel context.CancelFunc
			)

			BeforeEach(func() {
				var ctx context.Context
				ctx, cancel = context.WithCancel(context.Background())
				g = tg.new(ctx)

				for user, groups := range UserGroups {
					for _, group := range groups {
						Expect(g.Join(user, group)).To(Succeed())
					}
				}
			})

			AfterEach(func() {
				cancel()
			})

			It("should contain initial users", func() {
				Expect(g.AllMembers()).To(HaveExactKeys(
					types.User("0"), types.User("1"), types.User("2"), types.User("3"), types.User("4"),
					types.User("5"), types.User("6"), types.User("7"), types.User("8"), types.User("9"),
				))
			})

			It("should contain initial groups", func() {
				Expect(g.AllContainers()).To(HaveExactKeys(
					types.Group("2_0"), types.Group("2_1"),
					types.Group("3_0"), types.Group("3_1"), types.Group("3_2"),
					types.Group("5_0"), types.Group("5_1"), types.Group("5_2"), types.Group("5_3"), types.Group("5_4"),
				))
			})

			It("should not let a group contain itself", func() {
				Expect(g.Join(types.Group("2_0"), types.Group("2_0"))).To(MatchError(types.ErrInvalidContainer))
			})

			Context("querying groups of user", func() {
				for user, groups := range UserGroups {
					user, groups := user, groups
					It(fmt.Sprintf("should know groups of %s", user), func() {
						Expect(g.ContainersOf(user)).To(HaveExactKeys(groupsOf(groups)...))
					})
				}
			})

			Context("querying users of group", func() {
				for group, users := range GroupUsers {
					group, users := group, users
					It(fmt.Sprintf("should know users of %s", group), func() {
						Expect(g.MembersIn(group)).To(HaveExactKeys(usersOf(users)...))
					})
				}
			})

			Context("checking user-group relationships", func() {
				for user, groups := range UserGroups {
					for _, group := range groups {
						user, group := user, group
						It(fmt.Sprintf("should know %s is in %s", user, group), func() {
							Expect(g.IsIn(user, group)).To(BeTrue())
						})
					}
				}

				for _, tc := range []struct {
					user  types.User
					group types.Group
				}{
					{user: types.User("1"), group: types.Group("2_0")},
					{user: types.User("4"), group: types.Group("3_0")},
					{user: types.User("4"), group: types.Group("3_2")},
					{user: types.User("6"), group: types.Group("2_1")},
					{user: types.User("6"), group: types.Group("3_1")},
				} {
					tc := tc
					It(fmt.Sprintf("should know %s is not in %s", tc.user, tc.group), func() {
						Expect(g.IsIn(tc.user, tc.group)).To(BeFalse())
					})
				}
			})

			DescribeTable("user leaves group",
				func(user types.User, group types.Group) {
					Expect(g.Leave(user, group)).To(Succeed())
					Expect(g.ContainersOf(user)).NotTo(HaveKey(group))
					Expect(g.MembersIn(group)).NotTo(HaveKey(user))
					Expect(g.IsIn(user, group)).To(BeFalse())
				},
				Entry("user 1 leaves group 3_1", types.User("1"), types.Group("3_1")),
				Entry("user 7 leaves group 5_2", types.User("7"), types.Group("5_2")),
				Entry("user 6 leaves group 3_0", types.User("6"), types.Group("3_0")),
			)

			It("should not leave a group never joined", func() {
				Expect(g.Leave(types.User("1"), types.Group("2_0"))).To(MatchError(types.ErrNotFound))
			})

			Describe("removing group", func() {
				BeforeEach(func() {
					Expect(g.RemoveContainer(types.Group("3_2"))).To(Succeed())
				})

				It("should remove it from all groups", func() {
					Expect(g.AllContainers()).NotTo(HaveKey(types.Group("3_2")))
				})

				DescribeTable("should remove it from groups of its users",
					func(user types.User) {
						Expect(g.ContainersOf(user)).NotTo(HaveKey(types.Group("3_2")))
						Expect(g.IsIn(user, types.Group("3_2"))).To(BeFalse())
					},
					Entry("user 2", types.User("2")),
					Entry("user 5", types.User("5")),
					Entry("user 8", types.User("8")),
				)
			})

			Describe("removing user", func() {
				BeforeEach(func() {
					Expect(g.RemoveMember(types.User("2"))).To(Succeed())
				})

				It("should remove it from all users", func() {
					Expect(g.AllMembers()).NotTo(HaveKey(types.User("2")))
				})

				DescribeTable("should remove it from users of its groups",
					func(group types.Group) {
						Expect(g.MembersIn(group)).NotTo(HaveKey(types.User("2")))
						Expect(g.IsIn(types.User("2"), group)).To(BeFalse())
					},
					Entry("group 2_0", types.Group("2_0")),
					Entry("group 3_2", types.Group("3_2")),
					Entry("group 5_2", types.Group("5_2")),
				)
			})

			Describe("with group-to-group groupings", func() {
				BeforeEach(func() {
					Expect(g.Join(types.Group("2_0"), types.Group("even"))).To(Succeed())
					Expect(g.Join(types.Group("2_0"), types.Group("divisible"))).To(Succeed())
					Expect(g.Join(types.Group("3_0"), types.Group("divisible"))).To(Succeed())
					Expect(g.Join(types.Group("5_0"), types.Group("divisible"))).To(Succeed())
				})

				DescribeTable("querying direct entities of group",
					func(group types.Group, entities []interface{}) {
						Expect(g.ImmediateEntitiesIn(group)).To(HaveExactKeys(entities...))
					},
					Entry("users of group 3_0", types.Group("3_0"),
						[]interface{}{types.User("0"), types.User("3"), types.User("6"), types.User("9")}),
					Entry("sub groups of divisible", types.Group("divisible"),
						[]interface{}{types.Group("2_0"), types.Group("3_0"), types.Group("5_0")}),
				)

				It("should know direct groups of user", func() {
					Expect(g.ImmediateContainersOf(types.User("9"))).To(HaveExactKeys(
						types.Group("2_1"), types.Group("3_0"), types.Group("5_4"),
					))
				})

				DescribeTable("querying users of super group",
					func(group types.Group, users []interface{}) {
						Expect(g.MembersIn(group)).To(HaveExactKeys(users...))
					},
					Entry("even numbers", types.Group("even"),
						[]interface{}{types.User("0"), types.User("2"), types.User("4"), types.User("6"), types.User("8")}),
					Entry("divisible numbers", types.Group("divisible"),
						[]interface{}{types.User("0"), types.User("2"), types.User("3"), types.User("4"),
							types.User("5"), types.User("6"), types.User("8"), types.User("9")}),
				)

				DescribeTable("querying groups of user",
					func(user types.User, groups []interface{}) {
						Expect(g.ContainersOf(user)).To(HaveExactKeys(groups...))
					},
					Entry("groups of user 1", types.User("1"),
						[]interface{}{types.Group("2_1"), types.Group("3_1"), types.Group("5_1")}),
					Entry("groups of user 4", types.User("4"),
						[]interface{}{types.Group("2_0"), types.Group("3_1"), types.Group("5_4"), types.Group("even"), types.Group("divisible")}),
				)

				It("should know every chain of groups of a user", func() {
					Expect(g.PathsOf(types.User("0"))).To(Equal([][]types.Container{
						{types.Group("2_0")},
						{types.Group("2_0"), types.Group("divisible")},
						{types.Group("2_0"), types.Group("even")},
						{types.Group("3_0")},
						{types.Group("3_0"), types.Group("divisible")},
						{types.Group("5_0")},
						{types.Group("5_0"), types.Group("divisible")},
					}))
				})

				Context("divisible numbers", func() {
					for _, u := range []int{0, 2, 3, 4, 5, 6, 8, 9} {
						user := types.User(strconv.Itoa(u))
						Specify(fmt.Sprintf("%d is divisible", u), func() {
							Expect(g.IsIn(user, types.Group("divisible"))).To(BeTrue())
						})
					}
				})

				Context("indivisible numbers", func() {
					for _, u := range []int{1, 7} {
						user := types.User(strconv.Itoa(u))
						Specify(fmt.Sprintf("%d is not divisible", u), func() {
							Expect(g.IsIn(user, types.Group("divisible"))).To(BeFalse())
						})
					}
				})
			})

			Describe("with cyclic groupings", func() {
				BeforeEach(func() {
					Expect(g.Join(types.Group("a"), types.Group("b"))).To(Succeed())
					Expect(g.Join(types.Group("b"), types.Group("a"))).To(Succeed())
					Expect(g.Join(types.User("0"), types.Group("a"))).To(Succeed())
				})

				It("should still find members", func() {
					Expect(g.MembersIn(types.Group("b"))).To(HaveExactKeys(types.User("0")))
				})

				It("should not lead a chain back to the entity itself", func() {
					Expect(g.PathsOf(types.Group("a"))).To(Equal([][]types.Container{{types.Group("b")}}))
				})
			})

			Describe("with a document tree", func() {
				BeforeEach(func() {
					for _, policy := range DocumentTree {
						Expect(g.Join(policy.Entity, policy.Container)).To(Succeed())
					}
				})

				DescribeTable("querying folder chains",
					func(ent types.Entity, paths [][]types.Container) {
						Expect(g.PathsOf(ent)).To(Equal(paths))
					},
					Entry("sales", SalesDoc, [][]types.Container{
						{DailyFolder},
						{DailyFolder, ReportsFolder},
						{DailyFolder, ReportsFolder, SystemFolder},
					}),
					Entry("audit", AuditDoc, [][]types.Container{
						{ReportsFolder},
						{ReportsFolder, SystemFolder},
					}),
				)

				It("should know no chain of the root folder", func() {
					Expect(g.PathsOf(SystemFolder)).To(BeEmpty())
				})

				It("should know documents in folders", func() {
					Expect(g.MembersIn(SystemFolder)).To(HaveExactKeys(SalesDoc, AuditDoc))
					Expect(g.MembersIn(DailyFolder)).To(HaveExactKeys(SalesDoc))
				})
			})
		})
	}
})

var _ = Describe("persisted grouping", func() {
	var (
		gp     *fake.GroupingPersister
		g      types.Grouping
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		gp = fake.NewGroupingPersister(DocumentTree...)

		var e error
		g, e = New(ctx, gp, logr.Discard())
		Expect(e).To(Succeed())
	})

	AfterEach(func() {
		cancel()
	})

	It("should load persisted polices", func() {
		Expect(g.IsIn(SalesDoc, SystemFolder)).To(BeTrue())
	})

	It("should write through to the persister", func() {
		Expect(g.Join(types.User("alan"), types.Group("a"))).To(Succeed())
		Expect(gp.List()).To(ContainElement(types.GroupingPolicy{Entity: types.User("alan"), Container: types.Group("a")}))

		Expect(g.RemoveContainer(ReportsFolder)).To(Succeed())
		Expect(gp.List()).NotTo(ContainElement(types.GroupingPolicy{Entity: AuditDoc, Container: ReportsFolder}))
		Expect(gp.List()).NotTo(ContainElement(types.GroupingPolicy{Entity: ReportsFolder, Container: SystemFolder}))
	})

	It("should apply changes made by others", func() {
		Expect(gp.Insert(types.User("alan"), types.Group("a"))).To(Succeed())
		Eventually(func() (bool, error) { return g.IsIn(types.User("alan"), types.Group("a")) }).Should(BeTrue())

		Expect(gp.Remove(SalesDoc, DailyFolder)).To(Succeed())
		Eventually(func() (bool, error) { return g.IsIn(SalesDoc, SystemFolder) }).Should(BeFalse())
	})
})
