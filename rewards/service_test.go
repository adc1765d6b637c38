package rewards_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/rewards"
	rewardsTest "github.com/ErwinJ1299/scout2-sub002/rewards/test"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	rulesTest "github.com/ErwinJ1299/scout2-sub002/rules/test"
	"github.com/ErwinJ1299/scout2-sub002/store"
	storeTest "github.com/ErwinJ1299/scout2-sub002/store/test"
	"github.com/ErwinJ1299/scout2-sub002/test"
	"github.com/ErwinJ1299/scout2-sub002/users"
	usersTest "github.com/ErwinJ1299/scout2-sub002/users/test"
)

var _ = Describe("Service", func() {
	var ctrl *gomock.Controller
	var txnRunner *storeTest.MockTxnRunner
	var repo *rewardsTest.MockRepository
	var stats *usersTest.MockService
	var service rewards.Service
	var userId string
	var rule rules.Rule
	var params rewards.GrantParams

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		txnRunner = storeTest.NewMockTxnRunner(ctrl)
		repo = rewardsTest.NewMockRepository(ctrl)
		stats = usersTest.NewMockService(ctrl)
		userId = test.Faker.UUID().V4()
		rule = rulesTest.RandomRule()
		now := time.Now()
		params = rewards.GrantParams{
			ImprovementValue: 15.0,
			CurrentAverage:   145.0,
			PreviousAverage:  160.0,
			PeriodStart:      now.Add(-rule.Window()),
			PeriodEnd:        now,
		}

		var err error
		service, err = rewards.NewService(txnRunner, repo, stats, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		// Run the transaction body directly so the repository and stats
		// expectations below observe the same calls a live session would.
		txnRunner.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn func(mongo.SessionContext) (interface{}, error)) (interface{}, error) {
				return txn(nil)
			}).
			AnyTimes()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("Grant", func() {
		It("requires a user id", func() {
			_, err := service.Grant(context.Background(), "", rule, params)
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})

		It("requires a persisted rule", func() {
			rule.Id = nil
			_, err := service.Grant(context.Background(), userId, rule, params)
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})

		It("inserts the reward and applies the balance increments", func() {
			repo.EXPECT().LastGrant(gomock.Any(), userId, rule.Id.Hex()).Return(nil, nil)
			repo.EXPECT().
				Insert(gomock.Any(), test.Match(func(r rewards.Reward) bool {
					return r.UserId == userId &&
						r.RuleId == *rule.Id &&
						r.Metric == rule.Metric &&
						r.ImprovementValue == params.ImprovementValue &&
						r.CurrentAverage == params.CurrentAverage &&
						r.PreviousAverage == params.PreviousAverage &&
						r.RewardHp == rule.RewardHp &&
						r.RewardWc == rule.RewardWc &&
						!r.CreatedAt.IsZero()
				})).
				DoAndReturn(func(_ context.Context, r rewards.Reward) (*rewards.Reward, error) {
					return &r, nil
				})
			stats.EXPECT().
				Increment(gomock.Any(), userId, users.StatsIncrement{
					TotalPoints:       rule.RewardHp,
					RewardTokens:      rule.RewardWc,
					TotalTokensEarned: rule.RewardWc,
				}).
				Return(nil)

			reward, err := service.Grant(context.Background(), userId, rule, params)
			Expect(err).ToNot(HaveOccurred())
			Expect(reward).ToNot(BeNil())
			Expect(reward.RewardHp).To(Equal(rule.RewardHp))
			Expect(reward.RewardWc).To(Equal(rule.RewardWc))
		})

		It("refuses to grant again inside the cooldown window", func() {
			last := time.Now().Add(-time.Hour)
			repo.EXPECT().LastGrant(gomock.Any(), userId, rule.Id.Hex()).Return(&last, nil)

			_, err := service.Grant(context.Background(), userId, rule, params)
			Expect(err).To(MatchError(rewards.ErrAlreadyGranted))
		})

		It("grants again once the cooldown has elapsed", func() {
			last := time.Now().Add(-rule.Cooldown() - time.Hour)
			repo.EXPECT().LastGrant(gomock.Any(), userId, rule.Id.Hex()).Return(&last, nil)
			repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r rewards.Reward) (*rewards.Reward, error) {
					return &r, nil
				})
			stats.EXPECT().Increment(gomock.Any(), userId, gomock.Any()).Return(nil)

			_, err := service.Grant(context.Background(), userId, rule, params)
			Expect(err).ToNot(HaveOccurred())
		})

		It("fails the whole grant when the increment fails", func() {
			repo.EXPECT().LastGrant(gomock.Any(), userId, rule.Id.Hex()).Return(nil, nil)
			repo.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, r rewards.Reward) (*rewards.Reward, error) {
					return &r, nil
				})
			stats.EXPECT().
				Increment(gomock.Any(), userId, gomock.Any()).
				Return(context.DeadlineExceeded)

			_, err := service.Grant(context.Background(), userId, rule, params)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("List", func() {
		It("requires a user id", func() {
			_, err := service.List(context.Background(), "", store.DefaultPagination())
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})
	})
})
