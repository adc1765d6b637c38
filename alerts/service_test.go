package alerts_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/ErwinJ1299/scout2-sub002/alerts"
	alertsTest "github.com/ErwinJ1299/scout2-sub002/alerts/test"
	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	readingsTest "github.com/ErwinJ1299/scout2-sub002/readings/test"
	"github.com/ErwinJ1299/scout2-sub002/test"
)

var _ = Describe("Service", func() {
	var ctrl *gomock.Controller
	var repo *alertsTest.MockRepository
	var readingsService *readingsTest.MockService
	var service alerts.Service
	var patientId string

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = alertsTest.NewMockRepository(ctrl)
		readingsService = readingsTest.NewMockService(ctrl)
		patientId = test.Faker.UUID().V4()

		var err error
		service, err = alerts.NewService(repo, readingsService, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	glucoseReading := func(value float64) readings.Reading {
		return readingsTest.MetricReading(patientId, readings.MetricGlucose, value, time.Now())
	}

	expectCreate := func() {
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, alert alerts.Alert) (*alerts.Alert, error) {
				id := primitive.NewObjectID()
				alert.Id = &id
				return &alert, nil
			})
	}

	expectConfidenceQuery := func() {
		readingsService.EXPECT().
			Query(gomock.Any(), patientId, gomock.Nil(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
	}

	Describe("ProcessReading", func() {
		It("requires a patient id", func() {
			reading := glucoseReading(185.0)
			reading.PatientId = nil
			_, err := service.ProcessReading(context.Background(), reading)
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})

		It("creates no alert for an in-range reading", func() {
			alert, err := service.ProcessReading(context.Background(), glucoseReading(100.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).To(BeNil())
		})

		It("creates an active alert for a critical breach", func() {
			expectConfidenceQuery()
			expectCreate()

			alert, err := service.ProcessReading(context.Background(), glucoseReading(185.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).ToNot(BeNil())
			Expect(alert.Severity).To(Equal(alerts.SeverityCritical))
			Expect(alert.Status).To(Equal(alerts.StatusActive))
			Expect(alert.TriggerMetric).To(Equal(readings.MetricGlucose))
			Expect(alert.TriggerValue).To(Equal(185.0))
			Expect(alert.Detection.RequiresNotification).To(BeTrue())
			Expect(alert.Detection.Confidence).To(BeNumerically(">", 0))
			Expect(alert.Detection.Anomalies).To(HaveLen(1))
		})

		It("creates a watch alert when no recent alert suppresses it", func() {
			repo.EXPECT().
				HasActiveSince(gomock.Any(), patientId, readings.MetricGlucose, gomock.Any()).
				Return(false, nil)
			expectConfidenceQuery()
			expectCreate()

			alert, err := service.ProcessReading(context.Background(), glucoseReading(155.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).ToNot(BeNil())
			Expect(alert.Severity).To(Equal(alerts.SeverityWatch))
		})

		It("suppresses a repeat watch breach inside the suppression window", func() {
			repo.EXPECT().
				HasActiveSince(gomock.Any(), patientId, readings.MetricGlucose, gomock.Any()).
				Return(true, nil)

			alert, err := service.ProcessReading(context.Background(), glucoseReading(155.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).To(BeNil())
		})

		It("suppresses from the in-process cache without hitting the store", func() {
			repo.EXPECT().
				HasActiveSince(gomock.Any(), patientId, readings.MetricGlucose, gomock.Any()).
				Return(false, nil)
			expectConfidenceQuery()
			expectCreate()

			first, err := service.ProcessReading(context.Background(), glucoseReading(155.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(first).ToNot(BeNil())

			// No HasActiveSince expectation here: the cache answers.
			second, err := service.ProcessReading(context.Background(), glucoseReading(150.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(BeNil())
		})

		It("never suppresses a critical breach", func() {
			expectConfidenceQuery()
			expectCreate()
			first, err := service.ProcessReading(context.Background(), glucoseReading(185.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(first).ToNot(BeNil())

			expectConfidenceQuery()
			expectCreate()
			second, err := service.ProcessReading(context.Background(), glucoseReading(190.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(second).ToNot(BeNil())
		})

		It("is safe under concurrent readings", func() {
			readingsService.EXPECT().
				Query(gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).
				Return(nil, nil).
				AnyTimes()
			repo.EXPECT().
				HasActiveSince(gomock.Any(), gomock.Any(), readings.MetricGlucose, gomock.Any()).
				Return(false, nil).
				AnyTimes()
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, alert alerts.Alert) (*alerts.Alert, error) {
					id := primitive.NewObjectID()
					alert.Id = &id
					return &alert, nil
				}).
				AnyTimes()

			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()

					id := fmt.Sprintf("patient-%d", i%4)
					reading := readingsTest.MetricReading(id, readings.MetricGlucose, 155.0, time.Now())
					_, err := service.ProcessReading(context.Background(), reading)
					Expect(err).ToNot(HaveOccurred())
				}(i)
			}
			wg.Wait()
		})

		It("stops suppressing after the active alert is transitioned", func() {
			repo.EXPECT().
				HasActiveSince(gomock.Any(), patientId, readings.MetricGlucose, gomock.Any()).
				Return(false, nil)
			expectConfidenceQuery()
			expectCreate()

			created, err := service.ProcessReading(context.Background(), glucoseReading(155.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(created).ToNot(BeNil())

			repo.EXPECT().
				Transition(gomock.Any(), created.Id.Hex(), alerts.StatusResolved, "doctor-1", gomock.Nil()).
				DoAndReturn(func(_ context.Context, _ string, newStatus alerts.Status, actor string, _ *string) (*alerts.Alert, error) {
					resolved := *created
					resolved.Status = newStatus
					resolved.ResolvedBy = &actor
					return &resolved, nil
				})
			_, err = service.Transition(context.Background(), created.Id.Hex(), alerts.StatusResolved, "doctor-1", nil)
			Expect(err).ToNot(HaveOccurred())

			// The cache entry is gone, so the store is consulted again and a
			// fresh alert is raised.
			repo.EXPECT().
				HasActiveSince(gomock.Any(), patientId, readings.MetricGlucose, gomock.Any()).
				Return(false, nil)
			expectConfidenceQuery()
			expectCreate()

			second, err := service.ProcessReading(context.Background(), glucoseReading(152.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(second).ToNot(BeNil())
		})

		It("still creates the alert when the confidence query fails", func() {
			readingsService.EXPECT().
				Query(gomock.Any(), patientId, gomock.Nil(), gomock.Any(), gomock.Any()).
				Return(nil, errors.New("timeout"))
			expectCreate()

			alert, err := service.ProcessReading(context.Background(), glucoseReading(185.0))
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).ToNot(BeNil())
			Expect(alert.Detection.Confidence).To(BeNumerically(">", 0))
		})
	})

	Describe("Transition", func() {
		var alertId string
		var actor string

		BeforeEach(func() {
			alertId = primitive.NewObjectID().Hex()
			actor = test.Faker.UUID().V4()
		})

		It("requires an alert id", func() {
			_, err := service.Transition(context.Background(), "", alerts.StatusReviewed, actor, nil)
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})

		It("requires an actor", func() {
			_, err := service.Transition(context.Background(), alertId, alerts.StatusReviewed, "", nil)
			Expect(err).To(MatchError(httpErrors.BadRequest))
		})

		It("rejects transitions back to active", func() {
			_, err := service.Transition(context.Background(), alertId, alerts.StatusActive, actor, nil)
			Expect(err).To(MatchError(alerts.ErrInvalidTransition))
		})

		It("delegates valid transitions to the repository", func() {
			expected := &alerts.Alert{PatientId: patientId, Status: alerts.StatusReviewed}
			repo.EXPECT().
				Transition(gomock.Any(), alertId, alerts.StatusReviewed, actor, gomock.Nil()).
				Return(expected, nil)

			alert, err := service.Transition(context.Background(), alertId, alerts.StatusReviewed, actor, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(alert).To(Equal(expected))
		})

		It("surfaces invalid transitions detected by the repository", func() {
			repo.EXPECT().
				Transition(gomock.Any(), alertId, alerts.StatusResolved, actor, gomock.Nil()).
				Return(nil, alerts.ErrInvalidTransition)

			_, err := service.Transition(context.Background(), alertId, alerts.StatusResolved, actor, nil)
			Expect(err).To(MatchError(alerts.ErrInvalidTransition))
		})
	})
})

var _ = Describe("CanTransition", func() {
	It("allows active alerts to be reviewed or resolved", func() {
		Expect(alerts.CanTransition(alerts.StatusActive, alerts.StatusReviewed)).To(BeTrue())
		Expect(alerts.CanTransition(alerts.StatusActive, alerts.StatusResolved)).To(BeTrue())
	})

	It("allows reviewed alerts to be resolved only", func() {
		Expect(alerts.CanTransition(alerts.StatusReviewed, alerts.StatusResolved)).To(BeTrue())
		Expect(alerts.CanTransition(alerts.StatusReviewed, alerts.StatusActive)).To(BeFalse())
	})

	It("treats resolved as terminal", func() {
		Expect(alerts.CanTransition(alerts.StatusResolved, alerts.StatusActive)).To(BeFalse())
		Expect(alerts.CanTransition(alerts.StatusResolved, alerts.StatusReviewed)).To(BeFalse())
		Expect(alerts.CanTransition(alerts.StatusResolved, alerts.StatusResolved)).To(BeFalse())
	})
})
