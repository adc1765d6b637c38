package alerts_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ErwinJ1299/scout2-sub002/alerts"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	readingsTest "github.com/ErwinJ1299/scout2-sub002/readings/test"
	"github.com/ErwinJ1299/scout2-sub002/test"
)

var _ = Describe("Classify", func() {
	var ranges alerts.NormalRanges
	var patientId string
	var now time.Time

	BeforeEach(func() {
		ranges = alerts.DefaultNormalRanges()
		patientId = test.Faker.UUID().V4()
		now = time.Now()
	})

	glucoseReading := func(value float64) readings.Reading {
		return readingsTest.MetricReading(patientId, readings.MetricGlucose, value, now)
	}

	It("returns no anomalies for an in-range reading", func() {
		anomalies, severity := alerts.Classify(glucoseReading(100.0), ranges)
		Expect(anomalies).To(BeEmpty())
		Expect(severity).To(BeNil())
	})

	It("classifies a reading above the critical bound as CRITICAL", func() {
		anomalies, severity := alerts.Classify(glucoseReading(185.0), ranges)
		Expect(severity).To(HaveValue(Equal(alerts.SeverityCritical)))
		Expect(anomalies).To(HaveLen(1))
		Expect(anomalies[0].Metric).To(Equal(readings.MetricGlucose))
		Expect(anomalies[0].Severity).To(Equal(alerts.SeverityCritical))
		Expect(anomalies[0].Deviation).To(BeNumerically("~", 5.0, 1e-9))
		Expect(anomalies[0].Type).To(Equal(alerts.AnomalyTypeThresholdBreach))
	})

	It("classifies a reading between the warning and critical bounds as WATCH", func() {
		anomalies, severity := alerts.Classify(glucoseReading(155.0), ranges)
		Expect(severity).To(HaveValue(Equal(alerts.SeverityWatch)))
		Expect(anomalies).To(HaveLen(1))
		Expect(anomalies[0].Severity).To(Equal(alerts.SeverityWatch))
		Expect(anomalies[0].Deviation).To(BeNumerically("~", 15.0, 1e-9))
	})

	It("reports a negative deviation for a low breach", func() {
		anomalies, severity := alerts.Classify(glucoseReading(50.0), ranges)
		Expect(severity).To(HaveValue(Equal(alerts.SeverityCritical)))
		Expect(anomalies[0].Deviation).To(BeNumerically("~", -4.0, 1e-9))
	})

	It("escalates to CRITICAL when any metric breaches a critical bound", func() {
		reading := readings.Reading{
			PatientId:  &patientId,
			Timestamp:  &now,
			Glucose:    pointer.FromAny(155.0),
			BpSystolic: pointer.FromAny(190.0),
		}
		anomalies, severity := alerts.Classify(reading, ranges)
		Expect(severity).To(HaveValue(Equal(alerts.SeverityCritical)))
		Expect(anomalies).To(HaveLen(2))
	})

	It("ignores metrics without configured bands", func() {
		reading := readingsTest.MetricReading(patientId, readings.MetricSteps, 200000, now)
		anomalies, severity := alerts.Classify(reading, ranges)
		Expect(anomalies).To(BeEmpty())
		Expect(severity).To(BeNil())
	})
})

var _ = Describe("ConfidenceScore", func() {
	var patientId string
	var now time.Time

	BeforeEach(func() {
		patientId = test.Faker.UUID().V4()
		now = time.Now()
	})

	reading := func(source string, age time.Duration) readings.Reading {
		r := readingsTest.MetricReading(patientId, readings.MetricGlucose, 160.0, now.Add(-age))
		r.Source = &source
		return r
	}

	It("stays within the unit interval", func() {
		score := alerts.ConfidenceScore(reading(readings.SourceWearable, 0), nil, now)
		Expect(score).To(BeNumerically(">=", 0))
		Expect(score).To(BeNumerically("<=", 1))
	})

	It("scores wearable data higher than manual data", func() {
		wearable := alerts.ConfidenceScore(reading(readings.SourceWearable, 0), nil, now)
		manual := alerts.ConfidenceScore(reading(readings.SourceManual, 0), nil, now)
		Expect(wearable).To(BeNumerically(">", manual))
	})

	It("scores fresh readings higher than stale ones", func() {
		fresh := alerts.ConfidenceScore(reading(readings.SourceWearable, 30*time.Minute), nil, now)
		stale := alerts.ConfidenceScore(reading(readings.SourceWearable, 40*time.Hour), nil, now)
		Expect(fresh).To(BeNumerically(">", stale))
	})

	It("never decays recency below the floor", func() {
		ancient := alerts.ConfidenceScore(reading(readings.SourceWearable, 30*24*time.Hour), nil, now)
		floor := alerts.ConfidenceScore(reading(readings.SourceWearable, 48*time.Hour), nil, now)
		Expect(ancient).To(BeNumerically("~", floor, 1e-9))
	})

	It("scores consistent recent data higher than noisy data", func() {
		consistent := []readings.Reading{
			readingsTest.MetricReading(patientId, readings.MetricGlucose, 158.0, now.Add(-2*time.Hour)),
			readingsTest.MetricReading(patientId, readings.MetricGlucose, 162.0, now.Add(-4*time.Hour)),
		}
		noisy := []readings.Reading{
			readingsTest.MetricReading(patientId, readings.MetricGlucose, 60.0, now.Add(-2*time.Hour)),
			readingsTest.MetricReading(patientId, readings.MetricGlucose, 300.0, now.Add(-4*time.Hour)),
		}
		r := reading(readings.SourceWearable, 0)
		Expect(alerts.ConfidenceScore(r, consistent, now)).
			To(BeNumerically(">", alerts.ConfidenceScore(r, noisy, now)))
	})
})
