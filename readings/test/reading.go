package test

import (
	"time"

	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/test"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func RandomReading() readings.Reading {
	id := primitive.NewObjectID()
	return readings.Reading{
		Id:        &id,
		PatientId: pointer.FromAny(test.Faker.UUID().V4()),
		Glucose:   pointer.FromAny(test.Faker.Float64(1, 80, 200)),
		HeartRate: pointer.FromAny(test.Faker.Float64(1, 50, 110)),
		Timestamp: pointer.FromAny(time.Now().Add(-time.Duration(test.Faker.IntBetween(0, 72)) * time.Hour)),
		Source:    pointer.FromAny(readings.SourceManual),
	}
}

// MetricReading builds a reading carrying a single metric value.
func MetricReading(patientId string, metric readings.Metric, value float64, timestamp time.Time) readings.Reading {
	reading := readings.Reading{
		PatientId: &patientId,
		Timestamp: &timestamp,
		Source:    pointer.FromAny(readings.SourceWearable),
	}
	switch metric {
	case readings.MetricGlucose:
		reading.Glucose = &value
	case readings.MetricBpSystolic:
		reading.BpSystolic = &value
	case readings.MetricBpDiastolic:
		reading.BpDiastolic = &value
	case readings.MetricHeartRate:
		reading.HeartRate = &value
	case readings.MetricSteps:
		reading.Steps = &value
	case readings.MetricWeight:
		reading.Weight = &value
	}
	return reading
}
