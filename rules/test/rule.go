package test

import (
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/test"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func RandomRule() rules.Rule {
	id := primitive.NewObjectID()
	return rules.Rule{
		Id:           &id,
		Metric:       readings.MetricGlucose,
		WindowDays:   test.Faker.IntBetween(3, 14),
		MinChange:    float64(test.Faker.IntBetween(5, 20)),
		Direction:    rules.DirectionDecrease,
		RewardHp:     test.Faker.IntBetween(10, 100),
		RewardWc:     test.Faker.IntBetween(1, 5),
		CooldownDays: test.Faker.IntBetween(7, 30),
		Active:       true,
		Description:  pointer.FromAny(test.Faker.Lorem().Sentence(4)),
	}
}
