package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service interface {
	Get(ctx context.Context, userId string) (*Stats, error)
	Increment(ctx context.Context, userId string, increment StatsIncrement) error
}

// Stats is the single live gamification aggregate for a user. Point and
// token balances only grow through granting and task completion; redemption
// debits are handled by the marketplace service.
type Stats struct {
	Id                *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserId            string              `bson:"userId" json:"userId"`
	TotalPoints       int                 `bson:"totalPoints" json:"totalPoints"`
	RewardTokens      int                 `bson:"rewardTokens" json:"rewardTokens"`
	TotalTokensEarned int                 `bson:"totalTokensEarned" json:"totalTokensEarned"`
	CurrentStreak     int                 `bson:"currentStreak" json:"currentStreak"`
	LongestStreak     int                 `bson:"longestStreak" json:"longestStreak"`
	LastActivityAt    *time.Time          `bson:"lastActivityAt,omitempty" json:"lastActivityAt,omitempty"`
	UpdatedAt         *time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// StatsIncrement holds the deltas applied to a user's balances in a single
// atomic update. Zero fields are omitted from the update document.
type StatsIncrement struct {
	TotalPoints       int `structs:"totalPoints"`
	RewardTokens      int `structs:"rewardTokens"`
	TotalTokensEarned int `structs:"totalTokensEarned"`
	CurrentStreak     int `structs:"currentStreak"`
}

func (s StatsIncrement) IsZero() bool {
	return s == StatsIncrement{}
}
