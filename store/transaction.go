package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type Transaction = func(sessCtx mongo.SessionContext) (interface{}, error)

//go:generate mockgen --build_flags=--mod=mod -source=./transaction.go -destination=./test/mock_transaction.go -package test TxnRunner

// TxnRunner executes a closure within a single multi-document transaction.
// Writes are committed with majority write concern and reads use snapshot
// read concern, so a retried transaction observes the winner of a write
// conflict on re-execution.
type TxnRunner interface {
	Execute(ctx context.Context, txn Transaction) (interface{}, error)
}

func NewTxnRunner(dbClient *mongo.Client) TxnRunner {
	return &txnRunner{
		dbClient: dbClient,
	}
}

type txnRunner struct {
	dbClient *mongo.Client
}

func (t *txnRunner) Execute(ctx context.Context, txn Transaction) (interface{}, error) {
	return WithTransaction(ctx, t.dbClient, txn)
}

func WithTransaction(ctx context.Context, dbClient *mongo.Client, txn Transaction) (interface{}, error) {
	session, err := dbClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("unable to start session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetWriteConcern(writeconcern.Majority()).
		SetReadConcern(readconcern.Snapshot())
	return session.WithTransaction(ctx, txn, txnOpts)
}
