package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a function inside a MongoDB session transaction. Used by the
// chirp service to make its check-then-act sequences (quota check before
// insert, ownership check before update/delete) atomic.
//
// Transactions require a replica set. Against a standalone server the session
// start fails and the function is run directly, which degrades to the same
// read-committed guarantee a plain sequence of operations would have.
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
