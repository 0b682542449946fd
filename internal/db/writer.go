package db

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lakshya2505/LogiCore/internal/fleet"
)

// MongoWriter persists a transition's write intents. It prefers a
// multi-document transaction so cross-entity side effects (a dispatch
// touching trip, vehicle and driver) commit atomically. Standalone
// deployments do not support transactions; there the writer falls back
// to sequential writes and logs any partial failure as a recoverable
// inconsistency instead of dropping it.
type MongoWriter struct {
	client *mongo.Client
	colls  *Collections
}

// NewMongoWriter creates a writer over the given collections.
func NewMongoWriter(client *mongo.Client, colls *Collections) *MongoWriter {
	return &MongoWriter{client: client, colls: colls}
}

// Apply persists one operation's change set.
func (w *MongoWriter) Apply(ctx context.Context, changes []fleet.Change) error {
	session, err := w.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, w.applyAll(sc, changes)
	})
	if err != nil && transactionsUnsupported(err) {
		log.Warn("mongo deployment does not support transactions, applying writes sequentially")
		return w.applySequential(ctx, changes)
	}
	return err
}

// applyAll writes every change through the given context (transactional
// or plain).
func (w *MongoWriter) applyAll(ctx context.Context, changes []fleet.Change) error {
	for _, ch := range changes {
		coll, err := w.colls.byName(ch.Collection)
		if err != nil {
			return err
		}
		switch ch.Op {
		case fleet.OpCreate:
			// Upsert by the client-generated id so a retried create
			// de-duplicates instead of inserting twice.
			opts := options.Replace().SetUpsert(true)
			if _, err := coll.ReplaceOne(ctx, bson.M{"_id": ch.ID}, ch.Doc, opts); err != nil {
				return fmt.Errorf("create %s/%s: %w", ch.Collection, ch.ID, err)
			}
		case fleet.OpUpdate:
			if _, err := coll.UpdateOne(ctx, bson.M{"_id": ch.ID}, bson.M{"$set": ch.Doc}); err != nil {
				return fmt.Errorf("update %s/%s: %w", ch.Collection, ch.ID, err)
			}
		case fleet.OpDelete:
			if _, err := coll.DeleteOne(ctx, bson.M{"_id": ch.ID}); err != nil {
				return fmt.Errorf("delete %s/%s: %w", ch.Collection, ch.ID, err)
			}
		default:
			return fmt.Errorf("unknown change op %q", ch.Op)
		}
	}
	return nil
}

// applySequential applies changes one by one without a transaction. A
// failure mid-way leaves earlier writes in place; that window is logged
// loudly for reconciliation.
func (w *MongoWriter) applySequential(ctx context.Context, changes []fleet.Change) error {
	for i, ch := range changes {
		if err := w.applyAll(ctx, []fleet.Change{ch}); err != nil {
			if i > 0 {
				log.WithError(err).WithFields(log.Fields{
					"applied": i,
					"total":   len(changes),
				}).Error("recoverable inconsistency: partial change set persisted without transaction")
			}
			return err
		}
	}
	return nil
}

// transactionsUnsupported detects the server rejecting transactions
// outside a replica set.
func transactionsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported")
}
