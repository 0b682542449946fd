package db

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Watch subscribes to a collection's change stream and invokes onChange
// for every remote change. Consumers reload the full collection on each
// notification, matching the snapshot-per-change contract of the change
// feed. The goroutine stops when ctx is cancelled.
//
// Change streams need a replica set; on standalone deployments Watch
// returns the server's error and the caller runs without live updates.
func Watch(ctx context.Context, coll *mongo.Collection, onChange func()) error {
	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return err
	}
	go func() {
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			onChange()
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.WithError(err).WithField("collection", coll.Name()).Error("change stream closed")
		}
	}()
	return nil
}
