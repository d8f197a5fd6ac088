package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a client and pings it. Caller should call client.Disconnect(ctx).
// maxPool caps the driver's connection pool; zero keeps the driver default.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration, maxPool uint64) (*mongo.Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	clientOpts := options.Client().ApplyURI(uri)
	if maxPool > 0 {
		clientOpts.SetMaxPoolSize(maxPool)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
