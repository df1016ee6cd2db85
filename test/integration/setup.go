package integration

import (
	"context"
	"testing"
	"time"

	"pourpal/internal/repository"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *mongodb.MongoDBContainer
	Client    *mongo.Client
	Database  *mongo.Database
}

// SetupTestDB starts a MongoDB test container and connects a client to it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	connStr, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(connStr).
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		t.Fatalf("failed to ping mongo: %v", err)
	}

	db := client.Database("pourpal_test")
	ensureIndexes(t, db)

	t.Cleanup(func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			t.Logf("failed to disconnect client: %v", err)
		}
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: mongoContainer,
		Client:    client,
		Database:  db,
	}
}

// ensureIndexes creates the same indexes the server creates at startup.
func ensureIndexes(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx := context.Background()
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		repository.EnsureCartIndexes,
		repository.EnsureItemIndexes,
		repository.EnsureOrderIndexes,
		repository.EnsureUserIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			t.Fatalf("failed to ensure indexes: %v", err)
		}
	}
}
