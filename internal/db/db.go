package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fennwick/projectpilot/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	collProjects = "projects"
	collTasks    = "tasks"
	collTimeLogs = "time_logs"
)

// connectTimeout bounds server selection and liveness pings.
const connectTimeout = 10 * time.Second

// DB owns the single MongoDB client for the process. The connection is
// established lazily and at most once; concurrent first callers are
// serialized by the mutex. All three stores hang off this type.
type DB struct {
	uri  string
	name string

	mu     sync.Mutex
	client *mongo.Client
	handle *mongo.Database
}

// New returns an unconnected DB for the given connection string and
// database name. No I/O happens until Connect or the first operation.
func New(uri, name string) *DB {
	return &DB{uri: uri, name: name}
}

// Connect establishes the MongoDB connection if needed. Calling it while
// already connected verifies liveness with a ping and reconnects once if
// the ping fails. Errors indicate the server was unreachable within the
// bounded timeout.
func (db *DB) Connect(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.connectLocked(ctx)
}

// connectLocked does the actual work; the caller must hold db.mu.
func (db *DB) connectLocked(ctx context.Context) error {
	if db.client != nil {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err := db.client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			return nil
		}
		logger.Warn("MongoDB ping failed, reconnecting", logger.F("error", err))
		_ = db.client.Disconnect(ctx)
		db.client = nil
		db.handle = nil
	}

	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(db.uri).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(connCtx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", logger.F("uri", db.uri), logger.F("error", err))
		return fmt.Errorf("failed to connect to MongoDB at %s: %w", db.uri, err)
	}

	// Connect alone does not dial; force a round trip so connectivity
	// errors surface here rather than on the first store operation.
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB unreachable", logger.F("uri", db.uri), logger.F("error", err))
		return fmt.Errorf("MongoDB unreachable at %s: %w", db.uri, err)
	}

	db.client = client
	db.handle = client.Database(db.name)
	logger.Info("MongoDB connection established", logger.F("database", db.name))

	db.ensureIndexes(ctx)
	return nil
}

// Handle returns the database handle, attempting one lazy connect if no
// connection has been established yet.
func (db *DB) Handle(ctx context.Context) (*mongo.Database, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.handle == nil {
		if err := db.connectLocked(ctx); err != nil {
			return nil, err
		}
	}
	return db.handle, nil
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.client == nil {
		return nil
	}
	err := db.client.Disconnect(ctx)
	db.client = nil
	db.handle = nil
	return err
}

// ensureIndexes provisions the secondary lookup indexes. Failures are
// logged and ignored: the stores stay correct without them, just slower.
// Mongo treats re-creating an existing index as a no-op.
func (db *DB) ensureIndexes(ctx context.Context) {
	indexes := []struct {
		coll string
		keys bson.D
	}{
		{collProjects, bson.D{{Key: "name", Value: 1}}},
		{collTasks, bson.D{{Key: "project_id", Value: 1}}},
		{collTasks, bson.D{{Key: "status", Value: 1}}},
		{collTimeLogs, bson.D{{Key: "task_id", Value: 1}}},
	}

	for _, idx := range indexes {
		_, err := db.handle.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: idx.keys})
		if err != nil {
			logger.Warn("failed to ensure index",
				logger.F("collection", idx.coll),
				logger.F("error", err))
		}
	}
}

func (db *DB) projects(ctx context.Context) (*mongo.Collection, error) {
	h, err := db.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return h.Collection(collProjects), nil
}

func (db *DB) tasks(ctx context.Context) (*mongo.Collection, error) {
	h, err := db.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return h.Collection(collTasks), nil
}

func (db *DB) timeLogs(ctx context.Context) (*mongo.Collection, error) {
	h, err := db.Handle(ctx)
	if err != nil {
		return nil, err
	}
	return h.Collection(collTimeLogs), nil
}
