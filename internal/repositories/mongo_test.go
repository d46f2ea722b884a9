package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupMongoContainer(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017")

	uri := fmt.Sprintf("mongodb://%s:%d", host, port.Int())

	var client *mongo.Client
	for i := 0; i < 10; i++ {
		client, err = ConnectMongo(ctx, uri, 5*time.Second)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	db := client.Database("testdb")

	teardown := func() {
		_ = client.Disconnect(context.Background())
		_ = container.Terminate(context.Background())
	}

	return db, teardown
}

func TestConnectMongo_Unreachable(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "mongodb://127.0.0.1:1", 500*time.Millisecond)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestConnectMongo_InvalidURI(t *testing.T) {
	client, err := ConnectMongo(context.Background(), "not-a-uri", time.Second)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestEnsureIndexes(t *testing.T) {
	db, teardown := setupMongoContainer(t)
	defer teardown()

	ctx := context.Background()

	assert.NoError(t, EnsureIndexes(ctx, db))
	// Idempotent on restart
	assert.NoError(t, EnsureIndexes(ctx, db))

	cur, err := db.Collection(UsersCollection).Indexes().List(ctx)
	require.NoError(t, err)

	var indexes []struct {
		Name   string `bson:"name"`
		Unique bool   `bson:"unique"`
	}
	require.NoError(t, cur.All(ctx, &indexes))

	found := false
	for _, idx := range indexes {
		if idx.Name == "email_1" {
			found = true
			assert.True(t, idx.Unique)
		}
	}
	assert.True(t, found, "email index missing")
}
