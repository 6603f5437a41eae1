//go:build integration

package database

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startMongo chạy container mongo:7 và trả về client đã kết nối
func startMongo(t *testing.T) *mongo.Client {
	t.Helper()
	skipIfNoDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, client.Ping(ctx, nil))
	return client
}

func TestMongoBackend_Contract(t *testing.T) {
	client := startMongo(t)
	runStoreContract(t, NewMongoBackend(client.Database("contract_test")))
}

func TestMongoBackend_EnsureIndexes(t *testing.T) {
	client := startMongo(t)
	ctx := context.Background()
	backend := NewMongoBackend(client.Database("index_test"))
	reg := NewCollectionRegistry(backend)

	coll, err := reg.Collection("trafic")
	require.NoError(t, err)
	_, err = coll.InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)
	require.NoError(t, reg.EnsureIndexes(ctx, "trafic"))
	require.NoError(t, reg.EnsureIndexes(ctx, "trafic"))

	specs, err := client.Database("index_test").Collection("trafic").Indexes().ListSpecifications(ctx)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, s := range specs {
		names[s.Name] = true
	}
	for _, want := range []string{"idx_pays", "idx_zone", "idx_mois", "idx_marge_pays"} {
		require.True(t, names[want], want)
	}
}
