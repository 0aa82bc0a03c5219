//go:build integration

// Package repotest starts a disposable MongoDB for repository integration tests.
// Run with: go test -tags integration ./database/repository/...
package repotest

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoImage = "mongo:7.0"
	mongoPort  = "27017/tcp"
)

// SkipIfNoDocker skips the test when no Docker daemon answers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewClient starts a MongoDB container for the lifetime of t and connects to it.
func NewClient(t *testing.T) *mongo.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mongoImage,
			ExposedPorts: []string{mongoPort},
			WaitingFor:   wait.ForListeningPort(mongoPort).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

// Database returns a fresh, uniquely named database so subtests never share documents.
func Database(client *mongo.Client) *mongo.Database {
	return client.Database("chargesphere_" + primitive.NewObjectID().Hex())
}
