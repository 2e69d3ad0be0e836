package containers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupRedisContainer starts a Redis testcontainer and returns the container
// and a redis:// URL for it. The caller terminates the container.
func SetupRedisContainer(ctx context.Context) (*tcredis.RedisContainer, string, error) {
	redisContainer, err := tcredis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			).WithDeadline(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start redis container: %w", err)
	}

	redisURL, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		if terminateErr := redisContainer.Terminate(ctx); terminateErr != nil {
			log.Printf("Failed to terminate redis container after getting connection string failed: %v", terminateErr)
		}
		return nil, "", fmt.Errorf("failed to get redis connection string: %w", err)
	}

	log.Printf("Redis container started and ready. URL: %s", redisURL)
	return redisContainer, redisURL, nil
}
