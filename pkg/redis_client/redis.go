package redis_client

import (
	"context"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mvgboard/mvgboard/pkg/util"
)

// Client is nil when redis is not configured; callers treat caching as
// optional.
var Client *redis.Client

const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the shared redis client. Skipped entirely when
// MVGBOARD_REDIS_ADDRESS is unset.
func Connect() error {
	env := util.GetEnvironmentVariables()

	address := env["MVGBOARD_REDIS_ADDRESS"]
	if address == "" {
		return nil
	}

	password := defaultConnectionPassword
	database := defaultDatabase

	if env["MVGBOARD_REDIS_PASSWORD"] != "" {
		password = env["MVGBOARD_REDIS_PASSWORD"]
	}

	if env["MVGBOARD_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["MVGBOARD_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	return backoff.Retry(func() error {
		return Client.Ping(context.Background()).Err()
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
}
