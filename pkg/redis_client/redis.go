package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/ridership/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	env := util.GetEnvironmentVariables()

	address := util.GetEnvironmentVariable(env, "RIDERSHIP_REDIS_ADDRESS", defaultConnectionAddress)
	password := util.GetEnvironmentVariable(env, "RIDERSHIP_REDIS_PASSWORD", defaultConnectionPassword)
	database, err := util.GetEnvironmentInt(env, "RIDERSHIP_REDIS_DATABASE", defaultDatabase)
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	Client = client

	return nil
}
