package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RidershipMetricsCollection = "ridership_metrics"

func createIndexes() {
	createRidershipMetricsIndexes()
}

func createRidershipMetricsIndexes() {
	metricsCollection := GetCollection(RidershipMetricsCollection)

	metricsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "route", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := metricsCollection.Indexes().CreateMany(context.Background(), metricsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
