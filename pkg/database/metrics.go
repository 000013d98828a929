package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/ridership"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const storeBatchSize = 500

var ErrNoRecords = errors.New("no ridership records found")

type metricDocument struct {
	Route   string    `bson:"route"`
	Date    time.Time `bson:"date"`
	DateEnd time.Time `bson:"date_end"`

	Ridership        float64 `bson:"ridership"`
	RidershipPerDay  float64 `bson:"ridership_per_day"`
	RidershipWeekday float64 `bson:"ridership_weekday"`
	BusinessDays     int     `bson:"business_days"`
	NumDaysInMonth   int     `bson:"num_days_in_month"`

	ChangeVs1YearsAgo *float64 `bson:"change_vs_1_years_ago"`
	ChangeVs2YearsAgo *float64 `bson:"change_vs_2_years_ago"`
	ChangeVs3YearsAgo *float64 `bson:"change_vs_3_years_ago"`

	Measures map[string]float64 `bson:"measures,omitempty"`

	ModificationDateTime time.Time `bson:"modificationdatetime"`
}

func toDocument(record *ridership.Record, modified time.Time) *metricDocument {
	return &metricDocument{
		Route:                record.Route,
		Date:                 record.Date.Time,
		DateEnd:              record.DateEnd.Time,
		Ridership:            record.Ridership,
		RidershipPerDay:      record.RidershipPerDay,
		RidershipWeekday:     record.RidershipWeekday,
		BusinessDays:         record.BusinessDays,
		NumDaysInMonth:       record.NumDaysInMonth,
		ChangeVs1YearsAgo:    record.ChangeVs1YearsAgo,
		ChangeVs2YearsAgo:    record.ChangeVs2YearsAgo,
		ChangeVs3YearsAgo:    record.ChangeVs3YearsAgo,
		Measures:             record.Measures,
		ModificationDateTime: modified,
	}
}

func (d *metricDocument) toRecord() *ridership.Record {
	date := d.Date.UTC()

	return &ridership.Record{
		Route:             d.Route,
		Date:              ridership.NewPeriod(date.Year(), date.Month()),
		DateEnd:           ridership.Day{Time: d.DateEnd.UTC()},
		Ridership:         d.Ridership,
		RidershipPerDay:   d.RidershipPerDay,
		RidershipWeekday:  d.RidershipWeekday,
		BusinessDays:      d.BusinessDays,
		NumDaysInMonth:    d.NumDaysInMonth,
		ChangeVs1YearsAgo: d.ChangeVs1YearsAgo,
		ChangeVs2YearsAgo: d.ChangeVs2YearsAgo,
		ChangeVs3YearsAgo: d.ChangeVs3YearsAgo,
		Measures:          d.Measures,
	}
}

// MetricStore keeps processed ridership in a MongoDB collection keyed by
// route and date.
type MetricStore struct {
	Collection *mongo.Collection
}

func NewMetricStore() *MetricStore {
	return &MetricStore{Collection: GetCollection(RidershipMetricsCollection)}
}

// StoreRecords upserts every record. Re-running over the same dataset leaves
// the collection unchanged apart from modification times.
func (s *MetricStore) StoreRecords(ctx context.Context, records []*ridership.Record) error {
	now := time.Now()
	var batch []mongo.WriteModel

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		_, err := s.Collection.BulkWrite(ctx, batch, options.BulkWrite().SetOrdered(false))
		batch = batch[:0]
		return err
	}

	for _, record := range records {
		document := toDocument(record, now)

		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"route": document.Route, "date": document.Date})
		replaceModel.SetReplacement(document)
		replaceModel.SetUpsert(true)
		batch = append(batch, replaceModel)

		if len(batch) >= storeBatchSize {
			if err := flush(); err != nil {
				return fmt.Errorf("store ridership: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("store ridership: %w", err)
	}

	log.Info().Int("records", len(records)).Str("collection", s.Collection.Name()).Msg("Stored ridership metrics")

	return nil
}

func (s *MetricStore) Routes(ctx context.Context) ([]string, error) {
	values, err := s.Collection.Distinct(ctx, "route", bson.D{})
	if err != nil {
		return nil, err
	}

	routes := make([]string, 0, len(values))
	for _, value := range values {
		if route, ok := value.(string); ok {
			routes = append(routes, route)
		}
	}

	return routes, nil
}

func (s *MetricStore) RouteRecords(ctx context.Context, route string) ([]*ridership.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := s.Collection.Find(ctx, bson.M{"route": route}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*ridership.Record
	for cursor.Next(ctx) {
		var document metricDocument
		if err := cursor.Decode(&document); err != nil {
			log.Error().Err(err).Str("route", route).Msg("Failed to decode ridership metric")
			continue
		}

		records = append(records, document.toRecord())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	return records, nil
}

func (s *MetricStore) LatestRecord(ctx context.Context, route string) (*ridership.Record, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var document metricDocument
	err := s.Collection.FindOne(ctx, bson.M{"route": route}, opts).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, err
	}

	return document.toRecord(), nil
}
