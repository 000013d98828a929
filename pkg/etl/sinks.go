package etl

import (
	"context"

	"github.com/travigo/ridership/pkg/archiver"
	"github.com/travigo/ridership/pkg/elastic_client"
	"github.com/travigo/ridership/pkg/ridership"
)

// Sink receives the finished dataset once the output file has been written.
type Sink interface {
	Name() string
	Write(ctx context.Context, outputPath string, dataset *ridership.Dataset) error
}

type BucketSink struct {
	Archiver *archiver.Archiver
}

func (s *BucketSink) Name() string { return "bucket" }

func (s *BucketSink) Write(ctx context.Context, outputPath string, _ *ridership.Dataset) error {
	return s.Archiver.UploadToStorage(ctx, outputPath)
}

type RecordStore interface {
	StoreRecords(ctx context.Context, records []*ridership.Record) error
}

type StoreSink struct {
	Store RecordStore
}

func (s *StoreSink) Name() string { return "store" }

func (s *StoreSink) Write(ctx context.Context, _ string, dataset *ridership.Dataset) error {
	return s.Store.StoreRecords(ctx, dataset.Records)
}

type IndexSink struct {
	IndexName string
}

func (s *IndexSink) Name() string { return "index" }

func (s *IndexSink) Write(ctx context.Context, _ string, dataset *ridership.Dataset) error {
	indexName := s.IndexName
	if indexName == "" {
		indexName = elastic_client.RidershipMetricsIndex
	}

	return elastic_client.IndexRecords(ctx, indexName, dataset.Records)
}
