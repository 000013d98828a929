package elastic_client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ridership/pkg/ridership"
	"github.com/travigo/ridership/pkg/util"
)

const RidershipMetricsIndex = "ridership-metrics"

var Client *elasticsearch.Client

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	address := env["RIDERSHIP_ELASTICSEARCH_ADDRESS"]
	if address == "" && !required {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	} else if address == "" && required {
		return fmt.Errorf("elasticsearch configuration not set")
	}

	es, err := NewClient(address, env["RIDERSHIP_ELASTICSEARCH_USERNAME"], env["RIDERSHIP_ELASTICSEARCH_PASSWORD"])
	if err != nil {
		return err
	}

	_, err = es.Info()
	if err != nil {
		return err
	}

	Client = es

	log.Info().Msgf("Elasticsearch client setup for %s", address)

	return nil
}

func NewClient(address string, username string, password string) (*elasticsearch.Client, error) {
	// Cluster runs with a self-signed certificate
	tp := http.DefaultTransport.(*http.Transport).Clone()
	if tp.TLSClientConfig == nil {
		tp.TLSClientConfig = &tls.Config{}
	}
	tp.TLSClientConfig.InsecureSkipVerify = true

	retryBackoff := backoff.NewExponentialBackOff()

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{address},
		Username:  username,
		Password:  password,
		Transport: tp,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
}

func DocumentID(record *ridership.Record) string {
	return fmt.Sprintf("%s|%s", record.Route, record.Date.String())
}

// IndexRecords bulk indexes records keyed by route and month so reindexing a
// dataset overwrites earlier documents.
func IndexRecords(ctx context.Context, indexName string, records []*ridership.Record) error {
	if Client == nil {
		return fmt.Errorf("elasticsearch client not connected")
	}

	bulkIndexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        Client,
		Index:         indexName,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return err
	}

	for _, record := range records {
		document, err := json.Marshal(record)
		if err != nil {
			return err
		}

		err = bulkIndexer.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: DocumentID(record),
				Body:       bytes.NewReader(document),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
					} else {
						log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
					}
				},
			},
		)
		if err != nil {
			return err
		}
	}

	if err := bulkIndexer.Close(ctx); err != nil {
		return err
	}

	stats := bulkIndexer.Stats()
	if stats.NumFailed > 0 {
		return fmt.Errorf("failed to index %d of %d documents", stats.NumFailed, len(records))
	}

	log.Info().Uint64("indexed", stats.NumIndexed).Str("index", indexName).Msg("Indexed ridership metrics")

	return nil
}
