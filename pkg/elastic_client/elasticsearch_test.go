package elastic_client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ridership/pkg/ridership"
)

type bulkServer struct {
	mutex sync.Mutex
	ids   []string
}

func (b *bulkServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	if !strings.HasSuffix(r.URL.Path, "/_bulk") {
		w.Write([]byte(`{"version":{"number":"8.19.0"}}`))
		return
	}

	var items []string
	scanner := bufio.NewScanner(r.Body)
	for scanner.Scan() {
		var action map[string]map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &action); err != nil {
			continue
		}
		if index, ok := action["index"]; ok {
			if id, ok := index["_id"].(string); ok {
				b.mutex.Lock()
				b.ids = append(b.ids, id)
				b.mutex.Unlock()
				items = append(items, `{"index":{"_id":"`+id+`","status":201}}`)
			}
		}
	}

	w.Write([]byte(`{"took":1,"errors":false,"items":[` + strings.Join(items, ",") + `]}`))
}

func TestIndexRecords(t *testing.T) {
	handler := &bulkServer{}
	server := httptest.NewServer(handler)
	defer server.Close()

	client, err := NewClient(server.URL, "", "")
	require.NoError(t, err)
	Client = client
	defer func() { Client = nil }()

	records := []*ridership.Record{
		{Route: "80", Date: ridership.NewPeriod(2020, time.January), Ridership: 150},
		{Route: "CityLink Blue", Date: ridership.NewPeriod(2023, time.April), Ridership: 300000},
	}

	require.NoError(t, IndexRecords(context.Background(), RidershipMetricsIndex, records))

	assert.ElementsMatch(t, []string{"80|2020-01-01", "CityLink Blue|2023-04-01"}, handler.ids)
}

func TestIndexRecordsWithoutClient(t *testing.T) {
	Client = nil

	assert.Error(t, IndexRecords(context.Background(), RidershipMetricsIndex, nil))
}

func TestConnectSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("RIDERSHIP_ELASTICSEARCH_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.Error(t, Connect(true))
}
