package dataimporter

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/ridership/pkg/ridership"
)

func TestParseTable(t *testing.T) {
	table, err := ParseTable(strings.NewReader("Route,Date,Ridership\n80,01/2020,5\n150,01/2020\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Route", "Date", "Ridership"}, table.Header)
	assert.Equal(t, [][]string{{"80", "01/2020", "5"}, {"150", "01/2020"}}, table.Rows)
	assert.Equal(t, "", table.Cell(1, 2))
}

func TestParseTableStripsByteOrderMark(t *testing.T) {
	table, err := ParseTable(strings.NewReader("\ufeffRoute,Date,Ridership\n80,01/2020,5\n"))
	require.NoError(t, err)

	assert.Equal(t, "Route", table.Header[0])

	dataset, err := ridership.Transform(table, ridership.Options{})
	require.NoError(t, err)
	require.Len(t, dataset.Records, 1)
	assert.Equal(t, "80", dataset.Records[0].Route)
}

func TestParseTableEmpty(t *testing.T) {
	_, err := ParseTable(strings.NewReader(""))

	assert.Error(t, err)
}

func TestLoadTableFromFile(t *testing.T) {
	table, err := LoadTable(filepath.Join("testdata", "mta_bus_ridership.csv"))
	require.NoError(t, err)

	dataset, err := ridership.Transform(table, ridership.Options{})
	require.NoError(t, err)

	require.Len(t, dataset.Records, 3)
	assert.Equal(t, "CityLink Blue", dataset.Records[2].Route)
	assert.Equal(t, 10000.0, dataset.Records[2].RidershipPerDay)
}

func TestLoadTableFromURL(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "mta_bus_ridership.csv"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	table, err := LoadTable(server.URL + "/mta_bus_ridership.csv")
	require.NoError(t, err)

	assert.Len(t, table.Rows, 3)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join("testdata", "missing.csv"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsValidUrl(t *testing.T) {
	assert.True(t, isValidUrl("https://www.mta.maryland.gov/performance-improvement"))
	assert.False(t, isValidUrl("data/raw/mta_bus_ridership.csv"))
	assert.False(t, isValidUrl("/tmp/file.csv"))
}
