package archiver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNameFor(t *testing.T) {
	archiver := &Archiver{}
	assert.Equal(t, "mta_bus_ridership.csv", archiver.ObjectNameFor("data/processed/mta_bus_ridership.csv"))

	archiver.ObjectName = "mta/2023/ridership.csv"
	assert.Equal(t, "mta/2023/ridership.csv", archiver.ObjectNameFor("data/processed/mta_bus_ridership.csv"))
}

func TestUploadToStorageRequiresBucket(t *testing.T) {
	archiver := &Archiver{}

	assert.Error(t, archiver.UploadToStorage(context.Background(), "data/processed/mta_bus_ridership.csv"))
}

func TestUploadToStorageMissingFile(t *testing.T) {
	archiver := &Archiver{CloudBucketName: "ridership"}

	err := archiver.UploadToStorage(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUploadToStorage(t *testing.T) {
	var mutex sync.Mutex
	var uploads []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mutex.Lock()
		uploads = append(uploads, r.URL.Path+"\n"+string(body))
		mutex.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bucket":"ridership","name":"mta_bus_ridership.csv","size":"7"}`))
	}))
	defer server.Close()

	t.Setenv("STORAGE_EMULATOR_HOST", strings.TrimPrefix(server.URL, "http://"))

	filename := filepath.Join(t.TempDir(), "mta_bus_ridership.csv")
	require.NoError(t, os.WriteFile(filename, []byte("route\n80\n"), 0644))

	archiver := &Archiver{CloudBucketName: "ridership"}
	require.NoError(t, archiver.UploadToStorage(context.Background(), filename))

	require.Len(t, uploads, 1)
	assert.Contains(t, uploads[0], "/b/ridership/o")
	assert.Contains(t, uploads[0], "route\n80\n")
}
