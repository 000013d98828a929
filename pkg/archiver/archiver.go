package archiver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const maxUploadAttempts = 3

// Archiver copies a processed output file into a cloud storage bucket.
type Archiver struct {
	CloudBucketName string
	ObjectName      string
}

// ObjectNameFor falls back to the file's base name when no object name is set.
func (a *Archiver) ObjectNameFor(filename string) string {
	if a.ObjectName != "" {
		return a.ObjectName
	}

	return filepath.Base(filename)
}

func (a *Archiver) UploadToStorage(ctx context.Context, filename string) error {
	if a.CloudBucketName == "" {
		return fmt.Errorf("no bucket configured for %s", filename)
	}

	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("could not create storage client: %w", err)
	}
	defer client.Close()

	object := client.Bucket(a.CloudBucketName).Object(a.ObjectNameFor(filename))

	operation := func() error {
		return writeObject(ctx, object, filename)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("object", object.ObjectName()).Dur("wait", wait).Msg("Retrying upload")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxUploadAttempts-1), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return fmt.Errorf("failed to write %s to bucket %s: %w", object.ObjectName(), object.BucketName(), err)
	}

	log.Info().Msgf("Written file %s to bucket %s", object.ObjectName(), object.BucketName())

	return nil
}

func writeObject(ctx context.Context, object *storage.ObjectHandle, filename string) error {
	reader, err := os.Open(filename)
	if err != nil {
		return backoff.Permanent(err)
	}
	defer reader.Close()

	writer := object.NewWriter(ctx)

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return err
	}

	return writer.Close()
}
