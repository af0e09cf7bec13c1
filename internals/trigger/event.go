package trigger

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/objectflow/ingester/internals/models"
)

// storageEvent mirrors the subset of the S3 notification payload the poller
// needs. Everything else in the event is ignored.
type storageEvent struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// decodeEvent extracts the file references of a notification body. Records
// missing a bucket or key are skipped, not fatal: one malformed record must
// not block the rest of the batch.
func decodeEvent(body string) ([]models.FileRef, error) {
	var event storageEvent
	if err := jsoniter.UnmarshalFromString(body, &event); err != nil {
		return nil, errors.Wrap(err, "decode storage event")
	}

	files := make([]models.FileRef, 0, len(event.Records))
	for _, record := range event.Records {
		if record.S3.Bucket.Name == "" || record.S3.Object.Key == "" {
			continue
		}
		files = append(files, models.FileRef{Bucket: record.S3.Bucket.Name, Key: record.S3.Object.Key})
	}
	return files, nil
}
