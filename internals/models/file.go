package models

// FileRef identifies one object in storage. It is a value, not a resource:
// together Bucket and Key uniquely identify the bytes to fetch.
type FileRef struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}
