// Package store provides the local durable key-value persistence used for the
// decision session. The session keeps the property collection and the raw
// weight set under two stable keys.
package store

// Stable storage keys. Persisted shapes under these keys are the JSON
// encodings of record.Property slices and raw weight maps.
const (
	KeyProperties = "home-decision-lab-properties"
	KeyWeights    = "home-decision-lab-weights"
)

// Store is a simple get/set key-value collaborator. Load returns nil (not an
// error) when the key has never been written.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}
