package storage

// Provider is a whole-value read/write interface over a durable key-value
// store. Values are full JSON-encoded collections; a write always replaces
// the previous value for its key.
//
// Concurrency note:
//   - A Provider is not safe for concurrent use by multiple goroutines
//     without external synchronization; the owning store serializes access.
//   - Running multiple momentum processes against the same storage path at
//     the same time is not supported and may lead to data loss.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Read returns the stored value for key. ok is false (with a nil
	// error) when the key has never been written; errors are reserved for
	// underlying I/O faults.
	Read(key string) (value string, ok bool, err error)
	// Write durably replaces the value stored under key.
	Write(key, value string) error

	// Utils
	GetConfigPath() string
}
