package storage

// Collection keys. All store state lives as JSON text under this fixed set.
const (
	KeyFields      = "cropwatch:fields"
	KeyDirectories = "cropwatch:directories"
	KeyResults     = "cropwatch:results"
	KeyHistory     = "cropwatch:history"
)

// Adapter is the durable key/value contract the entity store persists
// through. Get returns ok=false when the key has never been written.
// Implementations wrap backend failures in entities.ErrStorageUnavailable.
type Adapter interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
