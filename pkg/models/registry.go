package models

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// ReplyQueue is where the node loop delivers the replies of one running search.
// Paths is read by the collector of the search until Done is closed.
type ReplyQueue struct {
	Paths chan PathRecord
	Done  <-chan struct{}
}

// SearchRegistry is a concurrent-safe map searchID --> reply queue of the running search.
// The node loop is the only producer of each queue, the collector of the search its only consumer.
type SearchRegistry = *xsync.MapOf[string, ReplyQueue]

// NewSearchRegistry() returns an initialized SearchRegistry
func NewSearchRegistry() SearchRegistry {
	return xsync.NewMapOf[string, ReplyQueue]()
}

// RunningSearches returns the IDs of the searches currently in the registry.
func RunningSearches(SR SearchRegistry) []string {
	if SR == nil {
		return nil
	}

	IDs := make([]string, 0, SR.Size())
	SR.Range(func(key string, _ ReplyQueue) bool {
		IDs = append(IDs, key)
		return true
	})
	return IDs
}
