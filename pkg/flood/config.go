package flood

import (
	"fmt"
	"time"
)

const DefaultCollectionWindow = 2000 * time.Millisecond

// NodeConfig holds the parameters shared by every node actor.
type NodeConfig struct {
	// how long the initiator collects replies before aggregating them
	CollectionWindow time.Duration

	// capacity of the reply queue of each running search. When it's full the node
	// loop waits for the collector, until the window expires.
	ReplyQueueCapacity int
}

func NewNodeConfig() NodeConfig {
	return NodeConfig{
		CollectionWindow:   DefaultCollectionWindow,
		ReplyQueueCapacity: 1024,
	}
}

func (c NodeConfig) Validate() error {
	if c.CollectionWindow <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, c.CollectionWindow)
	}

	if c.ReplyQueueCapacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQueueCapacity, c.ReplyQueueCapacity)
	}
	return nil
}

func (c NodeConfig) Print() {
	fmt.Println("Node:")
	fmt.Printf("  CollectionWindow: %v\n", c.CollectionWindow)
	fmt.Printf("  ReplyQueueCapacity: %d\n", c.ReplyQueueCapacity)
}
