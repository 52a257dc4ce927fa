package flood

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vertex-lab/pathflood/pkg/bus/local"
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
)

type edge struct {
	from, to string
	weight   int
}

// undirected() returns the neighbour tables of the graph with the specified edges.
func undirected(edges ...edge) map[string]models.NeighbourTable {
	tables := make(map[string]models.NeighbourTable)
	add := func(from, to string, weight int) {
		if _, exists := tables[from]; !exists {
			tables[from] = models.NeighbourTable{}
		}
		tables[from][to] = weight
	}

	for _, e := range edges {
		add(e.from, e.to, e.weight)
		add(e.to, e.from, e.weight)
	}
	return tables
}

func testConfig(window time.Duration) NodeConfig {
	config := NewNodeConfig()
	config.CollectionWindow = window
	return config
}

// startNodes() creates and runs one node per table on the bus. The nodes are
// stopped when the test ends.
func startNodes(t *testing.T, bus models.Bus, tables map[string]models.NeighbourTable, config NodeConfig) map[string]*Node {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	nodes := make(map[string]*Node, len(tables))
	for name, table := range tables {
		node, err := NewNode(ctx, name, table, bus, logger.Discard(), config)
		if err != nil {
			cancel()
			t.Fatalf("NewNode(%s): expected nil, got %v", name, err)
		}
		nodes[name] = node
	}

	var wg sync.WaitGroup
	for _, node := range nodes {
		wg.Add(1)
		go func(node *Node) {
			defer wg.Done()
			node.Run(ctx)
		}(node)
	}

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	return nodes
}

// recordingBus wraps a local bus and records every message that was sent successfully.
type recordingBus struct {
	*local.Bus
	mu   sync.Mutex
	sent []models.Message
}

func (b *recordingBus) Send(ctx context.Context, msg models.Message) error {
	if err := b.Bus.Send(ctx, msg); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, msg)
	return nil
}

func (b *recordingBus) Sent() []models.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Message(nil), b.sent...)
}

// visitedOf() returns the visited sequences of the paths.
func visitedOf(paths []models.PathRecord) [][]string {
	visited := make([][]string, len(paths))
	for i, path := range paths {
		visited[i] = path.Visited
	}
	return visited
}
