/*
The cluster package runs every node of a topology in the same process, one
goroutine per node, all sharing one bus. It's the single-process counterpart of
running one node per process on the Redis bus.
*/
package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/vertex-lab/pathflood/pkg/flood"
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/topology"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
	"golang.org/x/sync/errgroup"
)

// Cluster holds the running nodes of a topology.
type Cluster struct {
	topology topology.Topology
	nodes    map[string]*flood.Node
	log      *logger.Aggregate

	group  *errgroup.Group
	cancel context.CancelFunc
}

// Start() creates one node per descriptor on the bus and starts their loops.
// The nodes run until Stop() is called or ctx is done.
func Start(
	ctx context.Context,
	topo topology.Topology,
	bus models.Bus,
	log *logger.Aggregate,
	config flood.NodeConfig) (*Cluster, error) {

	if err := topo.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	for _, edge := range topo.Dangling() {
		log.Warn("cluster: edge %s leads to a node without descriptor, requests sent along it are lost", edge)
	}

	ctx, cancel := context.WithCancel(ctx)
	nodes := make(map[string]*flood.Node, len(topo.Nodes))
	for _, d := range topo.Nodes {
		node, err := flood.NewNode(ctx, d.Name, d.Neighbours, bus, log, config)
		if err != nil {
			cancel()
			return nil, err
		}
		nodes[d.Name] = node
	}

	group, gctx := errgroup.WithContext(ctx)
	for _, node := range nodes {
		group.Go(func() error {
			return node.Run(gctx)
		})
	}

	log.Info("cluster: %d nodes running", len(nodes))
	return &Cluster{
		topology: topo,
		nodes:    nodes,
		log:      log,
		group:    group,
		cancel:   cancel,
	}, nil
}

// Stop() stops every node and waits for their loops to return.
func (c *Cluster) Stop() error {
	c.cancel()
	return c.group.Wait()
}

// Node() returns the node with the specified name.
func (c *Cluster) Node(name string) (*flood.Node, bool) {
	node, exists := c.nodes[name]
	return node, exists
}

// Size() returns the number of nodes in the cluster.
func (c *Cluster) Size() int {
	return len(c.nodes)
}

// Search() runs a search for target initiated by the node from.
func (c *Cluster) Search(ctx context.Context, from, target string) (*flood.Result, error) {
	node, exists := c.nodes[from]
	if !exists {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownNode, from)
	}
	return node.Search(ctx, target)
}

// SearchInitiators() runs, concurrently, the search of every initiator of the
// topology, and returns the results in the order of the initiators' names.
func (c *Cluster) SearchInitiators(ctx context.Context) ([]*flood.Result, error) {
	initiators := c.topology.Initiators()
	if len(initiators) == 0 {
		return nil, ErrNoInitiators
	}

	results := make([]*flood.Result, len(initiators))
	group, gctx := errgroup.WithContext(ctx)
	for i, d := range initiators {
		group.Go(func() error {
			result, err := c.Search(gctx, d.Name, d.Target)
			if err != nil {
				return fmt.Errorf("search of %s: %w", d.Name, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNoInitiators = errors.New("topology has no initiators")
