package flood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vertex-lab/pathflood/pkg/models"
)

/*
Search() makes this node the initiator of a search for target.

It sends the first wave of requests to every neighbour and collects the replies
for the whole collection window: replies never shorten the wait. When the window
expires, the paths with the minimum weight are returned as the winners.
An empty result is a normal outcome, not an error.

A search for the node itself returns the single path [self] with weight zero,
without sending any message.

The node must be running (see Run) for the replies to reach the search.
If ctx is done before the window expires, ErrSearchAborted is returned.
*/
func (n *Node) Search(ctx context.Context, target string) (*Result, error) {
	if target == "" {
		return nil, models.ErrEmptyTarget
	}

	if target == n.name {
		searchesCompleted.WithLabelValues(n.name, outcomeSelfSearch).Inc()
		return &Result{
			Origin:    n.name,
			Target:    target,
			Winners:   []models.PathRecord{models.NewPathRecord(n.name, target, "")},
			Collected: 1,
		}, nil
	}

	searchID := uuid.NewString()
	window, cancel := context.WithTimeout(ctx, n.config.CollectionWindow)
	defer cancel()

	queue := models.ReplyQueue{
		Paths: make(chan models.PathRecord, n.config.ReplyQueueCapacity),
		Done:  window.Done(),
	}
	n.searches.Store(searchID, queue)
	defer n.searches.Delete(searchID)

	collected := make(chan ResultSet, 1)
	go func() {
		collected <- collect(window, queue.Paths)
	}()

	start := time.Now()
	n.seed(ctx, target, searchID)
	n.log.Info("node %s: search %s for %s started, collecting replies for %v", n.name, searchID, target, n.config.CollectionWindow)

	<-window.Done()
	results := <-collected

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSearchAborted, err)
	}

	result := &Result{
		Origin:    n.name,
		Target:    target,
		SearchID:  searchID,
		Winners:   results.Winners(),
		Collected: len(results),
		Window:    n.config.CollectionWindow,
	}

	pathsCollected.Observe(float64(len(results)))
	if result.Found() {
		searchesCompleted.WithLabelValues(n.name, outcomeFound).Inc()
	} else {
		searchesCompleted.WithLabelValues(n.name, outcomeNotFound).Inc()
	}

	n.log.Info("node %s: search %s ended after %v with %d replies, %d winners",
		n.name, searchID, time.Since(start).Round(time.Millisecond), result.Collected, len(result.Winners))
	return result, nil
}

// seed() sends the first wave: one request per neighbour, each already containing
// the edge from this node to that neighbour.
func (n *Node) seed(ctx context.Context, target, searchID string) {
	origin := models.NewPathRecord(n.name, target, searchID)

	for _, neighbour := range n.neighbours.Names() {
		weight, _ := n.neighbours.Weight(neighbour)
		path := origin.Extend(neighbour, weight)
		if err := n.send(ctx, models.TagRequest, neighbour, path); err != nil {
			messagesDropped.WithLabelValues(n.name, reasonSendFailed).Inc()
			n.log.Warn("node %s: request %v to %s lost: %v", n.name, path, neighbour, err)
			continue
		}

		requestsForwarded.WithLabelValues(n.name).Inc()
	}
}

// collect() appends every reply to the result set until the window is done.
// It's the only writer of the result set.
func collect(window context.Context, queue <-chan models.PathRecord) ResultSet {
	var results ResultSet
	for {
		select {
		case <-window.Done():
			return results

		case path := <-queue:
			results = append(results, path)
		}
	}
}
