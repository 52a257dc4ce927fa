package flood

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/pathflood/pkg/models"
)

// HandleRequest() answers the request if this node is the target; otherwise it
// forwards an extended copy of the path to every neighbour the path hasn't visited.
// A malformed request is logged and dropped.
func (n *Node) HandleRequest(ctx context.Context, msg models.Message) {
	requestsReceived.WithLabelValues(n.name).Inc()
	n.log.Debug("node %s received from %s: %s", n.name, msg.Sender, msg.Content)

	path, err := models.DecodePath(msg.Content)
	if err != nil {
		messagesDropped.WithLabelValues(n.name, reasonMalformed).Inc()
		n.log.Warn("node %s: dropping request from %s: %v", n.name, msg.Sender, err)
		return
	}

	if path.Target == n.name {
		n.reply(ctx, path)
		return
	}

	n.forward(ctx, path)
}

// reply() sends the terminal path straight to the node that started the search.
func (n *Node) reply(ctx context.Context, path models.PathRecord) {
	origin := path.Origin()
	if err := n.send(ctx, models.TagReply, origin, path); err != nil {
		messagesDropped.WithLabelValues(n.name, reasonSendFailed).Inc()
		n.log.Warn("node %s: reply %v to %s lost: %v", n.name, path, origin, err)
		return
	}

	repliesSent.WithLabelValues(n.name).Inc()
	n.log.Info("target %s found, sending %v to initiator %s", n.name, path, origin)
}

// forward() floods the path to the eligible neighbours. Eligibility only depends
// on the path itself: a node visited by another path can still be reached.
func (n *Node) forward(ctx context.Context, path models.PathRecord) {
	visited := mapset.NewThreadUnsafeSet(path.Visited...)

	for _, neighbour := range n.neighbours.Names() {
		if visited.Contains(neighbour) {
			continue
		}

		weight, _ := n.neighbours.Weight(neighbour)
		next := path.Extend(neighbour, weight)
		if err := n.send(ctx, models.TagRequest, neighbour, next); err != nil {
			messagesDropped.WithLabelValues(n.name, reasonSendFailed).Inc()
			n.log.Warn("node %s: request %v to %s lost: %v", n.name, next, neighbour, err)
			continue
		}

		requestsForwarded.WithLabelValues(n.name).Inc()
	}
}

// HandleReply() hands the path to the search it belongs to, waiting for its collector
// if the reply queue is full. Replies of searches that are no longer running are dropped.
func (n *Node) HandleReply(msg models.Message) {
	path, err := models.DecodePath(msg.Content)
	if err != nil {
		messagesDropped.WithLabelValues(n.name, reasonMalformed).Inc()
		n.log.Warn("node %s: dropping reply from %s: %v", n.name, msg.Sender, err)
		return
	}

	queue, exists := n.searches.Load(path.SearchID)
	if !exists {
		messagesDropped.WithLabelValues(n.name, reasonLateReply).Inc()
		n.log.Warn("node %s: dropping reply %v of search %q: not running", n.name, path, path.SearchID)
		return
	}

	select {
	case queue.Paths <- path:
	case <-queue.Done:
		messagesDropped.WithLabelValues(n.name, reasonLateReply).Inc()
		n.log.Warn("node %s: dropping reply %v of search %s: collection window expired", n.name, path, path.SearchID)
	}
}
