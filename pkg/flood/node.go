/*
The flood package implements the flooding search protocol.

Every graph node runs a Node actor that reads its own mailbox one message at a time.
A search REQUEST is either answered, when the node is the target, or forwarded to every
neighbour that the request hasn't visited yet. The node that starts a search seeds the
first wave, collects the AGREE replies for a fixed window, and reports the paths with the
minimum weight.
*/
package flood

import (
	"context"
	"fmt"

	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
)

// Node is the actor of a single graph node. It only knows its neighbours.
type Node struct {
	name       string
	neighbours models.NeighbourTable
	bus        models.Bus
	log        *logger.Aggregate
	config     NodeConfig

	mailbox  <-chan models.Message
	searches models.SearchRegistry
}

// NewNode() validates the inputs and registers the mailbox of the node on the bus.
// The ctx bounds the lifetime of the mailbox.
func NewNode(
	ctx context.Context,
	name string,
	neighbours models.NeighbourTable,
	bus models.Bus,
	log *logger.Aggregate,
	config NodeConfig) (*Node, error) {

	if name == "" {
		return nil, models.ErrEmptyNodeName
	}

	if bus == nil {
		return nil, models.ErrNilBus
	}

	if err := neighbours.Validate(); err != nil {
		return nil, fmt.Errorf("node %s: %w", name, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("node %s: %w", name, err)
	}

	if log == nil {
		log = logger.Discard()
	}

	mailbox, err := bus.Register(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", name, err)
	}

	return &Node{
		name:       name,
		neighbours: neighbours.Clone(),
		bus:        bus,
		log:        log,
		config:     config,
		mailbox:    mailbox,
		searches:   models.NewSearchRegistry(),
	}, nil
}

// Name() returns the name of the node.
func (n *Node) Name() string {
	return n.name
}

// Run() processes the mailbox one message at a time until the context is done
// or the mailbox is closed by the bus. Errors on single messages are logged,
// never returned.
func (n *Node) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if running := models.RunningSearches(n.searches); len(running) > 0 {
				n.log.Warn("node %s: stopping while searches %v are running", n.name, running)
			}
			n.log.Debug("node %s: stopping", n.name)
			return nil

		case msg, ok := <-n.mailbox:
			if !ok {
				n.log.Warn("node %s: mailbox closed, stopping", n.name)
				return nil
			}

			n.dispatch(ctx, msg)
		}
	}
}

// dispatch() routes msg to the relay logic or to the search waiting for it.
func (n *Node) dispatch(ctx context.Context, msg models.Message) {
	switch msg.Tag {
	case models.TagRequest:
		n.HandleRequest(ctx, msg)

	case models.TagReply:
		n.HandleReply(msg)

	default:
		messagesDropped.WithLabelValues(n.name, reasonInvalidTag).Inc()
		n.log.Warn("node %s: dropping message from %s: %v %q", n.name, msg.Sender, models.ErrInvalidTag, msg.Tag)
	}
}

// send() encodes path and sends it to receiver with the specified tag.
func (n *Node) send(ctx context.Context, tag models.Tag, receiver string, path models.PathRecord) error {
	msg, err := models.NewMessage(tag, n.name, receiver, path)
	if err != nil {
		return err
	}
	return n.bus.Send(ctx, msg)
}
