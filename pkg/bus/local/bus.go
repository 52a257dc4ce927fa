// The local package defines an in-process Bus that fulfills the Bus interface in models.
// Every mailbox is an unbounded queue drained by its own goroutine: sends never block
// and never drop a message addressed to a registered node.
package local

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/pathflood/pkg/models"
)

// DefaultMailboxCapacity is the buffer of the channel a node reads from.
// Messages beyond it wait in the queue of the mailbox.
const DefaultMailboxCapacity int = 1024

// Bus fulfills the Bus interface defined in models
type Bus struct {
	mailboxes *xsync.MapOf[string, *mailbox]
	capacity  int
	closed    atomic.Bool
	done      chan struct{}
	pumps     sync.WaitGroup

	// counters of delivered messages, and of messages addressed to unknown nodes
	Sent    *xsync.Counter
	Dropped *xsync.Counter
}

// mailbox queues the messages of one node until its pump hands them to the out channel.
type mailbox struct {
	mu     sync.Mutex
	queue  []models.Message
	notify chan struct{}
	out    chan models.Message
}

// NewBus() returns a Bus whose mailboxes hand messages to their nodes through
// channels of the specified capacity.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultMailboxCapacity
	}

	return &Bus{
		mailboxes: xsync.NewMapOf[string, *mailbox](),
		capacity:  capacity,
		done:      make(chan struct{}),
		Sent:      xsync.NewCounter(),
		Dropped:   xsync.NewCounter(),
	}
}

// Register() creates the mailbox of node and starts pumping it until ctx is done
// or the bus is closed.
func (b *Bus) Register(ctx context.Context, node string) (<-chan models.Message, error) {
	if b.closed.Load() {
		return nil, models.ErrBusClosed
	}

	if node == "" {
		return nil, models.ErrEmptyNodeName
	}

	box := &mailbox{
		notify: make(chan struct{}, 1),
		out:    make(chan models.Message, b.capacity),
	}

	if _, loaded := b.mailboxes.LoadOrStore(node, box); loaded {
		return nil, models.ErrNodeAlreadyRegistered
	}

	b.pumps.Add(1)
	go b.pump(ctx, box)
	return box.out, nil
}

// pump() moves the queued messages to the out channel, in order.
func (b *Bus) pump(ctx context.Context, box *mailbox) {
	defer b.pumps.Done()

	for {
		msg, ok := box.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-b.done:
				return
			case <-box.notify:
				continue
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-b.done:
			return
		case box.out <- msg:
		}
	}
}

func (box *mailbox) push(msg models.Message) {
	box.mu.Lock()
	box.queue = append(box.queue, msg)
	box.mu.Unlock()

	select {
	case box.notify <- struct{}{}:
	default:
		// a wake-up is already pending
	}
}

func (box *mailbox) pop() (models.Message, bool) {
	box.mu.Lock()
	defer box.mu.Unlock()

	if len(box.queue) == 0 {
		return models.Message{}, false
	}

	msg := box.queue[0]
	box.queue[0] = models.Message{}
	box.queue = box.queue[1:]
	return msg, true
}

// Send() queues msg in the mailbox of msg.Receiver without waiting for it to be read.
func (b *Bus) Send(ctx context.Context, msg models.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if b.closed.Load() {
		return models.ErrBusClosed
	}

	box, exists := b.mailboxes.Load(msg.Receiver)
	if !exists {
		b.Dropped.Inc()
		return models.ErrUnknownNode
	}

	box.push(msg)
	b.Sent.Inc()
	return nil
}

// Close() makes every following Send fail and stops the pumps. The out channels
// are not closed; node loops stop with their context.
func (b *Bus) Close() error {
	if b.closed.CompareAndSwap(false, true) {
		close(b.done)
	}

	b.pumps.Wait()
	return nil
}
