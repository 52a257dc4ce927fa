// The redisbus package defines a Redis Bus that fulfills the Bus interface in models.
// Each node owns a Redis list "mailbox:<node>": senders RPUSH, the owner BLPOPs.
package redisbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/pathflood/pkg/models"
	"github.com/vertex-lab/pathflood/pkg/utils/logger"
	"github.com/vertex-lab/pathflood/pkg/utils/redisutils"
)

// Config holds the parameters of the Redis bus.
type Config struct {
	Addr            string
	DB              int
	PollTimeout     time.Duration
	RetryInterval   time.Duration
	MailboxCapacity int
}

func NewConfig() Config {
	return Config{
		Addr:            redisutils.DefaultProdAddr,
		DB:              0,
		PollTimeout:     time.Second,
		RetryInterval:   500 * time.Millisecond,
		MailboxCapacity: 1024,
	}
}

func (c Config) Print() {
	fmt.Println("Redis:")
	fmt.Printf("  Addr: %s\n", c.Addr)
	fmt.Printf("  DB: %d\n", c.DB)
	fmt.Printf("  PollTimeout: %v\n", c.PollTimeout)
	fmt.Printf("  RetryInterval: %v\n", c.RetryInterval)
	fmt.Printf("  MailboxCapacity: %d\n", c.MailboxCapacity)
}

// Bus fulfills the Bus interface defined in models
type Bus struct {
	client     *redis.Client
	log        *logger.Aggregate
	config     Config
	registered *xsync.MapOf[string, struct{}]
	closed     atomic.Bool
	done       chan struct{}
	pumps      sync.WaitGroup
}

// NewBus() returns a Bus that uses the provided Redis client.
// The client is owned by the caller, which is responsible for closing it.
func NewBus(cl *redis.Client, log *logger.Aggregate, config Config) (*Bus, error) {
	if cl == nil {
		return nil, ErrNilClientPointer
	}

	if log == nil {
		log = logger.Discard()
	}

	if config.PollTimeout <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPollTimeout, config.PollTimeout)
	}

	if config.MailboxCapacity <= 0 {
		config.MailboxCapacity = 1
	}

	return &Bus{
		client:     cl,
		log:        log,
		config:     config,
		registered: xsync.NewMapOf[string, struct{}](),
		done:       make(chan struct{}),
	}, nil
}

// Register() clears any stale message left in the mailbox of node by a previous
// run, and starts pumping the mailbox into the returned channel until ctx is done.
func (b *Bus) Register(ctx context.Context, node string) (<-chan models.Message, error) {
	if b.closed.Load() {
		return nil, models.ErrBusClosed
	}

	if node == "" {
		return nil, models.ErrEmptyNodeName
	}

	if _, loaded := b.registered.LoadOrStore(node, struct{}{}); loaded {
		return nil, models.ErrNodeAlreadyRegistered
	}

	if err := b.client.Del(ctx, redisutils.KeyMailbox(node)).Err(); err != nil {
		b.registered.Delete(node)
		return nil, fmt.Errorf("failed to clear the mailbox of %s: %w", node, err)
	}

	mailbox := make(chan models.Message, b.config.MailboxCapacity)
	b.pumps.Add(1)
	go b.pump(ctx, node, mailbox)
	return mailbox, nil
}

// pump() moves messages from the Redis list of node to the mailbox channel.
// Malformed envelopes are logged and dropped. The mailbox is closed on return.
func (b *Bus) pump(ctx context.Context, node string, mailbox chan<- models.Message) {
	defer b.pumps.Done()
	defer close(mailbox)

	key := redisutils.KeyMailbox(node)
	for {
		if ctx.Err() != nil || b.closed.Load() {
			return
		}

		res, err := b.client.BLPop(ctx, b.config.PollTimeout, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue

		case errors.Is(err, redis.ErrClosed):
			return

		case err != nil:
			if ctx.Err() != nil {
				return
			}

			b.log.Error("redisbus: BLPOP on %s: %v", key, err)
			select {
			case <-ctx.Done():
				return
			case <-b.done:
				return
			case <-time.After(b.config.RetryInterval):
			}
			continue
		}

		// res is the pair {key, value}
		if len(res) != 2 {
			b.log.Warn("redisbus: unexpected BLPOP result %v", res)
			continue
		}

		msg, err := redisutils.ParseMessage(res[1])
		if err != nil {
			b.log.Warn("redisbus: dropping malformed envelope on %s: %v", key, err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-b.done:
			return
		case mailbox <- msg:
		}
	}
}

// Send() pushes msg at the end of the Redis list of msg.Receiver.
func (b *Bus) Send(ctx context.Context, msg models.Message) error {
	if b.closed.Load() {
		return models.ErrBusClosed
	}

	if msg.Receiver == "" {
		return models.ErrEmptyNodeName
	}

	strMsg, err := redisutils.FormatMessage(msg)
	if err != nil {
		return err
	}

	return b.client.RPush(ctx, redisutils.KeyMailbox(msg.Receiver), strMsg).Err()
}

// Close() stops accepting sends and waits for the pumps to return, which takes
// at most one PollTimeout, even if the nodes stopped reading their mailboxes.
func (b *Bus) Close() error {
	if b.closed.CompareAndSwap(false, true) {
		close(b.done)
	}
	b.pumps.Wait()
	return nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNilClientPointer = errors.New("nil redis client pointer")
var ErrInvalidPollTimeout = errors.New("poll timeout must be positive")
