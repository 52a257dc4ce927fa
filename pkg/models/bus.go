package models

import (
	"context"
	"fmt"
)

// Tag identifies the kind of a Message, like a performative of an agent message.
type Tag string

const (
	TagRequest Tag = "REQUEST"
	TagReply   Tag = "AGREE"
)

// Valid() returns whether the tag is one of the known tags.
func (t Tag) Valid() bool {
	return t == TagRequest || t == TagReply
}

// Message is the unit delivered by the Bus. Content is an encoded PathRecord.
type Message struct {
	Tag      Tag    `json:"tag"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  []byte `json:"content"`
}

// NewMessage() encodes the path and returns the message addressed to receiver.
func NewMessage(tag Tag, sender, receiver string, path PathRecord) (Message, error) {
	content, err := EncodePath(path)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Tag:      tag,
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
	}, nil
}

func (m Message) String() string {
	return fmt.Sprintf("%s %s->%s %s", m.Tag, m.Sender, m.Receiver, m.Content)
}

// The Bus interface abstracts the point-to-point delivery of messages between node actors.
// Ordering is only meaningful between a fixed sender and receiver, and a message may be lost.
type Bus interface {
	// Register() creates the inbound mailbox of node and returns it.
	// Each node can be registered only once.
	Register(ctx context.Context, node string) (<-chan Message, error)

	// Send() delivers msg to the mailbox of msg.Receiver, without waiting for it to be processed.
	Send(ctx context.Context, msg Message) error

	// Close() releases the resources of the bus. Sends after Close fail.
	Close() error
}
