package redisutils

import (
	"encoding/json"
	"fmt"

	"github.com/vertex-lab/pathflood/pkg/models"
)

const KeyMailboxPrefix string = "mailbox:"

// KeyMailbox() returns the key of the Redis list that holds the mailbox of node.
func KeyMailbox(node string) string {
	return KeyMailboxPrefix + node
}

// FormatMessage() formats a Message into a string ready to be pushed on a mailbox.
func FormatMessage(msg models.Message) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseMessage() parses a string produced by FormatMessage into a Message.
func ParseMessage(strMsg string) (models.Message, error) {
	var msg models.Message
	if err := json.Unmarshal([]byte(strMsg), &msg); err != nil {
		return models.Message{}, err
	}

	if !msg.Tag.Valid() {
		return models.Message{}, fmt.Errorf("%w: %q", models.ErrInvalidTag, msg.Tag)
	}

	if msg.Receiver == "" {
		return models.Message{}, models.ErrEmptyNodeName
	}
	return msg, nil
}
