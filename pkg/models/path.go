/*
The models package defines the fundamental structures and interfaces used in this project.

PathRecord:
A PathRecord is one route attempt of a search. It is created by the initiator, grows by
one node at every forward and becomes terminal when the target replies with it.

Bus:
The Bus interface abstracts the delivery of addressed messages between node actors,
allowing for multiple implementations (in-process channels, Redis lists).
*/
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PathRecord is the payload of search requests and replies.
type PathRecord struct {
	// the ordered sequence of visited nodes. Visited[0] is the node that started the search
	Visited []string `json:"visited"`

	// the sum of the edge weights of consecutive pairs in Visited
	Weight int `json:"weight"`

	// the name of the node being searched for
	Target string `json:"target"`

	// the search the record belongs to. Replies are matched to searches by this ID.
	SearchID string `json:"search_id,omitempty"`
}

// NewPathRecord() returns a record that contains only the origin node, with weight zero.
func NewPathRecord(origin, target, searchID string) PathRecord {
	return PathRecord{
		Visited:  []string{origin},
		Weight:   0,
		Target:   target,
		SearchID: searchID,
	}
}

// Origin() returns the node that started the search, or "" if the record is empty.
func (p PathRecord) Origin() string {
	if len(p.Visited) == 0 {
		return ""
	}
	return p.Visited[0]
}

// Last() returns the last visited node, or "" if the record is empty.
func (p PathRecord) Last() string {
	if len(p.Visited) == 0 {
		return ""
	}
	return p.Visited[len(p.Visited)-1]
}

// Extend() returns a copy of the record with node appended to Visited and weight added.
// The receiver is never modified, so the copies sent to different neighbours share nothing.
func (p PathRecord) Extend(node string, weight int) PathRecord {
	visited := make([]string, len(p.Visited), len(p.Visited)+1)
	copy(visited, p.Visited)

	return PathRecord{
		Visited:  append(visited, node),
		Weight:   p.Weight + weight,
		Target:   p.Target,
		SearchID: p.SearchID,
	}
}

// Validate() returns the appropriate error if the record can't be part of a search.
func (p PathRecord) Validate() error {
	if len(p.Visited) == 0 {
		return ErrEmptyPath
	}

	if p.Weight < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWeight, p.Weight)
	}

	if p.Target == "" {
		return ErrEmptyTarget
	}

	for _, node := range p.Visited {
		if node == "" {
			return ErrEmptyNodeName
		}
	}
	return nil
}

// String() returns the path in the form "[A B C] (weight 2)".
func (p PathRecord) String() string {
	return fmt.Sprintf("[%s] (weight %d)", strings.Join(p.Visited, " "), p.Weight)
}

// EncodePath() serializes the record into the payload carried by a Message.
func EncodePath(p PathRecord) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode the path record: %w", err)
	}
	return data, nil
}

// DecodePath() parses and validates a payload produced by EncodePath.
// Any failure is reported as ErrMalformedPath.
func DecodePath(data []byte) (PathRecord, error) {
	var p PathRecord
	if err := json.Unmarshal(data, &p); err != nil {
		return PathRecord{}, fmt.Errorf("%w: %v", ErrMalformedPath, err)
	}

	if err := p.Validate(); err != nil {
		return PathRecord{}, fmt.Errorf("%w: %v", ErrMalformedPath, err)
	}
	return p, nil
}
