package models

import "errors"

//--------------------------ERROR-CODES--------------------------

// PathRecord errors
var ErrEmptyPath = errors.New("path record has no visited nodes")
var ErrEmptyTarget = errors.New("path record has no target")
var ErrNegativeWeight = errors.New("path record has a negative weight")
var ErrMalformedPath = errors.New("malformed path record")

// Node and topology errors
var ErrEmptyNodeName = errors.New("node name is empty")
var ErrInvalidWeight = errors.New("edge weight must be positive")
var ErrNilBus = errors.New("bus is nil")

// Bus errors
var ErrUnknownNode = errors.New("node is not registered on the bus")
var ErrNodeAlreadyRegistered = errors.New("node already registered on the bus")
var ErrBusClosed = errors.New("bus is closed")
var ErrInvalidTag = errors.New("invalid message tag")

// Search errors
var ErrSearchAborted = errors.New("search aborted before the collection window expired")
