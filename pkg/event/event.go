package event

import (
	"context"
	"crypto/ed25519"
)

// ProgramEvent is a structured event emitted by a program during execution
type ProgramEvent interface {
	Name() string
	Marshal() []byte
}

// Emitted is a program event along with the program that emitted it
type Emitted struct {
	Program ed25519.PublicKey
	Event   ProgramEvent
}

// Publisher delivers the events of committed transactions. Publishing is
// fire-and-forget, and never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, txSignature []byte, events ...Emitted)
}

// NoopPublisher drops all events
var NoopPublisher Publisher = &noopPublisher{}

type noopPublisher struct{}

func (*noopPublisher) Publish(_ context.Context, _ []byte, _ ...Emitted) {
}
