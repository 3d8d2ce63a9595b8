package events

import (
	"context"

	"github.com/roundandgo/sessionkit/enums"
)

type Kind string

const (
	KindLogin    Kind = "session.login"
	KindTeardown Kind = "session.teardown"
)

// Event is one session lifecycle change, published for audit consumers.
type Event struct {
	Kind    Kind                 `json:"kind"`
	Flavor  enums.Flavor         `json:"flavor"`
	Subject string               `json:"subject,omitempty"`
	At      int64                `json:"at"`
	Reason  enums.TeardownReason `json:"reason,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
