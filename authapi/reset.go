package authapi

import (
	"context"
	"errors"

	"github.com/roundandgo/sessionkit/enums"
	"github.com/roundandgo/sessionkit/models"
)

// ErrResetState is returned when a flow step is called out of order.
var ErrResetState = errors.New("authapi: password-reset step called out of order")

// ResetFlow is the explicit state machine around the three-step password
// reset. The client advances optimistically after the verification mail is
// sent; whether the user actually followed the link is only learned at
// confirm time, when the server rejects with 401/403/404 and the flow drops
// back to its request step.
//
//	Requesting -> AwaitingEmailClick -> ResettingPassword -> Done
//	     ^______________________________________|   (restartable failure)
type ResetFlow struct {
	client *Client
	state  enums.ResetState
}

func NewResetFlow(client *Client) *ResetFlow {
	return &ResetFlow{client: client, state: enums.ResetStateRequesting}
}

func (f *ResetFlow) State() enums.ResetState {
	return f.state
}

// Request sends the verification mail. Allowed from the request step and
// from AwaitingEmailClick (the user asking for the mail again).
func (f *ResetFlow) Request(ctx context.Context, req ResetRequest) error {
	if f.state != enums.ResetStateRequesting && f.state != enums.ResetStateAwaitingEmailClick {
		return ErrResetState
	}
	if err := f.client.RequestPasswordReset(ctx, req); err != nil {
		return err
	}
	f.state = enums.ResetStateAwaitingEmailClick
	return nil
}

// Confirm submits the new password. On a restartable failure the flow moves
// back to Requesting and the error is returned for display; on success the
// flow is Done.
func (f *ResetFlow) Confirm(ctx context.Context, req ResetConfirm) error {
	if f.state != enums.ResetStateAwaitingEmailClick && f.state != enums.ResetStateResettingPassword {
		return ErrResetState
	}
	f.state = enums.ResetStateResettingPassword

	err := f.client.ConfirmPasswordReset(ctx, req)
	if err != nil {
		var authErr *models.AuthError
		if errors.As(err, &authErr) && authErr.Restartable() {
			f.state = enums.ResetStateRequesting
		}
		return err
	}

	f.state = enums.ResetStateDone
	return nil
}
