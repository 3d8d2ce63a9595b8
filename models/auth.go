package models

import (
	"fmt"

	"github.com/roundandgo/sessionkit/enums"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required"`
}

// LoginResponse is the wire shape of a successful POST /auth/login.
type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	User         *Principal `json:"user,omitempty"`
}

// AuthError is the failure result of every remote auth operation. It is a
// value returned to the caller, not something thrown through it.
type AuthError struct {
	Kind    enums.ErrorKind
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("auth: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("auth: %s: %s", e.Kind, e.Message)
}

// Restartable reports whether the error means the password-reset flow must
// return to its request step rather than surface a fatal failure.
func (e *AuthError) Restartable() bool {
	return e.Kind == enums.ErrKindVerificationIncomplete || e.Kind == enums.ErrKindVerificationNotFound
}
