package models

import "github.com/roundandgo/sessionkit/enums"

// Principal is the locally cached display record for the signed-in user.
// It is written next to the token at login time and is never consulted for
// authorization decisions.
type Principal struct {
	Type      enums.PrincipalType `json:"type"`
	Email     string              `json:"email,omitempty"`
	UserID    string              `json:"userId,omitempty"`
	Nickname  string              `json:"nickname,omitempty"`
	LoginTime int64               `json:"loginTime,omitempty"`
}
