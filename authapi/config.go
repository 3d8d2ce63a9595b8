package authapi

import (
	"time"

	"github.com/roundandgo/sessionkit/enums"
)

const (
	// defaultTimeout bounds every auth call. The browser clients never set
	// one; a hung login there just spun forever.
	defaultTimeout = 15 * time.Second

	verificationRetries   = 2
	verificationRetryStep = time.Second
)

type Config struct {
	// BaseURL of the auth backend, e.g. "https://api.roundandgo.shop".
	BaseURL string
	// Timeout per request. Zero means defaultTimeout.
	Timeout time.Duration
	// Contract picks the backend revision for the find-account flows.
	// Zero value is ContractCurrent.
	Contract enums.Contract
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c Config) legacy() bool {
	return c.Contract == enums.ContractLegacy
}
