package enums

type ErrorKind string

const (
	// ErrKindNetwork: no response from the server at all (DNS, refused, timeout).
	ErrKindNetwork ErrorKind = "network"
	// ErrKindHTTP: the server answered with a non-2xx status.
	ErrKindHTTP ErrorKind = "http"
	// ErrKindMissingToken: 2xx login/signup response without an access token in the body.
	ErrKindMissingToken ErrorKind = "missing_token"
	// ErrKindVerificationIncomplete: the emailed verification link was never followed (401/403 on confirm).
	ErrKindVerificationIncomplete ErrorKind = "verification_incomplete"
	// ErrKindVerificationNotFound: no verification record on the server (404 on confirm).
	ErrKindVerificationNotFound ErrorKind = "verification_not_found"
	// ErrKindInvalidInput: request failed local validation before any network call.
	ErrKindInvalidInput ErrorKind = "invalid_input"
)

type TeardownReason string

const (
	TeardownReasonExplicit  TeardownReason = "explicit_logout"
	TeardownReasonExpired   TeardownReason = "token_expired"
	TeardownReasonMalformed TeardownReason = "token_malformed"
)
