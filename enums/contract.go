package enums

// Contract selects which revision of the auth backend the client speaks.
// The deployed fleet runs two incompatible find-account flows; callers must
// pick one explicitly instead of the client guessing.
type Contract string

const (
	// ContractCurrent: email-only bodies, /auth/password-reset/* paths.
	ContractCurrent Contract = "current"
	// ContractLegacy: userId-bearing bodies, /auth/find-password/send-email paths.
	ContractLegacy Contract = "legacy"
)
