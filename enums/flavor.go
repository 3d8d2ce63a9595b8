package enums

type Flavor string

const (
	FlavorGeneric Flavor = "generic" // legacy session namespace (authToken/accessToken keys)
	FlavorEmail   Flavor = "email"   // email-registration namespace (emailAuthToken keys)
)

type PrincipalType string

const (
	PrincipalTypeEmail  PrincipalType = "email"
	PrincipalTypeSocial PrincipalType = "social"
)
