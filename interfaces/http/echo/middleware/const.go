package middleware

const (
	Authorization = "Authorization"
	PrincipalKey  = "sessionPrincipal"
	TokenKey      = "requestToken"
)
