package enums

type ResetState string

const (
	ResetStateRequesting         ResetState = "requesting"           // collecting the address, nothing sent yet
	ResetStateAwaitingEmailClick ResetState = "awaiting_email_click" // verification mail sent, server owns step two
	ResetStateResettingPassword  ResetState = "resetting_password"   // user came back with a new password
	ResetStateDone               ResetState = "done"
)
