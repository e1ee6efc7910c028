package common

// Fixed keys of the durable session record in the local store. Either both
// are present and well-formed, or the record is treated as absent.
const (
	TokenStorageKey = "auth_token"
	UserStorageKey  = "auth_user"
)

// AuthorizationHeader carries the bearer token on outbound requests.
const AuthorizationHeader = "Authorization"
