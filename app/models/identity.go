package models

// Identity is the owner key of a cart: an authenticated user id or an
// anonymous session key, never both. Every ownership check in the app goes
// through this type instead of being re-inlined per endpoint.
type Identity struct {
	UserID     string
	SessionKey string
}

func UserIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

func SessionIdentity(sessionKey string) Identity {
	return Identity{SessionKey: sessionKey}
}

// Valid reports whether exactly one owner key is populated.
func (i Identity) Valid() bool {
	return (i.UserID != "") != (i.SessionKey != "")
}

func (i Identity) IsUser() bool {
	return i.UserID != ""
}
