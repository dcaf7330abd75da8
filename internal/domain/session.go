package domain

// Identity describes the authenticated user as returned by the auth
// service. Absent when the session is anonymous.
type Identity struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Session pairs an opaque bearer credential with the identity it proves.
// Both are set together on login/signup and cleared together on logout or
// credential rejection.
type Session struct {
	Credential string   `json:"credential"`
	Identity   Identity `json:"identity"`
}
