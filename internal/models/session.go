package models

// Session is the persisted sign-in record. Its presence under the session
// key is the entire authentication state; IsAdmin is always true when the
// record exists since there is exactly one (admin) account.
type Session struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
