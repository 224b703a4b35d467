package auth

// User is the signed-in account as the backend reports it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials carries the sign-in / sign-up form fields. Name is only used
// for sign-up.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what a successful login/register returns: the user plus the
// bearer token that outlives the process.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
