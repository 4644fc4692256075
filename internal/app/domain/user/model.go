package user

// User is a registered credential record. PasswordHash never leaves the
// backend.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
