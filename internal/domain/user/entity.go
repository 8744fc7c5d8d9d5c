package user

// User represents one record of the upstream user list.
// It lives only for the duration of a single render pass.
type User struct {
	ID    int64  `json:"id"`    // ID is the row key; uniqueness is assumed from upstream
	Name  string `json:"name"`  // Name is the display name of the user
	Email string `json:"email"` // Email is the email address of the user
}
