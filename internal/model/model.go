package model

// Note is the payload served by the note endpoints.
type Note struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body"`
	Author string `json:"author" validate:"required"`
}

// User is the payload served by the user endpoint.
type User struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Gender    string `json:"gender"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
