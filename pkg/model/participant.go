package model

// Participant is the user-service record for a group member. Only the ID is
// kept by the scheduling engine; the rest is returned to help callers render
// validation errors.
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
}
