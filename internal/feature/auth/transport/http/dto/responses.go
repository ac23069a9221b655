package dto

// JwtRes is returned by a successful login.
type JwtRes struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// MessageRes carries a human-readable outcome message.
type MessageRes struct {
	Message string `json:"message"`
}
