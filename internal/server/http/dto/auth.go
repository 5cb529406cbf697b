package dto

// AuthRequest describes registration and login payload. Role is only
// honored on registration and defaults to manager.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
