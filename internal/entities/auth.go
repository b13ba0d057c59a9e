package entities

import "time"

// RegisterRequest carries the signup form fields.
type RegisterRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// SessionResponse is returned on a successful login.
type SessionResponse struct {
	Token      string    `json:"token"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ProfileResponse renders the signed-in employee's profile.
type ProfileResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// UpdateProfileRequest carries the profile form. Nil fields are left as-is.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
