package request

import "time"

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the request body for updating a profile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender"`
}

// RedeemPairCodeRequest is the request body for redeeming a pair code
type RedeemPairCodeRequest struct {
	Code string `json:"code"`
}

// CreateNoteRequest is the request body for creating a shared note
type CreateNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreateSpecialDateRequest is the request body for creating a shared date
type CreateSpecialDateRequest struct {
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}
