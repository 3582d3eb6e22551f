package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	School   string `json:"school"`
	Gender   string `json:"gender"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Document string `json:"document"`
}

// LogoutRequest is the request body for revoking a session token
type LogoutRequest struct {
	Token string `json:"token"`
}

// CompleteLevelRequest is the request body for completing a level
type CompleteLevelRequest struct {
	CoinsEarned      int64 `json:"coins_earned"`
	TimeSpentSeconds int64 `json:"time_spent"`
}

// UpdateMeRequest is the request body for partially updating the caller's
// profile. Absent fields are left unchanged.
type UpdateMeRequest struct {
	Name   *string `json:"name,omitempty"`
	School *string `json:"school,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Money  *string `json:"money,omitempty"`
	Level  *int    `json:"level,omitempty"`
}
