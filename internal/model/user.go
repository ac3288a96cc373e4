package model

// User is an author known to the API.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnknownUserName is shown when a referenced user is not loaded.
const UnknownUserName = "Unknown User"
