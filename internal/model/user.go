package model

import "time"

// User represents an account stored on the server. Password material is
// never serialized to clients.
type User struct {
	ID            string
	Email         string
	DisplayName   string
	PasswordHash  []byte
	PasswordSalt  []byte
	CurrentStreak int
	LongestStreak int
	LastCheckIn   time.Time
}

// TokenPair bundles a short-lived access token and a long-lived, single-use
// refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access token TTL, seconds
	IssuedAt     string `json:"issuedAt"`  // UTC RFC3339
}
