package models

import "time"

// PasswordReset holds the structure for the passwordResets collection in
// mongo. Only the sha256 of the reset token is stored; UsedAt is unset until
// the token is consumed.
type PasswordReset struct {
	UserID    string     `json:"userID" bson:"userID"`
	TokenHash string     `json:"-" bson:"tokenHash"`
	ExpiresAt time.Time  `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty" bson:"usedAt,omitempty"`
}
