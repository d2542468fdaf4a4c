package models

// Roles recognized by the authorization policy. Role is stored as a plain
// string in mongo; nothing outside the policy layer validates it.
const (
	RoleLawyer    = "lawyer"
	RoleJudge     = "judge"
	RoleRegistrar = "registrar"
)

// User holds the structure for the users collection in mongo
type User struct {
	UserID   string `json:"userID" bson:"userID"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Role     string `json:"role" bson:"role"`
	BarID    string `json:"barID,omitempty" bson:"barID,omitempty"`
}

// UserProfile is the client-facing view of a user, without the password hash
type UserProfile struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	BarID  string `json:"barID,omitempty"`
}

// Profile strips the credential fields for responses
func (u User) Profile() UserProfile {
	return UserProfile{
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		BarID:  u.BarID,
	}
}
