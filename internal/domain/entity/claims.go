package entity

// ClaimSet is the minimal identity assertion carried by a session token.
// It is derived from a User at issuance time and never mutated afterwards.
type ClaimSet struct {
	SubjectID int64
	Username  string
	Email     string
	Role      Role
}

// NewClaimSet derives the claim set for the given user.
func NewClaimSet(user *User) ClaimSet {
	return ClaimSet{
		SubjectID: user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
	}
}
