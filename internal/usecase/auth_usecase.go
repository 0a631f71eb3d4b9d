// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"schoolapp/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpTeacherInput is the registration form of a teacher account.
type SignUpTeacherInput struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	Password    string `json:"password" validate:"required,min=8,max=60,password_strength"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Firstname   string `json:"firstname" validate:"required,min=2,max=255"`
	Lastname    string `json:"lastname" validate:"required,min=2,max=255"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=15"`
	Institution string `json:"institution" validate:"required,max=255"`
}

// LoginInput carries an identifier that may be either the username or the email.
type LoginInput struct {
	Identifier string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// UserOutput is the public projection of a user. It never carries the password hash.
type UserOutput struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Firstname string      `json:"firstname"`
	Lastname  string      `json:"lastname"`
	Role      entity.Role `json:"userRole"`
}

// UserTeacherOutput adds the teacher profile to the user projection.
type UserTeacherOutput struct {
	UserOutput
	PhoneNumber string `json:"phoneNumber"`
	Institution string `json:"institution"`
}

// LoginOutput holds the issued session token.
type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// NewUserOutput projects a user entity.
func NewUserOutput(user *entity.User) UserOutput {
	return UserOutput{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Role:      user.Role,
	}
}

// NewUserTeacherOutput projects a user entity with its teacher profile.
func NewUserTeacherOutput(user *entity.User) UserTeacherOutput {
	out := UserTeacherOutput{UserOutput: NewUserOutput(user)}
	if user.IsTeacher() {
		out.PhoneNumber = user.Teacher.PhoneNumber
		out.Institution = user.Teacher.Institution
	}

	return out
}

// AuthUsecase covers registration and credential-based login.
type AuthUsecase interface {
	// SignUpTeacher creates a teacher account and its profile atomically.
	SignUpTeacher(ctx context.Context, input *SignUpTeacherInput) (*UserTeacherOutput, error)

	// Login verifies the credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// VerifyCredentials returns the user matching identifier and password. Unknown
	// identifiers and wrong passwords fail identically.
	VerifyCredentials(ctx context.Context, identifier, password string) (*entity.User, error)

	// IssueSession signs a session token for an already verified user.
	IssueSession(user *entity.User) (*LoginOutput, error)
}
