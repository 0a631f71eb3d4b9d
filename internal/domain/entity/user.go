// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the persisted credential record. Username and Email are both
// globally unique and either one may be used as a login identifier.
type User struct {
	ID           int64  // Monotonically increasing primary key, also the listing order.
	Username     string // Unique login name.
	Email        string // Unique email address, the alternative login identifier.
	PasswordHash string // bcrypt digest, never the plaintext.
	Firstname    string
	Lastname     string
	Role         Role
	Teacher      *TeacherProfile // Nil unless the user signed up as a teacher and the profile was loaded.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TeacherProfile holds data specific to the "teacher" role.
type TeacherProfile struct {
	ID          int64
	UserID      int64 // Foreign key to User.ID, unique.
	PhoneNumber string
	Institution string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTeacher reports whether a teacher profile is attached to the user.
func (u *User) IsTeacher() bool {
	return u != nil && u.Teacher != nil
}
