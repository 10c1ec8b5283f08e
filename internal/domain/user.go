package domain

import "time"

// User represents a registered member of the platform.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Age          int
	Gender       string
	About        string
	Skills       []string
	ProfilePic   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MaxSkills bounds how many skills a profile may list.
const MaxSkills = 10
