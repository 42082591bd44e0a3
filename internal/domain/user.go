package domain

import (
	"context"
	"time"
)

type User struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Password        string     `json:"-"` // bcrypt hash, never serialized
	Name            string     `json:"name"`
	Bio             string     `json:"bio"`
	ProfileImageURL string     `json:"profile_image_url"`
	Portfolio       string     `json:"portfolio"`
	Phone           string     `json:"phone"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}

// UserSummary is the public view of a user, used in follower lists,
// search results and recruit author fields.
type UserSummary struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// Career/Education/Activity/Certification/Skill are the profile child
// collections. Dates are stored as "YYYY-MM" strings; an empty EndDate
// means ongoing.
type Career struct {
	ID          int64  `json:"id"`
	Company     string `json:"company" validate:"required,max=100"`
	Position    string `json:"position" validate:"max=100"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date"`
	Description string `json:"description" validate:"max=500"`
}

type Education struct {
	ID        int64  `json:"id"`
	School    string `json:"school" validate:"required,max=100"`
	Major     string `json:"major" validate:"max=100"`
	Degree    string `json:"degree" validate:"max=50"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Activity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Certification struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required,max=100"`
	Issuer   string `json:"issuer" validate:"max=100"`
	IssuedAt string `json:"issued_at"`
}

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=50"`
}

// UserProfile is the full profile view: base user fields, child
// collections, and follow aggregates computed from the edge set.
type UserProfile struct {
	User           User            `json:"user"`
	Careers        []Career        `json:"careers"`
	Educations     []Education     `json:"educations"`
	Activities     []Activity      `json:"activities"`
	Certifications []Certification `json:"certifications"`
	Skills         []Skill         `json:"skills"`
	FollowerCount  int64           `json:"follower_count"`
	FollowingCount int64           `json:"following_count"`
	IsFollowing    bool            `json:"is_following"`
}

// ProfileUpdateRequest carries the editable profile fields. A nil child
// collection means "keep as is"; a non-nil (possibly empty) slice replaces
// the stored collection wholesale.
type ProfileUpdateRequest struct {
	Name            string           `json:"name" validate:"required,max=50"`
	Bio             string           `json:"bio" validate:"max=500"`
	ProfileImageURL string           `json:"profile_image_url" validate:"omitempty,url"`
	Portfolio       string           `json:"portfolio" validate:"omitempty,url"`
	Phone           string           `json:"phone" validate:"omitempty,valid_phone"`
	Email           string           `json:"email" validate:"omitempty,email"`
	Careers         []Career         `json:"careers"`
	Educations      []Education      `json:"educations"`
	Activities      []Activity       `json:"activities"`
	Certifications  []Certification  `json:"certifications"`
	Skills          []Skill          `json:"skills"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByUsername returns (nil, nil) when no live user has the username.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetProfileByUsername(ctx context.Context, username string) (*UserProfile, error)
	// UpdateProfile applies base fields and replaces the provided child
	// collections in a single transaction.
	UpdateProfile(ctx context.Context, userID int64, req *ProfileUpdateRequest) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Search(ctx context.Context, query string, excludeUserID int64) ([]UserSummary, error)
	SoftDelete(ctx context.Context, id int64) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, targetUsername string, viewerID int64) (*UserProfile, error)
	UpdateFullProfile(ctx context.Context, username string, actorID int64, req *ProfileUpdateRequest) (*UserProfile, error)
	ChangePassword(ctx context.Context, username string, actorID int64, req *PasswordChangeRequest) error
	SearchUsers(ctx context.Context, query string, excludeUserID int64) ([]UserSummary, error)
	DeleteAccount(ctx context.Context, username string, actorID int64) error
}
