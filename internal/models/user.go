package models

import "time"

type User struct {
	ID               int64     `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	FullName         string    `db:"full_name" json:"fullName"`
	ProfilePicture   string    `db:"profile_picture" json:"profilePicture"`
	Bio              string    `db:"bio" json:"bio"`
	NativeLanguage   string    `db:"native_language" json:"nativeLanguage"`
	LearningLanguage string    `db:"learning_language" json:"learningLanguage"`
	Location         string    `db:"location" json:"location"`
	IsOnboarded      bool      `db:"is_onboarded" json:"isOnboarded"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// FriendProfile is the projection returned for friends and request
// participants: id plus public profile fields only.
type FriendProfile struct {
	ID               int64  `db:"id" json:"id"`
	FullName         string `db:"full_name" json:"fullName"`
	ProfilePicture   string `db:"profile_picture" json:"profilePicture"`
	NativeLanguage   string `db:"native_language" json:"nativeLanguage"`
	LearningLanguage string `db:"learning_language" json:"learningLanguage"`
}

// OnboardingProfile carries the profile fields set when a user completes
// onboarding.
type OnboardingProfile struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}
