package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"streamify/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, fullName, profilePicture string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListRecommended(ctx context.Context, userID int64) ([]models.User, error)
	CompleteOnboarding(ctx context.Context, id int64, profile models.OnboardingProfile) (*models.User, error)
	ListFriends(ctx context.Context, userID int64) ([]models.FriendProfile, error)
	AreFriends(ctx context.Context, userID, otherID int64) (bool, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, profile_picture, bio, native_language, learning_language, location, is_onboarded, created_at`

func (r *userRepository) Create(ctx context.Context, email, passwordHash, fullName, profilePicture string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO users (email, password_hash, full_name, profile_picture)
VALUES ($1, $2, $3, $4)
RETURNING `+userColumns+`
`, email, passwordHash, fullName, profilePicture).StructScan(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRecommended returns onboarded users excluding the caller and anyone
// already in the caller's friend set.
func (r *userRepository) ListRecommended(ctx context.Context, userID int64) ([]models.User, error) {
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, `
SELECT `+userColumns+`
FROM users
WHERE id != $1
AND is_onboarded = TRUE
AND id NOT IN (SELECT friend_id FROM friendships WHERE user_id=$1)
ORDER BY id
`, userID)
	return users, err
}

func (r *userRepository) CompleteOnboarding(ctx context.Context, id int64, profile models.OnboardingProfile) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx, `
UPDATE users
SET full_name=$2, bio=$3, native_language=$4, learning_language=$5, location=$6, is_onboarded=TRUE
WHERE id=$1
RETURNING `+userColumns+`
`, id, profile.FullName, profile.Bio, profile.NativeLanguage, profile.LearningLanguage, profile.Location).StructScan(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListFriends(ctx context.Context, userID int64) ([]models.FriendProfile, error) {
	friends := []models.FriendProfile{}
	err := r.db.SelectContext(ctx, &friends, `
SELECT u.id, u.full_name, u.profile_picture, u.native_language, u.learning_language
FROM friendships f
JOIN users u ON u.id = f.friend_id
WHERE f.user_id=$1
ORDER BY u.id
`, userID)
	return friends, err
}

func (r *userRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS(
SELECT 1 FROM friendships WHERE user_id=$1 AND friend_id=$2
)
`, userID, otherID)
	return exists, err
}
