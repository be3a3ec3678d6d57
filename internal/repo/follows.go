package repo

import (
	"errors"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// ErrNotFollowing is returned by Unfollow when no relationship exists.
// Deleting a missing relationship is a hard failure, not a no-op.
var ErrNotFollowing = errors.New("not following this author")

// Follows manages the directed user→author relationships.
type Follows struct {
	db *gorm.DB
}

func NewFollows(db *gorm.DB) *Follows {
	return &Follows{db: db}
}

// Follow creates the (user, author) relationship if it does not exist yet.
// Following an already-followed author is a no-op. Two concurrent follows
// race on the composite unique index; the loser's duplicate-key error is
// swallowed since the row it wanted now exists.
func (r *Follows) Follow(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unfollow removes the relationship, failing with ErrNotFollowing when there
// is nothing to remove.
func (r *Follows) Unfollow(userID, authorID uint) error {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether user follows author. Always false for the
// anonymous user (ID 0), which never has rows.
func (r *Follows) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}
