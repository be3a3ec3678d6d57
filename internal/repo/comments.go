package repo

import (
	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Comments struct {
	db *gorm.DB
}

func NewComments(db *gorm.DB) *Comments {
	return &Comments{db: db}
}

// ForPost lists a post's comments, newest first.
func (r *Comments) ForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *Comments) Create(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}
