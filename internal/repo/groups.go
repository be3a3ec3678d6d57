package repo

import (
	"yatube/internal/models"

	"gorm.io/gorm"
)

type Groups struct {
	db *gorm.DB
}

func NewGroups(db *gorm.DB) *Groups {
	return &Groups{db: db}
}

// BySlug resolves a group by its unique URL-safe identifier.
func (r *Groups) BySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *Groups) ByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// All lists every group, oldest first, for the post form's group picker.
func (r *Groups) All() ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Order("id ASC").Find(&groups).Error
	return groups, err
}

func (r *Groups) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// Delete removes a group; the schema clears group_id on its posts instead of
// deleting them.
func (r *Groups) Delete(group *models.Group) error {
	return r.db.Delete(group).Error
}
