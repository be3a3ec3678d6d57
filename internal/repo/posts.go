package repo

import (
	"yatube/internal/models"
	"yatube/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Posts issues the post queries: paginated feeds plus single-entity CRUD.
// Every feed orders newest-first and clamps the requested page.
type Posts struct {
	db    *gorm.DB
	pages *pagination.Paginator
}

func NewPosts(db *gorm.DB, pages *pagination.Paginator) *Posts {
	return &Posts{db: db, pages: pages}
}

// GlobalFeed returns all posts, newest first.
func (r *Posts) GlobalFeed(page int) (pagination.Page[models.Post], error) {
	return r.feed(r.db.Model(&models.Post{}), page)
}

// GroupFeed returns the posts attached to one group.
func (r *Posts) GroupFeed(groupID uint, page int) (pagination.Page[models.Post], error) {
	return r.feed(r.db.Model(&models.Post{}).Where("group_id = ?", groupID), page)
}

// AuthorFeed returns the posts of one author.
func (r *Posts) AuthorFeed(authorID uint, page int) (pagination.Page[models.Post], error) {
	return r.feed(r.db.Model(&models.Post{}).Where("author_id = ?", authorID), page)
}

// FollowFeed returns the posts of every author the given user follows.
func (r *Posts) FollowFeed(userID uint, page int) (pagination.Page[models.Post], error) {
	followed := r.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", userID)
	return r.feed(r.db.Model(&models.Post{}).Where("author_id IN (?)", followed), page)
}

func (r *Posts) feed(q *gorm.DB, page int) (pagination.Page[models.Post], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return pagination.Page[models.Post]{}, err
	}

	info := r.pages.PageFor(total, page)

	var posts []models.Post
	err := q.Session(&gorm.Session{}).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(info.PerPage).
		Offset(info.Offset()).
		Find(&posts).Error
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}

	if err := r.fillCommentCounts(posts); err != nil {
		return pagination.Page[models.Post]{}, err
	}

	return pagination.Page[models.Post]{PageInfo: info, Items: posts}, nil
}

// fillCommentCounts batch-fills CommentCount for a page of posts.
func (r *Posts) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countRow struct {
		PostID uint
		Count  int
	}
	var rows []countRow
	err := r.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

// ByID loads one post with its author and group.
func (r *Posts) ByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Posts) Create(post *models.Post) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

func (r *Posts) Update(post *models.Post) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

func (r *Posts) Delete(post *models.Post) error {
	return r.db.Delete(post).Error
}
