package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"yatube/internal/authz"
	"yatube/internal/cache"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repo"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	posts    *repo.Posts
	groups   *repo.Groups
	comments *repo.Comments
	images   *services.ImageStore

	pageCache *cache.PageCache
	cacheTTL  time.Duration
}

func NewPostHandler(posts *repo.Posts, groups *repo.Groups, comments *repo.Comments,
	images *services.ImageStore, pageCache *cache.PageCache, cacheTTL time.Duration) *PostHandler {
	return &PostHandler{
		posts:     posts,
		groups:    groups,
		comments:  comments,
		images:    images,
		pageCache: pageCache,
		cacheTTL:  cacheTTL,
	}
}

// Index is the global feed: all posts, newest first. The feed is cached per
// page for the configured TTL, so a fresh post may not show up until the
// window passes or the cache is cleared. Only the feed goes into the cache;
// the render context is rebuilt per request because Render mutates it with
// the current visitor.
func (h *PostHandler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	cacheKey := fmt.Sprintf("posts:index:page:%d", page)
	if cached := h.pageCache.Get(cacheKey); cached != nil {
		if feed, ok := cached.(pagination.Page[models.Post]); ok {
			Render(c, http.StatusOK, "posts/index.html", gin.H{
				"Title":   "Latest posts",
				"PageObj": feed,
			})
			return
		}
	}

	feed, err := h.posts.GlobalFeed(page)
	if err != nil {
		logger.Sugar.Errorf("global feed: %v", err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	h.pageCache.Set(cacheKey, feed, h.cacheTTL)

	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title":   "Latest posts",
		"PageObj": feed,
	})
}

// FollowIndex is the personalized feed: posts by authors the current user
// follows.
func (h *PostHandler) FollowIndex(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	page := pagination.ParsePage(c.Query("page"))
	feed, err := h.posts.FollowFeed(user.ID, page)
	if err != nil {
		logger.Sugar.Errorf("follow feed for user %d: %v", user.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title":   "Your feed",
		"PageObj": feed,
	})
}

// Detail shows one post with its comments and the comment form.
func (h *PostHandler) Detail(c *gin.Context) {
	h.renderDetail(c, http.StatusOK, "")
}

func (h *PostHandler) renderDetail(c *gin.Context, code int, formError string) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	comments, err := h.comments.ForPost(post.ID)
	if err != nil {
		logger.Sugar.Errorf("comments for post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	type renderedComment struct {
		models.Comment
		TextHTML interface{}
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{Comment: com, TextHTML: utils.RenderMarkdown(com.Text)}
	}

	Render(c, code, "posts/post_detail.html", gin.H{
		"Title":    "Post by " + post.Author.Username,
		"Post":     post,
		"PostText": utils.RenderMarkdown(post.Text),
		"Comments": rendered,
		"Error":    formError,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	h.renderForm(c, http.StatusOK, "posts/post_create.html", nil, "")
}

// Create makes a new post. The author is always the session user, never a
// form value.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if d := authz.CanCreatePost(user); !d.Allowed() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	post := models.Post{AuthorID: user.ID}
	if !h.bindPostForm(c, &post, "posts/post_create.html", nil) {
		return
	}

	if err := h.posts.Create(&post); err != nil {
		logger.Sugar.Errorf("create post: %v", err)
		h.renderForm(c, http.StatusInternalServerError, "posts/post_create.html", nil, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	// Non-authors land on the read-only detail view, not an error page
	if d := authz.CanModifyPost(user, post); !d.Allowed() {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}
	h.renderForm(c, http.StatusOK, "posts/post_edit.html", post, "")
}

func (h *PostHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if d := authz.CanModifyPost(user, post); !d.Allowed() {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	if !h.bindPostForm(c, post, "posts/post_edit.html", post) {
		return
	}

	if err := h.posts.Update(post); err != nil {
		logger.Sugar.Errorf("update post %d: %v", post.ID, err)
		h.renderForm(c, http.StatusInternalServerError, "posts/post_edit.html", post, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if d := authz.CanModifyPost(user, post); !d.Allowed() {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	if err := h.posts.Delete(post); err != nil {
		logger.Sugar.Errorf("delete post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

// CreateComment appends a comment to a post. Comments cannot be edited or
// deleted afterwards.
func (h *PostHandler) CreateComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if d := authz.CanComment(user); !d.Allowed() {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	text := c.PostForm("text")
	if text == "" {
		h.renderDetail(c, http.StatusBadRequest, "Comment text cannot be empty")
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: user.ID,
		Text:     text,
	}
	if err := h.comments.Create(&comment); err != nil {
		logger.Sugar.Errorf("create comment on post %d: %v", post.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

// loadPost resolves the :id route param, rendering not-found when the post
// does not exist.
func (h *PostHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	id := utils.StringToUint(c.Param("id"))
	post, err := h.posts.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found")
		} else {
			logger.Sugar.Errorf("load post %d: %v", id, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return nil, false
	}
	return post, true
}

// bindPostForm validates the create/edit form into post. On a validation
// failure it re-presents the form with the error and reports false; nothing
// is persisted.
func (h *PostHandler) bindPostForm(c *gin.Context, post *models.Post, view string, editing *models.Post) bool {
	text := c.PostForm("text")
	if text == "" {
		h.renderForm(c, http.StatusBadRequest, view, editing, "Post text cannot be empty")
		return false
	}
	post.Text = text

	post.GroupID = nil
	if raw := c.PostForm("group_id"); raw != "" {
		groupID := utils.StringToUint(raw)
		if _, err := h.groups.ByID(groupID); err != nil {
			h.renderForm(c, http.StatusBadRequest, view, editing, "Unknown group")
			return false
		}
		post.GroupID = &groupID
	}

	file, header, err := c.Request.FormFile("image")
	if err == nil {
		defer file.Close()
		path, err := h.images.Save(file, header)
		if err != nil {
			if errors.Is(err, services.ErrNotImage) || errors.Is(err, services.ErrTooLarge) {
				h.renderForm(c, http.StatusBadRequest, view, editing, "The attachment must be an image")
				return false
			}
			logger.Sugar.Errorf("save image: %v", err)
			h.renderForm(c, http.StatusInternalServerError, view, editing, "Could not store the image")
			return false
		}
		post.Image = path
	}

	return true
}

// renderForm shows the create/edit form with the group picker populated.
func (h *PostHandler) renderForm(c *gin.Context, code int, view string, post *models.Post, formError string) {
	groups, err := h.groups.All()
	if err != nil {
		logger.Sugar.Errorf("list groups: %v", err)
	}
	Render(c, code, view, gin.H{
		"Title":  "Publish",
		"Groups": groups,
		"Post":   post,
		"Error":  formError,
	})
}
