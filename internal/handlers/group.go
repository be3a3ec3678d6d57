package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"yatube/internal/authz"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repo"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type GroupHandler struct {
	groups *repo.Groups
	posts  *repo.Posts
}

func NewGroupHandler(groups *repo.Groups, posts *repo.Posts) *GroupHandler {
	return &GroupHandler{groups: groups, posts: posts}
}

// Feed lists one group's posts, newest first.
func (h *GroupHandler) Feed(c *gin.Context) {
	slug := c.Param("slug")

	group, err := h.groups.BySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "Group not found")
		} else {
			logger.Sugar.Errorf("group by slug %q: %v", slug, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	page := pagination.ParsePage(c.Query("page"))
	feed, err := h.posts.GroupFeed(group.ID, page)
	if err != nil {
		logger.Sugar.Errorf("group feed %q: %v", slug, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title":   group.Title,
		"Group":   group,
		"PageObj": feed,
	})
}

func (h *GroupHandler) ShowCreate(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	Render(c, http.StatusOK, "posts/group_create.html", gin.H{"Title": "New group"})
}

// Create adds a group. Groups are ownerless: any authenticated user may
// create one, and nobody edits or deletes it afterwards.
func (h *GroupHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if d := authz.CanCreateGroup(user); !d.Allowed() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	slug := strings.TrimSpace(c.PostForm("slug"))
	description := strings.TrimSpace(c.PostForm("description"))

	formError := ""
	switch {
	case title == "":
		formError = "Title is required"
	case !slugPattern.MatchString(slug):
		formError = "Slug must be lowercase letters, digits and dashes"
	case description == "":
		formError = "Description is required"
	}
	if formError != "" {
		Render(c, http.StatusBadRequest, "posts/group_create.html", gin.H{
			"Title": "New group",
			"Error": formError,
		})
		return
	}

	group := models.Group{Title: title, Slug: slug, Description: description}
	if err := h.groups.Create(&group); err != nil {
		// Slug uniqueness is enforced by the schema
		Render(c, http.StatusConflict, "posts/group_create.html", gin.H{
			"Title": "New group",
			"Error": "That slug is already taken",
		})
		return
	}

	c.Redirect(http.StatusFound, "/group/"+group.Slug)
}
