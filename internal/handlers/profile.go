package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/internal/authz"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repo"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	users   *repo.Users
	posts   *repo.Posts
	follows *repo.Follows
}

func NewProfileHandler(users *repo.Users, posts *repo.Posts, follows *repo.Follows) *ProfileHandler {
	return &ProfileHandler{users: users, posts: posts, follows: follows}
}

// Show lists an author's posts, and whether the current visitor follows them
// (always false for anonymous visitors).
func (h *ProfileHandler) Show(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}

	page := pagination.ParsePage(c.Query("page"))
	feed, err := h.posts.AuthorFeed(author.ID, page)
	if err != nil {
		logger.Sugar.Errorf("profile feed %q: %v", author.Username, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	following := false
	if user := currentUser(c); user != nil {
		following, err = h.follows.IsFollowing(user.ID, author.ID)
		if err != nil {
			logger.Sugar.Errorf("is following %d->%d: %v", user.ID, author.ID, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
			return
		}
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":     author.Username,
		"Author":    author,
		"PageObj":   feed,
		"Following": following,
	})
}

func (h *ProfileHandler) ShowEdit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	if d := authz.CanEditProfile(user, author); !d.Allowed() {
		c.Redirect(http.StatusFound, "/profile/"+author.Username)
		return
	}
	Render(c, http.StatusOK, "posts/profile_edit.html", gin.H{
		"Title":  "Edit profile",
		"Author": author,
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	// Editing someone else's profile soft-denies to the read-only view
	if d := authz.CanEditProfile(user, author); !d.Allowed() {
		c.Redirect(http.StatusFound, "/profile/"+author.Username)
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" || strings.ContainsAny(username, " /") {
		Render(c, http.StatusBadRequest, "posts/profile_edit.html", gin.H{
			"Title":  "Edit profile",
			"Author": author,
			"Error":  "Pick a username without spaces or slashes",
		})
		return
	}

	author.Username = username
	author.Bio = c.PostForm("bio")
	if err := h.users.Update(author); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Render(c, http.StatusConflict, "posts/profile_edit.html", gin.H{
				"Title":  "Edit profile",
				"Author": author,
				"Error":  "That username is already taken",
			})
			return
		}
		logger.Sugar.Errorf("update profile %d: %v", author.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

// Follow subscribes the current user to an author. Following yourself is
// silently refused with a redirect; following twice is a no-op.
func (h *ProfileHandler) Follow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}

	if d := authz.CanFollow(user, author); !d.Allowed() {
		c.Redirect(http.StatusFound, "/profile/"+author.Username)
		return
	}

	if err := h.follows.Follow(user.ID, author.ID); err != nil {
		logger.Sugar.Errorf("follow %d->%d: %v", user.ID, author.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/follow")
}

// Unfollow removes the subscription. Unfollowing an author you never
// followed is a hard failure, not a no-op.
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	if d := authz.CanUnfollow(user); !d.Allowed() {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.follows.Unfollow(user.ID, author.ID); err != nil {
		if errors.Is(err, repo.ErrNotFollowing) {
			RenderError(c, http.StatusInternalServerError, "You are not following this author")
			return
		}
		logger.Sugar.Errorf("unfollow %d->%d: %v", user.ID, author.ID, err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

func (h *ProfileHandler) loadAuthor(c *gin.Context) (*models.User, bool) {
	username := c.Param("username")
	author, err := h.users.ByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, "User not found")
		} else {
			logger.Sugar.Errorf("user by username %q: %v", username, err)
			RenderError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return nil, false
	}
	return author, true
}
