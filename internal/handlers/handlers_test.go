package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repo"
	"yatube/internal/router"
	"yatube/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// userHeader carries the acting user's ID in tests, standing in for the
// session the browser would hold.
const userHeader = "X-Test-User"

type env struct {
	g         *gorm.DB
	r         *gin.Engine
	pageCache *cache.PageCache
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := g.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pages := pagination.New(10)
	posts := repo.NewPosts(g, pages)
	groups := repo.NewGroups(g)
	comments := repo.NewComments(g)
	users := repo.NewUsers(g)
	follows := repo.NewFollows(g)
	images := services.NewImageStore(t.TempDir(), 1024*1024)
	pageCache := cache.New(50)

	r := gin.New()
	r.HTMLRender = testRenderer()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader(userHeader); id != "" {
			var user models.User
			if err := g.First(&user, id).Error; err == nil {
				c.Set(middleware.CheckUserKey, &user)
			}
		}
		c.Next()
	})

	router.RegisterRoutes(r,
		handlers.NewAuthHandler(users),
		handlers.NewPostHandler(posts, groups, comments, images, pageCache, time.Minute),
		handlers.NewGroupHandler(groups, posts),
		handlers.NewProfileHandler(users, posts, follows),
	)

	return &env{g: g, r: r, pageCache: pageCache}
}

func testRenderer() multitemplate.Render {
	r := multitemplate.New()
	views := map[string]string{
		"posts/index.html":        `items:{{ len .PageObj.Items }} user:{{ with .CurrentUser }}{{ .Username }}{{ end }}`,
		"posts/follow.html":       `items:{{ len .PageObj.Items }}`,
		"posts/group_list.html":   `group:{{ .Group.Slug }} items:{{ len .PageObj.Items }}`,
		"posts/group_create.html": `group-form`,
		"posts/profile.html":      `author:{{ .Author.Username }} following:{{ .Following }} items:{{ len .PageObj.Items }}`,
		"posts/profile_edit.html": `profile-form`,
		"posts/post_detail.html":  `post:{{ .Post.ID }} comments:{{ len .Comments }}`,
		"posts/post_create.html":  `create-form`,
		"posts/post_edit.html":    `edit-form`,
		"auth/login.html":         `login`,
		"auth/signup.html":        `signup`,
		"error.html":              `error:{{ .Error }}`,
	}
	for name, tmpl := range views {
		r.AddFromString(name, tmpl)
	}
	return r
}

func (e *env) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := e.g.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func (e *env) post(t *testing.T, author *models.User, text string) *models.Post {
	t.Helper()
	post := models.Post{Text: text, AuthorID: author.ID}
	if err := e.g.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &post
}

// get performs a GET, optionally as a user.
func (e *env) get(path string, as *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if as != nil {
		req.Header.Set(userHeader, strconv.Itoa(int(as.ID)))
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST, optionally as a user.
func (e *env) postForm(path string, as *models.User, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if as != nil {
		req.Header.Set(userHeader, strconv.Itoa(int(as.ID)))
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func wantRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body: %s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("redirect to %q, want %q", got, location)
	}
}
