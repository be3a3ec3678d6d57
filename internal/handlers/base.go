package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError shows the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser returns the session user, or nil for anonymous visitors.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// requireUser is the explicit login gate protected actions start with. When
// the visitor is anonymous it redirects to the login page and reports false.
func requireUser(c *gin.Context) (*models.User, bool) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return nil, false
	}
	return user, true
}
