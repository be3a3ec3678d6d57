package router

import (
	"yatube/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route. Protected actions gate themselves with an
// explicit current-user check instead of group middleware, so the table below
// is the full picture.
func RegisterRoutes(r *gin.Engine,
	auth *handlers.AuthHandler,
	posts *handlers.PostHandler,
	groups *handlers.GroupHandler,
	profiles *handlers.ProfileHandler,
) {
	// Feeds
	r.GET("/", posts.Index)             // global feed (page-cached)
	r.GET("/follow", posts.FollowIndex) // personalized feed (auth)

	// Posts
	r.GET("/create", posts.ShowCreate) // auth
	r.POST("/create", posts.Create)
	r.GET("/posts/:id", posts.Detail)
	r.GET("/posts/:id/edit", posts.ShowEdit) // author only
	r.POST("/posts/:id/edit", posts.Update)
	r.POST("/posts/:id/delete", posts.Delete)
	r.POST("/posts/:id/comment", posts.CreateComment) // auth

	// Groups
	r.GET("/group/create", groups.ShowCreate) // auth
	r.POST("/group/create", groups.Create)
	r.GET("/group/:slug", groups.Feed)

	// Profiles and follows
	r.GET("/profile/:username", profiles.Show)
	r.GET("/profile/:username/edit", profiles.ShowEdit) // self only
	r.POST("/profile/:username/edit", profiles.Update)
	r.GET("/profile/:username/follow", profiles.Follow)     // auth, idempotent
	r.GET("/profile/:username/unfollow", profiles.Unfollow) // auth

	// Identity
	r.GET("/signup", auth.ShowRegister)
	r.POST("/signup", auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)
}
