package main

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/handlers"
	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/pagination"
	"yatube/internal/repo"
	"yatube/internal/router"
	"yatube/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, reading env vars from system")
	}

	cfg := config.Load()
	logger.Init(cfg.LogPath, cfg.LogLevel)

	db.Init(cfg.DatabaseURL)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("yatube_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static assets and uploaded images
	r.Static("/static", "./web/static")
	r.Static("/media", "./web/media")

	// Middleware
	r.Use(middleware.LoadUser())

	// Repositories share one paginator so every feed uses the same page size
	pages := pagination.New(cfg.PageSize)
	posts := repo.NewPosts(db.DB, pages)
	groups := repo.NewGroups(db.DB)
	comments := repo.NewComments(db.DB)
	users := repo.NewUsers(db.DB)
	follows := repo.NewFollows(db.DB)

	images := services.NewImageStore(cfg.UploadDir, cfg.MaxUploadBytes)
	pageCache := cache.New(cfg.CacheSize)

	router.RegisterRoutes(r,
		handlers.NewAuthHandler(users),
		handlers.NewPostHandler(posts, groups, comments, images, pageCache, cfg.IndexCacheTTL),
		handlers.NewGroupHandler(groups, posts),
		handlers.NewProfileHandler(users, posts, follows),
	)

	logger.Sugar.Infof("Yatube server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Sugar.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, templatesDir+"/views/"+view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			timeVal, ok := t.(time.Time)
			if !ok {
				return ""
			}

			seconds := int(time.Since(timeVal).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			case seconds < 31536000:
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}

	// Manual registration to ensure keys match handler expectation
	views := []string{
		"auth/login.html",
		"auth/signup.html",
		"posts/index.html",
		"posts/follow.html",
		"posts/group_list.html",
		"posts/group_create.html",
		"posts/profile.html",
		"posts/profile_edit.html",
		"posts/post_detail.html",
		"posts/post_create.html",
		"posts/post_edit.html",
		"error.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(view)...)
	}

	return r
}
