package router

import (
	"unilink/internal/db"
	"unilink/internal/handlers"
	"unilink/internal/services"
	"unilink/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	userStore := store.NewMongoUserStore(db.Usuarios)
	postStore := store.NewMongoPostStore(db.Publicaciones)

	userService := services.NewUserService(userStore, postStore)
	postService := services.NewPostService(userStore, postStore)
	feedService := services.NewFeedService(userStore, postStore)
	likeService := services.NewLikeService(postStore)

	Register(r, userService, postService, feedService, likeService)
}

// Register wires the handlers onto the engine. Split from RegisterRoutes so
// tests can mount the same routes over the in-memory stores.
func Register(r *gin.Engine, users *services.UserService, posts *services.PostService, feed *services.FeedService, likes *services.LikeService) {
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(users)
	postHandler := handlers.NewPostHandler(posts, feed, likes, users)

	r.GET("/", healthHandler.Health)
	r.GET("/health", healthHandler.Health)
	r.GET("/info", healthHandler.Info)

	r.GET("/usuarios", userHandler.List)
	r.POST("/usuarios", userHandler.Register)
	r.POST("/usuarios/login", userHandler.Login)
	r.GET("/usuarios/:id", userHandler.Get)
	r.GET("/usuarios/:id/perfil", userHandler.Profile)

	r.GET("/publicaciones", postHandler.List)
	r.POST("/publicaciones", postHandler.Create)
	r.GET("/publicaciones/:id", postHandler.Get)
	r.POST("/publicaciones/:id/like", postHandler.ToggleLike)
	r.POST("/publicaciones/:id/comentarios", postHandler.AddComment)
}
