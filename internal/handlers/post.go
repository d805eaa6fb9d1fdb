package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/middleware"
	"unilink/internal/services"
)

type PostHandler struct {
	posts *services.PostService
	feed  *services.FeedService
	likes *services.LikeService
	users *services.UserService
}

func NewPostHandler(posts *services.PostService, feed *services.FeedService, likes *services.LikeService, users *services.UserService) *PostHandler {
	return &PostHandler{posts: posts, feed: feed, likes: likes, users: users}
}

// List - GET /publicaciones
// Query: categoria, user_id, personalizadas, current_user_id
func (h *PostHandler) List(c *gin.Context) {
	q := services.FeedQuery{
		Categoria:      c.Query("categoria"),
		Personalizadas: c.Query("personalizadas") == "true",
	}

	if raw := c.Query("user_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			fail(c, http.StatusInternalServerError, "user_id inválido")
			return
		}
		q.AutorID = id
	}

	if raw := c.Query("current_user_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			fail(c, http.StatusInternalServerError, "current_user_id inválido")
			return
		}
		q.ViewerID = id
	} else if id, ok := middleware.SessionViewer(c); ok {
		q.ViewerID = id
	}

	publicaciones, err := h.feed.List(c.Request.Context(), q)
	if err != nil {
		failErr(c, err, "Publicación no encontrada")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"publicaciones": publicaciones,
		"total":         len(publicaciones),
	})
}

type createPostRequest struct {
	AutorID   string `json:"autor_id"`
	UserID    string `json:"user_id"` // the frontend sends either field name
	Contenido string `json:"contenido"`
	Categoria string `json:"categoria"`
	Titulo    string `json:"titulo"`
	ImagenURL string `json:"imagen_url"`
}

// Create - POST /publicaciones
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "autor_id y contenido son obligatorios")
		return
	}

	rawAutor := req.AutorID
	if rawAutor == "" {
		rawAutor = req.UserID
	}
	if rawAutor == "" || req.Contenido == "" {
		fail(c, http.StatusBadRequest, "autor_id y contenido son obligatorios")
		return
	}

	autorID, err := parseID(rawAutor)
	if err != nil {
		fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	id, err := h.posts.Create(c.Request.Context(), services.CreatePostInput{
		AutorID:   autorID,
		Contenido: req.Contenido,
		Categoria: req.Categoria,
		Titulo:    req.Titulo,
		ImagenURL: req.ImagenURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			fail(c, http.StatusBadRequest, "autor_id y contenido son obligatorios")
			return
		}
		failErr(c, err, "Usuario no encontrado")
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"mensaje":        "Publicación creada exitosamente",
		"publicacion_id": id.Hex(),
	})
}

// Get - GET /publicaciones/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Publicación no encontrada")
		return
	}
	publicacion, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err, "Publicación no encontrada")
		return
	}

	payload := gin.H{"publicacion": publicacion}
	if autor, err := h.users.GetByID(c.Request.Context(), publicacion.UserID); err == nil {
		payload["usuario_nombre"] = autor.Nombre
		payload["usuario_universidad"] = autor.Universidad
	}
	respond(c, http.StatusOK, payload)
}

type likeRequest struct {
	UserID string `json:"user_id"`
}

// ToggleLike - POST /publicaciones/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Publicación no encontrada")
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		fail(c, http.StatusBadRequest, "user_id es requerido")
		return
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		fail(c, http.StatusBadRequest, "user_id es requerido")
		return
	}

	result, err := h.likes.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		failErr(c, err, "Publicación no encontrada")
		return
	}

	mensaje := "Like removido"
	if result.Liked {
		mensaje = "Like agregado"
	}
	respond(c, http.StatusOK, gin.H{
		"mensaje": mensaje,
		"data": gin.H{
			"likes":            result.Likes,
			"usuario_dio_like": result.Liked,
			"publicacion_id":   result.PostID.Hex(),
		},
		// Flat copies kept for older frontend builds.
		"likes":            result.Likes,
		"usuario_dio_like": result.Liked,
	})
}

type commentRequest struct {
	UserID     string `json:"user_id"`
	Comentario string `json:"comentario"`
}

// AddComment - POST /publicaciones/:id/comentarios
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Publicación no encontrada")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Comentario == "" {
		fail(c, http.StatusBadRequest, "user_id y comentario son obligatorios")
		return
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	if err := h.posts.AppendComment(c.Request.Context(), postID, userID, req.Comentario); err != nil {
		if errors.Is(err, services.ErrValidation) {
			fail(c, http.StatusBadRequest, "user_id y comentario son obligatorios")
			return
		}
		failErr(c, err, h.resolveNotFound(c, postID))
		return
	}

	respond(c, http.StatusOK, gin.H{"mensaje": "Comentario agregado exitosamente"})
}

// resolveNotFound distinguishes the missing post from the missing author so
// the 404 body names the right entity.
func (h *PostHandler) resolveNotFound(c *gin.Context, postID bson.ObjectID) string {
	if _, err := h.posts.GetByID(c.Request.Context(), postID); err != nil {
		return "Publicación no encontrada"
	}
	return "Usuario no encontrado"
}
