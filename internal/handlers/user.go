package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"unilink/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List - GET /usuarios
func (h *UserHandler) List(c *gin.Context) {
	usuarios, err := h.users.List(c.Request.Context())
	if err != nil {
		failErr(c, err, "Usuario no encontrado")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"usuarios": usuarios,
		"total":    len(usuarios),
	})
}

type registerRequest struct {
	Nombre      string   `json:"nombre"`
	Email       string   `json:"email"`
	Password    string   `json:"contraseña"`
	Universidad string   `json:"universidad"`
	Carrera     string   `json:"carrera"`
	Intereses   []string `json:"intereses"`
}

// Register - POST /usuarios
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Nombre == "" || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Nombre, email y contraseña son obligatorios")
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Nombre:      req.Nombre,
		Email:       req.Email,
		Password:    req.Password,
		Universidad: req.Universidad,
		Carrera:     req.Carrera,
		Intereses:   req.Intereses,
	})
	if err != nil {
		failErr(c, err, "Usuario no encontrado")
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"mensaje": "Usuario creado exitosamente",
		"user_id": user.ID.Hex(),
	})
}

// Get - GET /usuarios/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	usuario, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err, "Usuario no encontrado")
		return
	}
	respond(c, http.StatusOK, gin.H{"usuario": usuario})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// Login - POST /usuarios/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Email y contraseña son obligatorios")
		return
	}

	usuario, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failErr(c, err, "Usuario no encontrado")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", usuario.ID.Hex())
	session.Save()

	respond(c, http.StatusOK, gin.H{
		"mensaje": "Login exitoso",
		"usuario": usuario,
	})
}

// Profile - GET /usuarios/:id/perfil
func (h *UserHandler) Profile(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	perfil, err := h.users.Profile(c.Request.Context(), id)
	if err != nil {
		failErr(c, err, "Usuario no encontrado")
		return
	}
	respond(c, http.StatusOK, gin.H{"perfil": perfil})
}
