package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
	"unilink/internal/store"
	"unilink/internal/utils"
)

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so login failures never reveal which of the two happened.
	ErrInvalidCredentials = errors.New("Credenciales inválidas")

	ErrValidation = errors.New("datos inválidos")
)

type UserService struct {
	users store.UserStore
	posts store.PostStore
}

func NewUserService(users store.UserStore, posts store.PostStore) *UserService {
	return &UserService{users: users, posts: posts}
}

type RegisterInput struct {
	Nombre      string
	Email       string
	Password    string
	Universidad string
	Carrera     string
	Intereses   []string
}

// Register creates a user with a bcrypt-hashed credential. The email
// pre-check gives a clean error for the common case; the unique index in the
// store is the guard against races.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Nombre == "" || in.Email == "" || in.Password == "" {
		return nil, ErrValidation
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}

	intereses := in.Intereses
	if intereses == nil {
		intereses = []string{}
	}

	user := &models.User{
		Nombre:        in.Nombre,
		Email:         in.Email,
		Password:      hash,
		Universidad:   in.Universidad,
		Carrera:       in.Carrera,
		Intereses:     intereses,
		FechaRegistro: time.Now().UTC(),
		Activo:        true,
		Seguidores:    []bson.ObjectID{},
		Siguiendo:     []bson.ObjectID{},
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Authenticate looks the user up by email and verifies the credential.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

type ProfileStats struct {
	TotalPublicaciones  int            `json:"total_publicaciones"`
	TotalLikesRecibidos int            `json:"total_likes_recibidos"`
	CategoriaFavorita   string         `json:"categoria_favorita"`
	CategoriasUso       map[string]int `json:"categorias_uso"`
	FechaRegistro       time.Time      `json:"fecha_registro"`
}

type Profile struct {
	Usuario                *models.User  `json:"usuario"`
	Estadisticas           ProfileStats  `json:"estadisticas"`
	PublicacionesRecientes []models.Post `json:"publicaciones_recientes"`
}

// Profile composes the user with post count, likes received and the most
// used category across their posts.
func (s *UserService) Profile(ctx context.Context, id bson.ObjectID) (*Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.FindActive(ctx, store.PostFilter{UserID: id})
	if err != nil {
		return nil, err
	}

	totalLikes := 0
	categorias := map[string]int{}
	for _, p := range posts {
		totalLikes += p.Likes
		cat := p.Categoria
		if cat == "" {
			cat = CategoriaDefault
		}
		categorias[cat]++
	}

	recientes := posts
	if len(recientes) > 10 {
		recientes = recientes[:10]
	}

	return &Profile{
		Usuario: user,
		Estadisticas: ProfileStats{
			TotalPublicaciones:  len(posts),
			TotalLikesRecibidos: totalLikes,
			CategoriaFavorita:   favoriteCategory(categorias),
			CategoriasUso:       categorias,
			FechaRegistro:       user.FechaRegistro,
		},
		PublicacionesRecientes: recientes,
	}, nil
}

// favoriteCategory returns the mode of the category counts; ties break
// lexicographically so the result is deterministic.
func favoriteCategory(counts map[string]int) string {
	if len(counts) == 0 {
		return CategoriaDefault
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	favorite := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[favorite] {
			favorite = k
		}
	}
	return favorite
}
