package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
	"unilink/internal/store"
	"unilink/internal/utils"
)

const CategoriaDefault = "general"

// Categorias is the fixed category vocabulary. The first four double as the
// broad-interest subset in the personalized feed.
var Categorias = []string{"general", "academico", "eventos", "ayuda", "social"}

type PostService struct {
	users store.UserStore
	posts store.PostStore
}

func NewPostService(users store.UserStore, posts store.PostStore) *PostService {
	return &PostService{users: users, posts: posts}
}

type CreatePostInput struct {
	AutorID   bson.ObjectID
	Contenido string
	Categoria string
	Titulo    string
	ImagenURL string
}

// Create validates the author and inserts a fresh post: zero likes, empty
// liker set, no comments, active, server timestamp.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (bson.ObjectID, error) {
	contenido := utils.SanitizeText(in.Contenido)
	if in.AutorID.IsZero() || contenido == "" {
		return bson.NilObjectID, ErrValidation
	}

	if _, err := s.users.FindByID(ctx, in.AutorID); err != nil {
		return bson.NilObjectID, err
	}

	categoria := in.Categoria
	if categoria == "" {
		categoria = CategoriaDefault
	}

	post := &models.Post{
		UserID:        in.AutorID,
		Titulo:        utils.SanitizeText(in.Titulo),
		Contenido:     contenido,
		Categoria:     categoria,
		ImagenURL:     in.ImagenURL,
		Fecha:         time.Now().UTC(),
		Likes:         0,
		UsuariosLikes: []bson.ObjectID{},
		Comentarios:   []models.Comment{},
		Activa:        true,
	}
	return s.posts.Insert(ctx, post)
}

func (s *PostService) GetByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// AppendComment appends to the post's comment list; insertion order is the
// only ordering comments have.
func (s *PostService) AppendComment(ctx context.Context, postID, userID bson.ObjectID, texto string) error {
	texto = utils.SanitizeText(texto)
	if texto == "" {
		return ErrValidation
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.posts.PushComment(ctx, postID, models.Comment{
		UserID:     userID,
		Comentario: texto,
		Fecha:      time.Now().UTC(),
	})
}
