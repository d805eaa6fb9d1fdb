package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
	"unilink/internal/store"
)

type fixture struct {
	users *store.MemoryUserStore
	posts *store.MemoryPostStore

	userService *UserService
	postService *PostService
	feedService *FeedService
	likeService *LikeService
}

func newFixture() *fixture {
	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	return &fixture{
		users:       users,
		posts:       posts,
		userService: NewUserService(users, posts),
		postService: NewPostService(users, posts),
		feedService: NewFeedService(users, posts),
		likeService: NewLikeService(posts),
	}
}

// seedUser inserts directly into the store, skipping bcrypt for speed.
func (f *fixture) seedUser(t *testing.T, nombre, email string, intereses []string) *models.User {
	t.Helper()
	u := &models.User{
		Nombre:        nombre,
		Email:         email,
		Password:      "hash",
		Universidad:   "UCC",
		Carrera:       "Ingeniería",
		Intereses:     intereses,
		FechaRegistro: time.Now().UTC(),
		Activo:        true,
		Seguidores:    []bson.ObjectID{},
		Siguiendo:     []bson.ObjectID{},
	}
	id, err := f.users.Insert(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func (f *fixture) seedPost(t *testing.T, autor bson.ObjectID, categoria string, fecha time.Time, likers ...bson.ObjectID) *models.Post {
	t.Helper()
	p := &models.Post{
		UserID:        autor,
		Contenido:     "contenido de prueba",
		Categoria:     categoria,
		Fecha:         fecha,
		Likes:         len(likers),
		UsuariosLikes: append([]bson.ObjectID{}, likers...),
		Comentarios:   []models.Comment{},
		Activa:        true,
	}
	id, err := f.posts.Insert(context.Background(), p)
	require.NoError(t, err)
	p.ID = id
	return p
}

func (f *fixture) post(t *testing.T, id bson.ObjectID) *models.Post {
	t.Helper()
	p, err := f.posts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func likerIDs(n int) []bson.ObjectID {
	ids := make([]bson.ObjectID, n)
	for i := range ids {
		ids[i] = bson.NewObjectID()
	}
	return ids
}
