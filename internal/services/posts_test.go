package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/store"
)

func TestCreatePostDefaults(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	id, err := f.postService.Create(ctx, CreatePostInput{
		AutorID:   ana.ID,
		Contenido: "primera publicación",
	})
	require.NoError(t, err)

	post := f.post(t, id)
	assert.Equal(t, "general", post.Categoria)
	assert.Equal(t, 0, post.Likes)
	assert.Empty(t, post.UsuariosLikes)
	assert.Empty(t, post.Comentarios)
	assert.True(t, post.Activa)
	assert.False(t, post.Fecha.IsZero())
}

func TestCreatePostUnknownAuthorInsertsNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.postService.Create(ctx, CreatePostInput{
		AutorID:   bson.NewObjectID(),
		Contenido: "sin autor",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	posts, err := f.posts.FindActive(ctx, store.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreatePostEmptyContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	_, err := f.postService.Create(ctx, CreatePostInput{AutorID: ana.ID, Contenido: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	// Markup-only content sanitizes down to nothing.
	_, err = f.postService.Create(ctx, CreatePostInput{AutorID: ana.ID, Contenido: "<script>x()</script>"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePostSanitizesContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	id, err := f.postService.Create(ctx, CreatePostInput{
		AutorID:   ana.ID,
		Contenido: "hola <b>mundo</b>",
		Titulo:    "<i>título</i>",
	})
	require.NoError(t, err)

	post := f.post(t, id)
	assert.Equal(t, "hola mundo", post.Contenido)
	assert.Equal(t, "título", post.Titulo)
}

func TestAppendCommentKeepsInsertionOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	luis := f.seedUser(t, "Luis", "luis@ucc.edu.co", nil)
	post := f.seedPost(t, ana.ID, "general", time.Now().UTC())

	require.NoError(t, f.postService.AppendComment(ctx, post.ID, luis.ID, "primero"))
	require.NoError(t, f.postService.AppendComment(ctx, post.ID, ana.ID, "segundo"))

	fresh := f.post(t, post.ID)
	require.Len(t, fresh.Comentarios, 2)
	assert.Equal(t, "primero", fresh.Comentarios[0].Comentario)
	assert.Equal(t, luis.ID, fresh.Comentarios[0].UserID)
	assert.Equal(t, "segundo", fresh.Comentarios[1].Comentario)
	assert.False(t, fresh.Comentarios[0].Fecha.IsZero())
}

func TestAppendCommentMissingPostOrAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	post := f.seedPost(t, ana.ID, "general", time.Now().UTC())

	err := f.postService.AppendComment(ctx, bson.NewObjectID(), ana.ID, "hola")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = f.postService.AppendComment(ctx, post.ID, bson.NewObjectID(), "hola")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByIDMissing(t *testing.T) {
	f := newFixture()
	_, err := f.postService.GetByID(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
