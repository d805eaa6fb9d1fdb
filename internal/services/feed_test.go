package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
)

func feedIDs(feed []models.FeedPost) []bson.ObjectID {
	ids := make([]bson.ObjectID, len(feed))
	for i, p := range feed {
		ids[i] = p.ID
	}
	return ids
}

func TestFeedRankingStable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p1 := f.seedPost(t, autor.ID, "general", base, likerIDs(1)...)
	pOld3 := f.seedPost(t, autor.ID, "general", base.Add(1*time.Hour), likerIDs(3)...)
	pNew3 := f.seedPost(t, autor.ID, "general", base.Add(2*time.Hour), likerIDs(3)...)
	p5 := f.seedPost(t, autor.ID, "general", base.Add(3*time.Hour), likerIDs(5)...)

	feed, err := f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)

	// 5 first, then the two 3-like posts keeping newest-first order, then 1.
	require.Equal(t, []bson.ObjectID{p5.ID, pNew3.ID, pOld3.ID, p1.ID}, feedIDs(feed))
}

func TestFeedCategoryFilterWinsOverPersonalization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", []string{"eventos"})

	now := time.Now().UTC()
	f.seedPost(t, autor.ID, "eventos", now)
	academico := f.seedPost(t, autor.ID, "academico", now.Add(time.Minute))

	feed, err := f.feedService.List(ctx, FeedQuery{
		Categoria:      "academico",
		Personalizadas: true,
		ViewerID:       autor.ID,
	})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, academico.ID, feed[0].ID)
}

func TestFeedAuthorFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	luis := f.seedUser(t, "Luis", "luis@ucc.edu.co", nil)

	now := time.Now().UTC()
	mine := f.seedPost(t, ana.ID, "general", now)
	f.seedPost(t, luis.ID, "general", now.Add(time.Minute))

	feed, err := f.feedService.List(ctx, FeedQuery{AutorID: ana.ID})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, mine.ID, feed[0].ID)
}

func TestFeedPersonalizedNoInterestsFallsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	viewer := f.seedUser(t, "Luis", "luis@ucc.edu.co", []string{})

	now := time.Now().UTC()
	f.seedPost(t, autor.ID, "eventos", now)
	f.seedPost(t, autor.ID, "ayuda", now.Add(time.Minute))

	feed, err := f.feedService.List(ctx, FeedQuery{Personalizadas: true, ViewerID: viewer.ID})
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestFeedPersonalizedNarrowInterests(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	viewer := f.seedUser(t, "Luis", "luis@ucc.edu.co", []string{"eventos", "ayuda"})

	now := time.Now().UTC()
	eventos := f.seedPost(t, autor.ID, "eventos", now)
	ayuda := f.seedPost(t, autor.ID, "ayuda", now.Add(time.Minute))
	f.seedPost(t, autor.ID, "social", now.Add(2*time.Minute))

	feed, err := f.feedService.List(ctx, FeedQuery{Personalizadas: true, ViewerID: viewer.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []bson.ObjectID{eventos.ID, ayuda.ID}, feedIDs(feed))
}

// A viewer covering the canonical first four categories gets the unfiltered
// catalog, same as a viewer with 4+ distinct interests.
func TestFeedBroadInterestsMatchUnfilteredListing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	canonical := f.seedUser(t, "Luis", "luis@ucc.edu.co", []string{"general", "academico", "eventos", "ayuda"})
	wide := f.seedUser(t, "Marta", "marta@ucc.edu.co", []string{"academico", "eventos", "ayuda", "social"})

	now := time.Now().UTC()
	f.seedPost(t, autor.ID, "general", now)
	f.seedPost(t, autor.ID, "social", now.Add(time.Minute))
	f.seedPost(t, autor.ID, "eventos", now.Add(2*time.Minute))

	unfiltered, err := f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)

	for _, viewer := range []bson.ObjectID{canonical.ID, wide.ID} {
		feed, err := f.feedService.List(ctx, FeedQuery{Personalizadas: true, ViewerID: viewer})
		require.NoError(t, err)
		assert.Equal(t, feedIDs(unfiltered), feedIDs(feed))
	}
}

func TestFeedViewerLikeFlag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	autor := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)
	viewer := f.seedUser(t, "Luis", "luis@ucc.edu.co", nil)

	liked := f.seedPost(t, autor.ID, "general", time.Now().UTC(), viewer.ID)

	feed, err := f.feedService.List(ctx, FeedQuery{ViewerID: viewer.ID})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, liked.ID, feed[0].ID)
	assert.True(t, feed[0].UsuarioDioLike)
	assert.Equal(t, 1, feed[0].TotalLikes)

	// Without a viewer the flag is always false.
	feed, err = f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)
	assert.False(t, feed[0].UsuarioDioLike)
}

func TestFeedAuthorAnnotationAndDegradation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	now := time.Now().UTC()
	known := f.seedPost(t, ana.ID, "general", now)
	orphan := f.seedPost(t, bson.NewObjectID(), "general", now.Add(time.Minute))

	feed, err := f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)
	require.Len(t, feed, 2)

	byID := map[bson.ObjectID]models.FeedPost{}
	for _, p := range feed {
		byID[p.ID] = p
	}

	withAuthor := byID[known.ID]
	require.NotNil(t, withAuthor.Autor)
	assert.Equal(t, "Ana", withAuthor.Autor.Nombre)
	assert.Equal(t, "UCC", withAuthor.Autor.Universidad)
	assert.Equal(t, "Ana", withAuthor.UsuarioNombre)

	// The orphaned post is still returned, just without author fields.
	degraded := byID[orphan.ID]
	assert.Nil(t, degraded.Autor)
	assert.Empty(t, degraded.UsuarioNombre)
}

func TestFeedDefaultsLikesFromSet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	// Counter left at zero while two likers exist; the set is ground truth.
	p := &models.Post{
		UserID:        ana.ID,
		Contenido:     "contenido",
		Categoria:     "general",
		Fecha:         time.Now().UTC(),
		Likes:         0,
		UsuariosLikes: likerIDs(2),
		Activa:        true,
	}
	_, err := f.posts.Insert(ctx, p)
	require.NoError(t, err)

	feed, err := f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 2, feed[0].TotalLikes)
	assert.Equal(t, 2, feed[0].Likes)
}

func TestFeedExcludesInactivePosts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.seedUser(t, "Ana", "ana@ucc.edu.co", nil)

	p := &models.Post{
		UserID:    ana.ID,
		Contenido: "borrada",
		Categoria: "general",
		Fecha:     time.Now().UTC(),
		Activa:    false,
	}
	_, err := f.posts.Insert(ctx, p)
	require.NoError(t, err)

	feed, err := f.feedService.List(ctx, FeedQuery{})
	require.NoError(t, err)
	assert.Empty(t, feed)
}
