package services

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
	"unilink/internal/store"
)

// FeedService resolves a feed request into an ordered, annotated post list.
type FeedService struct {
	users store.UserStore
	posts store.PostStore
}

func NewFeedService(users store.UserStore, posts store.PostStore) *FeedService {
	return &FeedService{users: users, posts: posts}
}

// FeedQuery carries the request filters. Resolution order is fixed: category
// wins over author, author wins over personalization, and with nothing set
// the whole active catalog is returned.
type FeedQuery struct {
	Categoria      string
	AutorID        bson.ObjectID
	Personalizadas bool
	ViewerID       bson.ObjectID
}

func (s *FeedService) List(ctx context.Context, q FeedQuery) ([]models.FeedPost, error) {
	posts, err := s.selectPosts(ctx, q)
	if err != nil {
		return nil, err
	}

	feed := s.annotate(ctx, posts, q.ViewerID)

	// Popularity ranking. The sort is stable and keyed on like count alone,
	// so equal-like posts keep their newest-first order from selection.
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Likes > feed[j].Likes
	})
	return feed, nil
}

func (s *FeedService) selectPosts(ctx context.Context, q FeedQuery) ([]models.Post, error) {
	switch {
	case q.Categoria != "":
		return s.posts.FindActive(ctx, store.PostFilter{Categoria: q.Categoria})
	case !q.AutorID.IsZero():
		return s.posts.FindActive(ctx, store.PostFilter{UserID: q.AutorID})
	case q.Personalizadas && !q.ViewerID.IsZero():
		return s.selectPersonalized(ctx, q.ViewerID)
	default:
		return s.posts.FindActive(ctx, store.PostFilter{})
	}
}

// selectPersonalized narrows the feed to the viewer's interests. A viewer
// whose interests span at least 4 distinct categories, or cover the first
// four of the canonical vocabulary, effectively follows the whole catalog
// and gets the unfiltered feed instead of a redundant interest match.
func (s *FeedService) selectPersonalized(ctx context.Context, viewerID bson.ObjectID) ([]models.Post, error) {
	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.posts.FindActive(ctx, store.PostFilter{})
		}
		return nil, err
	}
	if len(viewer.Intereses) == 0 {
		return s.posts.FindActive(ctx, store.PostFilter{})
	}

	distinct := map[string]bool{}
	for _, interes := range viewer.Intereses {
		distinct[interes] = true
	}

	broad := len(distinct) >= 4
	if !broad {
		broad = true
		for _, cat := range Categorias[:4] {
			if !distinct[cat] {
				broad = false
				break
			}
		}
	}
	if broad {
		return s.posts.FindActive(ctx, store.PostFilter{})
	}
	return s.posts.FindActive(ctx, store.PostFilter{Intereses: viewer.Intereses})
}

// annotate attaches the ground-truth like count, the viewer's like state and
// the author summary. Author lookups are cached per request; a failed lookup
// drops that post's author fields but keeps the post.
func (s *FeedService) annotate(ctx context.Context, posts []models.Post, viewerID bson.ObjectID) []models.FeedPost {
	feed := make([]models.FeedPost, 0, len(posts))
	authors := map[bson.ObjectID]*models.User{}

	for _, p := range posts {
		entry := models.FeedPost{
			Post:          p,
			FechaCreacion: p.Fecha,
			TotalLikes:    len(p.UsuariosLikes),
		}
		if entry.UsuariosLikes == nil {
			entry.UsuariosLikes = []bson.ObjectID{}
		}
		// The stored counter can lag a direct document edit; the set is the
		// ground truth it gets defaulted from.
		if entry.Likes == 0 {
			entry.Likes = entry.TotalLikes
		}
		if !viewerID.IsZero() {
			entry.UsuarioDioLike = p.LikedBy(viewerID)
		}

		author, ok := authors[p.UserID]
		if !ok {
			u, err := s.users.FindByID(ctx, p.UserID)
			if err == nil {
				author = u
			}
			authors[p.UserID] = author
		}
		if author != nil {
			entry.Autor = &models.Autor{
				ID:          author.ID,
				Nombre:      author.Nombre,
				Universidad: author.Universidad,
				Carrera:     author.Carrera,
			}
			entry.UsuarioNombre = author.Nombre
			entry.UsuarioUniversidad = author.Universidad
		}

		feed = append(feed, entry)
	}
	return feed
}
