package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
)

// MemoryUserStore is the in-memory UserStore used by tests. The mutex plays
// the role of mongo's per-document atomicity.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Insert(_ context.Context, u *models.User) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return bson.NilObjectID, ErrDuplicateEmail
		}
	}
	clone := *u
	if clone.ID.IsZero() {
		clone.ID = bson.NewObjectID()
	}
	s.users = append(s.users, clone)
	return clone.ID, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			clone := s.users[i]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			clone := s.users[i]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// MemoryPostStore mirrors the mongo adapter's conditional compound updates:
// AddLike/RemoveLike test membership and mutate counter plus set under one
// lock, so the counter can never drift from the set size.
type MemoryPostStore struct {
	mu    sync.Mutex
	posts []models.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{}
}

func (s *MemoryPostStore) Insert(_ context.Context, p *models.Post) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := clonePost(p)
	if clone.ID.IsZero() {
		clone.ID = bson.NewObjectID()
	}
	if clone.Fecha.IsZero() {
		clone.Fecha = time.Now().UTC()
	}
	s.posts = append(s.posts, clone)
	return clone.ID, nil
}

func (s *MemoryPostStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			clone := clonePost(&s.posts[i])
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryPostStore) FindActive(_ context.Context, f PostFilter) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Post
	// Walk newest-insertion-first so equal timestamps keep a deterministic
	// most-recent-first order after the stable sort below.
	for i := len(s.posts) - 1; i >= 0; i-- {
		p := &s.posts[i]
		if !p.Activa {
			continue
		}
		switch {
		case f.Categoria != "":
			if p.Categoria != f.Categoria {
				continue
			}
		case !f.UserID.IsZero():
			if p.UserID != f.UserID {
				continue
			}
		case len(f.Intereses) > 0:
			if !containsString(f.Intereses, p.Categoria) {
				continue
			}
		}
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Fecha.After(out[j].Fecha)
	})
	return out, nil
}

func (s *MemoryPostStore) AddLike(_ context.Context, postID, userID bson.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].LikedBy(userID) {
			return false, nil
		}
		s.posts[i].Likes++
		s.posts[i].UsuariosLikes = append(s.posts[i].UsuariosLikes, userID)
		return true, nil
	}
	return false, nil
}

func (s *MemoryPostStore) RemoveLike(_ context.Context, postID, userID bson.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		likes := s.posts[i].UsuariosLikes
		for j, id := range likes {
			if id == userID {
				s.posts[i].UsuariosLikes = append(likes[:j:j], likes[j+1:]...)
				s.posts[i].Likes--
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (s *MemoryPostStore) PushComment(_ context.Context, postID bson.ObjectID, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Comentarios = append(s.posts[i].Comentarios, c)
			return nil
		}
	}
	return ErrNotFound
}

func clonePost(p *models.Post) models.Post {
	clone := *p
	clone.UsuariosLikes = append([]bson.ObjectID(nil), p.UsuariosLikes...)
	clone.Comentarios = append([]models.Comment(nil), p.Comentarios...)
	return clone
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
