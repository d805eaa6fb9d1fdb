package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/store"
)

// LikeService implements the like toggle: a read decides the direction, the
// store's conditional compound update enforces it. The counter and the liker
// set always move in the same update, so they cannot drift apart; a toggle
// racing another toggle for the same (post, user) pair matches the
// conditional filter at most once and is otherwise absorbed.
type LikeService struct {
	posts store.PostStore
}

func NewLikeService(posts store.PostStore) *LikeService {
	return &LikeService{posts: posts}
}

type ToggleResult struct {
	PostID bson.ObjectID `json:"publicacion_id"`
	Liked  bool          `json:"usuario_dio_like"`
	Likes  int           `json:"likes"`
}

func (s *LikeService) Toggle(ctx context.Context, postID, userID bson.ObjectID) (*ToggleResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		if _, err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.posts.AddLike(ctx, postID, userID); err != nil {
			return nil, err
		}
	}

	// Re-read for the actual resulting state. If a concurrent toggle won the
	// race the conditional update above changed nothing, and this reflects
	// whatever state the winner left behind.
	fresh, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{
		PostID: postID,
		Liked:  fresh.LikedBy(userID),
		Likes:  fresh.Likes,
	}, nil
}
