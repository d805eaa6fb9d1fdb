// Package store holds the document-store adapters. Services talk to the
// UserStore/PostStore interfaces; the mongo implementation is used at runtime
// and the memory implementation backs the test suite. Both enforce the same
// contract: the like counter and the liker set move together in one
// conditional update on a single post document.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/models"
)

var (
	ErrNotFound       = errors.New("documento no encontrado")
	ErrDuplicateEmail = errors.New("el email ya está registrado")
)

// PostFilter narrows FindActive. At most one of the fields is set; an empty
// filter selects every active post. Results are always newest-first.
type PostFilter struct {
	Categoria string
	UserID    bson.ObjectID
	Intereses []string
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

type PostStore interface {
	Insert(ctx context.Context, p *models.Post) (bson.ObjectID, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	FindActive(ctx context.Context, f PostFilter) ([]models.Post, error)

	// AddLike increments the counter and inserts userID into the liker set as
	// one conditional update; it reports false when the user already liked the
	// post (the update matched nothing, nothing changed).
	AddLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error)

	// RemoveLike is the inverse: decrement plus removal, false when the user
	// had no like to remove.
	RemoveLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error)

	PushComment(ctx context.Context, postID bson.ObjectID, c models.Comment) error
}
