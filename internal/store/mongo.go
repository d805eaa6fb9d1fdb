package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"unilink/internal/models"
)

// MongoUserStore backs UserStore with the usuarios collection. The unique
// index on email (created in db.Init) is the final guard against duplicate
// registrations racing past the pre-check.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(col *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{col: col}
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.NilObjectID, ErrDuplicateEmail
		}
		return bson.NilObjectID, fmt.Errorf("insertar usuario: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("insertar usuario: id inesperado %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("buscar usuario %s: %w", id.Hex(), err)
	}
	return &u, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("buscar usuario por email: %w", err)
	}
	return &u, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	return users, nil
}

// MongoPostStore backs PostStore with the publicaciones collection.
type MongoPostStore struct {
	col *mongo.Collection
}

func NewMongoPostStore(col *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{col: col}
}

func (s *MongoPostStore) Insert(ctx context.Context, p *models.Post) (bson.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("insertar publicación: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("insertar publicación: id inesperado %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("buscar publicación %s: %w", id.Hex(), err)
	}
	return &p, nil
}

func (s *MongoPostStore) FindActive(ctx context.Context, f PostFilter) ([]models.Post, error) {
	filter := bson.M{"activa": true}
	switch {
	case f.Categoria != "":
		filter["categoria"] = f.Categoria
	case !f.UserID.IsZero():
		filter["user_id"] = f.UserID
	case len(f.Intereses) > 0:
		filter["categoria"] = bson.M{"$in": f.Intereses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listar publicaciones: %w", err)
	}
	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("listar publicaciones: %w", err)
	}
	return posts, nil
}

// AddLike relies on mongo's per-document atomicity: the membership test lives
// in the filter, so two racing likes from the same user can only match once,
// and the $inc lands together with the $addToSet or not at all.
func (s *MongoPostStore) AddLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID, "usuarios_likes": bson.M{"$ne": userID}},
		bson.M{
			"$inc":      bson.M{"likes": 1},
			"$addToSet": bson.M{"usuarios_likes": userID},
		},
	)
	if err != nil {
		return false, fmt.Errorf("dar like: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (s *MongoPostStore) RemoveLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID, "usuarios_likes": userID},
		bson.M{
			"$inc":  bson.M{"likes": -1},
			"$pull": bson.M{"usuarios_likes": userID},
		},
	)
	if err != nil {
		return false, fmt.Errorf("quitar like: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (s *MongoPostStore) PushComment(ctx context.Context, postID bson.ObjectID, c models.Comment) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comentarios": c}},
	)
	if err != nil {
		return fmt.Errorf("agregar comentario: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
