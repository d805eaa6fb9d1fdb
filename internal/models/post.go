package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	UserID     bson.ObjectID `bson:"user_id" json:"user_id"`
	Comentario string        `bson:"comentario" json:"comentario"`
	Fecha      time.Time     `bson:"fecha" json:"fecha"`
}

type Post struct {
	ID            bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID        bson.ObjectID   `bson:"user_id" json:"user_id"`
	Titulo        string          `bson:"titulo" json:"titulo"` // optional, empty for plain posts
	Contenido     string          `bson:"contenido" json:"contenido"`
	Categoria     string          `bson:"categoria" json:"categoria"`
	ImagenURL     string          `bson:"imagen_url,omitempty" json:"imagen_url,omitempty"`
	Fecha         time.Time       `bson:"fecha" json:"fecha"`
	Likes         int             `bson:"likes" json:"likes"`
	UsuariosLikes []bson.ObjectID `bson:"usuarios_likes" json:"usuarios_likes"`
	Comentarios   []Comment       `bson:"comentarios" json:"comentarios"`
	Activa        bool            `bson:"activa" json:"activa"` // soft-delete marker
}

// LikedBy reports whether userID is in the post's liker set.
func (p *Post) LikedBy(userID bson.ObjectID) bool {
	for _, id := range p.UsuariosLikes {
		if id == userID {
			return true
		}
	}
	return false
}

// Autor is the denormalized author summary attached to feed entries.
type Autor struct {
	ID          bson.ObjectID `json:"_id"`
	Nombre      string        `json:"nombre"`
	Universidad string        `json:"universidad"`
	Carrera     string        `json:"carrera"`
}

// FeedPost is a post annotated for a feed response: ground-truth like count,
// the viewer's like state and the resolved author summary.
type FeedPost struct {
	Post
	FechaCreacion      time.Time `json:"fecha_creacion"`
	TotalLikes         int       `json:"total_likes"`
	UsuarioDioLike     bool      `json:"usuario_dio_like"`
	Autor              *Autor    `json:"autor,omitempty"`
	UsuarioNombre      string    `json:"usuario_nombre,omitempty"`
	UsuarioUniversidad string    `json:"usuario_universidad,omitempty"`
}
