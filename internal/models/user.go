package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID            bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Nombre        string          `bson:"nombre" json:"nombre"`
	Email         string          `bson:"email" json:"email"`
	Password      string          `bson:"password" json:"-"` // bcrypt hash, never serialized
	Universidad   string          `bson:"universidad,omitempty" json:"universidad,omitempty"`
	Carrera       string          `bson:"carrera,omitempty" json:"carrera,omitempty"`
	Intereses     []string        `bson:"intereses" json:"intereses"`
	FechaRegistro time.Time       `bson:"fecha_registro" json:"fecha_registro"`
	Activo        bool            `bson:"activo" json:"activo"`
	Seguidores    []bson.ObjectID `bson:"seguidores" json:"seguidores"`
	Siguiendo     []bson.ObjectID `bson:"siguiendo" json:"siguiendo"`
}
