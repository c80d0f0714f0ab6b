package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Doctor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Specialty string             `bson:"specialty" json:"specialty"`
	Image     string             `bson:"img,omitempty" json:"img,omitempty"`
}
