package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AppointmentType is a bookable clinic service with its fixed, ordered
// daily slot template. Seeded out of band; the API only reads these.
type AppointmentType struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Slots []string           `bson:"slots" json:"slots"`
	Price float64            `bson:"price,omitempty" json:"price,omitempty"`
}
