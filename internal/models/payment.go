package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment records one completed charge. Written once, never updated.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID     string             `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price" json:"price"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
}
