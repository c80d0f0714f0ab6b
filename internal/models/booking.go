package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is one patient's claim on one slot of one appointment type
// on one date. Slot times are opaque labels, compared as strings.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingName   string             `bson:"bookingName" json:"bookingName"`
	PatientName   string             `bson:"patientName" json:"patientName"`
	Date          string             `bson:"date" json:"date"`
	Time          string             `bson:"time" json:"time"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
