package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking records a buyer's claim on a product. At most one booking may
// exist per (userEmail, productName) pair; the bookings collection carries
// a unique compound index on those two fields and the admission policy is
// built on it.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	ProductID       string             `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName     string             `bson:"productName" json:"productName"`
	Price           int                `bson:"price" json:"price"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	MeetingLocation string             `bson:"meetingLocation,omitempty" json:"meetingLocation,omitempty"`
	BookedAt        time.Time          `bson:"bookedAt" json:"bookedAt"`
	Paid            bool               `bson:"paid" json:"paid"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// AdmissionResult is the response shape of the booking admission policy.
// A rejection is not an HTTP error: callers must inspect Acknowledged.
type AdmissionResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Payment is an append-only record of a completed checkout.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookingID     string             `bson:"bookingId" json:"bookingId"`
	UserEmail     string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	ProductName   string             `bson:"productName,omitempty" json:"productName,omitempty"`
	Price         int                `bson:"price" json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
