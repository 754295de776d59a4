package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SalesStatus is the closed set of product sale states.
type SalesStatus string

const (
	StatusAvailable SalesStatus = "available"
	StatusSold      SalesStatus = "sold"
)

// Valid reports whether s is one of the known states.
func (s SalesStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// Category groups products for the storefront landing page.
type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CategoryID   int                `bson:"categoryId" json:"categoryId"`
	CategoryName string             `bson:"categoryName" json:"categoryName"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Product is a second-hand listing. Email is the owning seller identity;
// one product belongs to exactly one seller.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CategoryID     int                `bson:"categoryId" json:"categoryId"`
	CategoryName   string             `bson:"categoryName" json:"categoryName"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	SellerName     string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	SellerVerified bool               `bson:"sellerVerified" json:"sellerVerified"`
	ResalePrice    int                `bson:"resalePrice" json:"resalePrice"`
	OriginalPrice  int                `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	YearsOfUse     int                `bson:"yearsOfUse,omitempty" json:"yearsOfUse,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	PostedAt       time.Time          `bson:"postedAt" json:"postedAt"`
	IsAdvertise    bool               `bson:"isAdvertise" json:"isAdvertise"`
	SalesStatus    SalesStatus        `bson:"salesStatus" json:"salesStatus"`
	Reported       bool               `bson:"reported" json:"reported"`
}
