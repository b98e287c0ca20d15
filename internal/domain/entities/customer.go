package entities

import "time"

// Customer is identified by phone number and owns a set of products.
type Customer struct {
	ID         string    `json:"id" db:"id"`
	Phone      string    `json:"phone" db:"phone"`
	Name       string    `json:"name" db:"name"`
	ProductIDs []string  `json:"product_ids"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerDetail is a customer with product references resolved.
type CustomerDetail struct {
	Customer
	Products []*Product `json:"products"`
}
