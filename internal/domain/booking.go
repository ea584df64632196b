package domain

import "time"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// MaxQuantity bounds guests per booking and tickets per registration.
const MaxQuantity = 10

type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Booking struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"userId,omitempty"`
	DestinationID       int64     `json:"destinationId"`
	DestinationName     string    `json:"destinationName"`
	TourDate            time.Time `json:"tourDate"`
	Guests              int       `json:"guests"`
	Contact             Contact   `json:"contact"`
	SpecialRequirements string    `json:"specialRequirements,omitempty"`
	PaymentMethod       Method    `json:"paymentMethod"`
	TotalPrice          int64     `json:"totalPrice"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

type EventRegistration struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"userId,omitempty"`
	EventID             int64     `json:"eventId"`
	EventName           string    `json:"eventName"`
	EventDate           time.Time `json:"eventDate"`
	Tickets             int       `json:"numberOfTickets"`
	Contact             Contact   `json:"contact"`
	SpecialRequirements string    `json:"specialRequirements,omitempty"`
	TotalPrice          int64     `json:"totalPrice"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}
