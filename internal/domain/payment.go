package domain

import (
	"strings"
	"time"
)

type Method string

const (
	MethodCard        Method = "card"
	MethodMobileMoney Method = "mobileMoney"
	MethodPayPal      Method = "paypal"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodMobileMoney, MethodPayPal:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// CardDetails never carries the full PAN past the wizard; Number is the
// masked form (e.g. "****1111") by the time a Payment is persisted.
type CardDetails struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"cardExpiry"`
	Holder string `json:"cardName"`
}

type MobileDetails struct {
	Provider string `json:"provider"` // mtn|orange
	Number   string `json:"mobileNumber"`
}

type PayPalDetails struct {
	Email string `json:"paypalEmail,omitempty"`
}

// MethodDetails is a tagged variant: exactly the field matching the
// payment's Method may be set.
type MethodDetails struct {
	Card   *CardDetails   `json:"cardDetails,omitempty"`
	Mobile *MobileDetails `json:"mobileDetails,omitempty"`
	PayPal *PayPalDetails `json:"paypalDetails,omitempty"`
}

// MatchesMethod reports whether the populated variant equals m and no
// other variant is set.
func (d MethodDetails) MatchesMethod(m Method) bool {
	switch m {
	case MethodCard:
		return d.Card != nil && d.Mobile == nil && d.PayPal == nil
	case MethodMobileMoney:
		return d.Mobile != nil && d.Card == nil && d.PayPal == nil
	case MethodPayPal:
		return d.Card == nil && d.Mobile == nil
	}
	return false
}

// MaskCardNumber keeps only the last four digits of a card number:
// "4242 4242 4242 4242" becomes "****4242". Already-masked input is left
// unchanged, so redaction is idempotent across layers.
func MaskCardNumber(v string) string {
	if strings.HasPrefix(v, "****") {
		return v
	}
	var digits strings.Builder
	for i := 0; i < len(v); i++ {
		if c := v[i]; c >= '0' && c <= '9' {
			digits.WriteByte(c)
		}
	}
	d := digits.String()
	if len(d) <= 4 {
		return "****" + d
	}
	return "****" + d[len(d)-4:]
}

// Redacted returns a copy safe to persist: the card variant's number is
// reduced to its masked form. Other variants pass through untouched.
func (d MethodDetails) Redacted() MethodDetails {
	if d.Card == nil {
		return d
	}
	card := *d.Card
	card.Number = MaskCardNumber(card.Number)
	return MethodDetails{Card: &card}
}

type Payment struct {
	ID                  string        `json:"id"`
	OwnerID             string        `json:"userId,omitempty"`
	Amount              int64         `json:"amount"`
	Currency            string        `json:"currency"`
	Method              Method        `json:"paymentMethod"`
	Details             MethodDetails `json:"details"`
	BookingID           *string       `json:"bookingId,omitempty"`
	EventRegistrationID *string       `json:"eventRegistrationId,omitempty"`
	Description         string        `json:"description,omitempty"`
	Status              PaymentStatus `json:"status"`
	CreatedAt           time.Time     `json:"createdAt"`
}
