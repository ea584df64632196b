package wizard

import (
	"strings"

	"voyage_booking/internal/domain"
)

// MobilePrefix is a fixed display prefix; the stored mobile number is the
// 9-digit local subscriber number only.
const MobilePrefix = "+237"

const (
	maxCardDigits   = 16
	maxExpiryDigits = 4
	maxCVCDigits    = 3
	maxMobileDigits = 9
)

type CardEntry struct {
	Number string
	Expiry string
	CVC    string
	Holder string
}

type MobileEntry struct {
	Provider string // mtn|orange
	Number   string
}

// Selection is the payment method sub-state of the wizard. Switching
// methods swaps the required-field set but never clears previously entered
// values; PayPal collects no input at all.
type Selection struct {
	Method domain.Method
	Card   CardEntry
	Mobile MobileEntry
}

func (s *Selection) Choose(m domain.Method) {
	if m.Valid() {
		s.Method = m
	}
}

// Input setters apply the display formatting rules as the user types.

func (s *Selection) SetCardNumber(v string) { s.Card.Number = FormatCardNumber(v) }
func (s *Selection) SetCardExpiry(v string) { s.Card.Expiry = FormatExpiry(v) }
func (s *Selection) SetCardCVC(v string)    { s.Card.CVC = FormatCVC(v) }
func (s *Selection) SetMobileNumber(v string) {
	s.Mobile.Number = FormatMobileNumber(v)
}

// Validate gates submission: card needs all four fields, mobile money needs
// a number, PayPal needs nothing.
func (s *Selection) Validate() error {
	switch s.Method {
	case domain.MethodCard:
		if s.Card.Number == "" || s.Card.Expiry == "" || s.Card.CVC == "" || strings.TrimSpace(s.Card.Holder) == "" {
			return domain.Invalid("cardDetails", "all card fields are required")
		}
	case domain.MethodMobileMoney:
		if s.Mobile.Number == "" {
			return domain.Invalid("mobileNumber", "required")
		}
	case domain.MethodPayPal:
		// nothing to collect; details are filled after the redirect
	default:
		return domain.Invalid("paymentMethod", "unknown method")
	}
	return nil
}

// Details builds the tagged variant for persistence. The card number is
// masked here; the full PAN never leaves the wizard.
func (s *Selection) Details() domain.MethodDetails {
	switch s.Method {
	case domain.MethodCard:
		return domain.MethodDetails{Card: &domain.CardDetails{
			Number: domain.MaskCardNumber(s.Card.Number),
			Expiry: s.Card.Expiry,
			Holder: s.Card.Holder,
		}}
	case domain.MethodMobileMoney:
		provider := s.Mobile.Provider
		if provider == "" {
			provider = "mtn"
		}
		return domain.MethodDetails{Mobile: &domain.MobileDetails{
			Provider: provider,
			Number:   s.Mobile.Number,
		}}
	default:
		return domain.MethodDetails{PayPal: &domain.PayPalDetails{}}
	}
}

func digitsOnly(s string, max int) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < max; i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatCardNumber strips non-digits, caps at 16 digits and regroups in
// blocks of four, so the visible value is at most 19 characters. Formatting
// an already-formatted value is a no-op.
func FormatCardNumber(v string) string {
	d := digitsOnly(v, maxCardDigits)
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// FormatExpiry strips non-digits, caps at 4 and inserts "/" after MM once
// more than two digits are present.
func FormatExpiry(v string) string {
	d := digitsOnly(v, maxExpiryDigits)
	if len(d) > 2 {
		return d[:2] + "/" + d[2:]
	}
	return d
}

func FormatCVC(v string) string { return digitsOnly(v, maxCVCDigits) }

func FormatMobileNumber(v string) string { return digitsOnly(v, maxMobileDigits) }
