package wizard

import (
	"time"

	"voyage_booking/internal/domain"
	"voyage_booking/internal/pricing"
)

// The three submission flows share one engine and differ only in their
// step gates and the record they build.

// NewTourBooking builds the tour booking flow for one destination. The
// total is derived from the destination's display price; the gateway stamps
// status and timestamp.
func NewTourBooking(dest domain.Destination, ownerID string, g domain.Gateway[domain.Booking], n domain.Notifier) *Wizard[domain.Booking] {
	return New(Config[domain.Booking]{
		Gateway:  g,
		Notifier: n,
		Checks: map[Step]StepCheck{
			StepDetails: CheckDetails,
			StepContact: CheckContact,
		},
		Build: func(f *Form) (domain.Booking, error) {
			date, err := time.Parse(DateLayout, f.ScheduledDate)
			if err != nil {
				return domain.Booking{}, domain.Invalid("scheduledDate", "must be YYYY-MM-DD")
			}
			return domain.Booking{
				OwnerID:         ownerID,
				DestinationID:   dest.ID,
				DestinationName: dest.Name,
				TourDate:        date,
				Guests:          f.Quantity,
				Contact: domain.Contact{
					FullName: f.FullName,
					Email:    f.Email,
					Phone:    f.Phone,
				},
				SpecialRequirements: f.SpecialRequirements,
				PaymentMethod:       f.Payment.Method,
				TotalPrice:          pricing.ComputeTotal(dest.Price, f.Quantity),
			}, nil
		},
		SuccessMessage: "Booking confirmed! Check your email for confirmation details.",
		FailureMessage: "Booking failed. Please try again.",
	})
}

// NewEventRegistration builds the event registration flow. The scheduled
// date is the event's date and is pre-filled; quantity is tickets.
func NewEventRegistration(ev domain.Event, ownerID string, g domain.Gateway[domain.EventRegistration], n domain.Notifier) *Wizard[domain.EventRegistration] {
	w := New(Config[domain.EventRegistration]{
		Gateway:  g,
		Notifier: n,
		Checks: map[Step]StepCheck{
			StepDetails: CheckDetails,
			StepContact: CheckContact,
		},
		Build: func(f *Form) (domain.EventRegistration, error) {
			return domain.EventRegistration{
				OwnerID:   ownerID,
				EventID:   ev.ID,
				EventName: ev.Name,
				EventDate: ev.Date,
				Tickets:   f.Quantity,
				Contact: domain.Contact{
					FullName: f.FullName,
					Email:    f.Email,
					Phone:    f.Phone,
				},
				SpecialRequirements: f.SpecialRequirements,
				TotalPrice:          pricing.ComputeTotal(ev.Price, f.Quantity),
			}, nil
		},
		SuccessMessage: "Registration confirmed! Check your email for your tickets.",
		FailureMessage: "Registration failed. Please try again.",
	})
	w.Form().ScheduledDate = ev.Date.Format(DateLayout)
	return w
}

// NewPayment builds the standalone payment flow for a fixed amount. It has
// no details step of its own, so that gate always passes.
func NewPayment(amount int64, currency, description, ownerID string, g domain.Gateway[domain.Payment], n domain.Notifier) *Wizard[domain.Payment] {
	return New(Config[domain.Payment]{
		Gateway:  g,
		Notifier: n,
		Checks: map[Step]StepCheck{
			StepContact: CheckContact,
		},
		Build: func(f *Form) (domain.Payment, error) {
			return domain.Payment{
				OwnerID:     ownerID,
				Amount:      amount,
				Currency:    currency,
				Method:      f.Payment.Method,
				Details:     f.Payment.Details(),
				Description: description,
			}, nil
		},
		SuccessMessage: "Payment processed successfully!",
		FailureMessage: "Payment failed. Please try again or use a different payment method.",
	})
}
