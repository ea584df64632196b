package app

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"voyage_booking/internal/adapters/observability"
	"voyage_booking/internal/domain"
	"voyage_booking/internal/pricing"
)

// SubmissionService owns the write paths for the three record kinds. The
// client-submitted total is untrusted: totals are recomputed here from the
// catalog's unit price, and quantity/date gates are enforced again even
// though the wizard already checked them.
type SubmissionService struct {
	bookings      domain.Gateway[domain.Booking]
	registrations domain.Gateway[domain.EventRegistration]
	payments      domain.Gateway[domain.Payment]
	catalog       domain.CatalogRepository
}

func NewSubmissionService(
	b domain.Gateway[domain.Booking],
	r domain.Gateway[domain.EventRegistration],
	p domain.Gateway[domain.Payment],
	cat domain.CatalogRepository,
) *SubmissionService {
	return &SubmissionService{bookings: b, registrations: r, payments: p, catalog: cat}
}

func validContact(c domain.Contact) error {
	if strings.TrimSpace(c.FullName) == "" {
		return domain.Invalid("fullName", "required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return domain.Invalid("email", "not a valid address")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return domain.Invalid("phone", "required")
	}
	return nil
}

func validQuantity(field string, n int) error {
	if n < 1 || n > domain.MaxQuantity {
		return domain.Invalid(field, fmt.Sprintf("must be between 1 and %d", domain.MaxQuantity))
	}
	return nil
}

func notPast(field string, d time.Time) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.Before(today) {
		return domain.Invalid(field, "must not be in the past")
	}
	return nil
}

func (s *SubmissionService) CreateBooking(ctx context.Context, b domain.Booking) (string, error) {
	if err := validQuantity("guests", b.Guests); err != nil {
		return "", err
	}
	if err := notPast("tourDate", b.TourDate); err != nil {
		return "", err
	}
	if err := validContact(b.Contact); err != nil {
		return "", err
	}
	if !b.PaymentMethod.Valid() {
		return "", domain.Invalid("paymentMethod", "unknown method")
	}

	dest, err := s.catalog.GetDestination(ctx, b.DestinationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.Invalid("destinationId", "unknown destination")
		}
		return "", err
	}
	b.DestinationName = dest.Name
	b.TotalPrice = pricing.ComputeTotal(dest.Price, b.Guests)
	b.Status = domain.StatusConfirmed

	id, err := s.bookings.Create(ctx, b)
	observability.ObserveSubmission("booking", err)
	if err != nil {
		return "", fmt.Errorf("create booking: %w", err)
	}
	log.Info().Str("id", id).Int64("destination", b.DestinationID).
		Int("guests", b.Guests).Int64("total", b.TotalPrice).Msg("booking created")
	return id, nil
}

func (s *SubmissionService) CreateRegistration(ctx context.Context, r domain.EventRegistration) (string, error) {
	if err := validQuantity("numberOfTickets", r.Tickets); err != nil {
		return "", err
	}
	if err := validContact(r.Contact); err != nil {
		return "", err
	}

	ev, err := s.catalog.GetEvent(ctx, r.EventID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.Invalid("eventId", "unknown event")
		}
		return "", err
	}
	// The event's own date is authoritative, whatever the client sent; an
	// event that already happened is no longer registrable.
	if err := notPast("eventDate", ev.Date); err != nil {
		return "", err
	}
	r.EventName = ev.Name
	r.EventDate = ev.Date
	r.TotalPrice = pricing.ComputeTotal(ev.Price, r.Tickets)
	r.Status = domain.StatusConfirmed

	id, err := s.registrations.Create(ctx, r)
	observability.ObserveSubmission("registration", err)
	if err != nil {
		return "", fmt.Errorf("create registration: %w", err)
	}
	log.Info().Str("id", id).Int64("event", r.EventID).
		Int("tickets", r.Tickets).Int64("total", r.TotalPrice).Msg("registration created")
	return id, nil
}

func (s *SubmissionService) CreatePayment(ctx context.Context, p domain.Payment) (string, error) {
	if !p.Method.Valid() {
		return "", domain.Invalid("paymentMethod", "unknown method")
	}
	if p.Amount <= 0 {
		return "", domain.Invalid("amount", "must be positive")
	}
	if !p.Details.MatchesMethod(p.Method) {
		return "", domain.Invalid("details", "variant does not match paymentMethod")
	}
	// Card numbers never reach storage in clear form.
	p.Details = p.Details.Redacted()
	if p.Status == "" {
		p.Status = domain.PaymentCompleted
	}

	id, err := s.payments.Create(ctx, p)
	observability.ObserveSubmission("payment", err)
	if err != nil {
		return "", fmt.Errorf("create payment: %w", err)
	}
	log.Info().Str("id", id).Str("method", string(p.Method)).
		Int64("amount", p.Amount).Str("currency", p.Currency).Msg("payment recorded")
	return id, nil
}

// ---- status transitions & deletes ----

func (s *SubmissionService) UpdateBookingStatus(ctx context.Context, id string, st domain.Status) error {
	if !st.Valid() {
		return domain.Invalid("status", "unknown status")
	}
	return s.bookings.UpdateStatus(ctx, id, st)
}

func (s *SubmissionService) UpdateRegistrationStatus(ctx context.Context, id string, st domain.Status) error {
	if !st.Valid() {
		return domain.Invalid("status", "unknown status")
	}
	return s.registrations.UpdateStatus(ctx, id, st)
}

// UpdatePaymentStatus exists for surface uniformity; the store rejects it
// because payment status is immutable after creation.
func (s *SubmissionService) UpdatePaymentStatus(ctx context.Context, id string, st domain.Status) error {
	return s.payments.UpdateStatus(ctx, id, st)
}

func (s *SubmissionService) DeleteBooking(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

func (s *SubmissionService) DeleteRegistration(ctx context.Context, id string) error {
	return s.registrations.Delete(ctx, id)
}

func (s *SubmissionService) DeletePayment(ctx context.Context, id string) error {
	return s.payments.Delete(ctx, id)
}

// ---- owner reads ----

func (s *SubmissionService) ListBookings(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

func (s *SubmissionService) ListRegistrations(ctx context.Context, ownerID string) ([]domain.EventRegistration, error) {
	return s.registrations.ListByOwner(ctx, ownerID)
}

func (s *SubmissionService) ListPayments(ctx context.Context, ownerID string) ([]domain.Payment, error) {
	return s.payments.ListByOwner(ctx, ownerID)
}
