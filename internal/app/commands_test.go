package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"voyage_booking/internal/app"
	"voyage_booking/internal/domain"
)

// ---- fakes ----

type fakeGateway[T any] struct {
	created   []T
	createErr error
	updateErr error
	lastID    string
	lastSt    domain.Status
}

func (g *fakeGateway[T]) Create(ctx context.Context, rec T) (string, error) {
	if g.createErr != nil {
		return "", g.createErr
	}
	g.created = append(g.created, rec)
	return "id-1", nil
}
func (g *fakeGateway[T]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	return g.created, nil
}
func (g *fakeGateway[T]) UpdateStatus(ctx context.Context, id string, st domain.Status) error {
	g.lastID, g.lastSt = id, st
	return g.updateErr
}
func (g *fakeGateway[T]) Delete(ctx context.Context, id string) error { return nil }

type fakeCatalog struct {
	dest domain.Destination
	ev   domain.Event
}

func (f *fakeCatalog) UpsertDestination(ctx context.Context, d domain.Destination) error { return nil }
func (f *fakeCatalog) UpsertEvent(ctx context.Context, e domain.Event) error             { return nil }
func (f *fakeCatalog) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	if id != f.dest.ID {
		return domain.Destination{}, domain.ErrNotFound
	}
	return f.dest, nil
}
func (f *fakeCatalog) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	if id != f.ev.ID {
		return domain.Event{}, domain.ErrNotFound
	}
	return f.ev, nil
}
func (f *fakeCatalog) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return []domain.Destination{f.dest}, nil
}
func (f *fakeCatalog) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return []domain.Event{f.ev}, nil
}

type fixture struct {
	bookings *fakeGateway[domain.Booking]
	regs     *fakeGateway[domain.EventRegistration]
	payments *fakeGateway[domain.Payment]
	svc      *app.SubmissionService
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeGateway[domain.Booking]{},
		regs:     &fakeGateway[domain.EventRegistration]{},
		payments: &fakeGateway[domain.Payment]{},
	}
	cat := &fakeCatalog{
		dest: domain.Destination{ID: 3, Name: "Limbe Botanic Garden", Price: "45,000 CFA"},
		ev:   domain.Event{ID: 5, Name: "Mount Cameroon Race", Date: time.Now().AddDate(0, 2, 0), Price: "10,000 CFA"},
	}
	f.svc = app.NewSubmissionService(f.bookings, f.regs, f.payments, cat)
	return f
}

func validBooking() domain.Booking {
	return domain.Booking{
		OwnerID:       "u1",
		DestinationID: 3,
		TourDate:      time.Now().AddDate(0, 0, 7),
		Guests:        4,
		Contact:       domain.Contact{FullName: "Jane Doe", Email: "jane@example.com", Phone: "+237699112233"},
		PaymentMethod: domain.MethodCard,
	}
}

// ---- tests ----

func TestCreateBooking_OverridesClientTotal(t *testing.T) {
	f := newFixture()
	b := validBooking()
	b.TotalPrice = 1 // client-claimed, must be ignored
	b.DestinationName = "spoofed"

	id, err := f.svc.CreateBooking(context.Background(), b)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}
	got := f.bookings.created[0]
	if got.TotalPrice != 180000 {
		t.Fatalf("total = %d, want 180000 (45000 x 4)", got.TotalPrice)
	}
	if got.DestinationName != "Limbe Botanic Garden" {
		t.Fatalf("name = %q, want catalog name", got.DestinationName)
	}
	if got.Status != domain.StatusConfirmed {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*domain.Booking)
	}{
		{"zero guests", func(b *domain.Booking) { b.Guests = 0 }},
		{"too many guests", func(b *domain.Booking) { b.Guests = domain.MaxQuantity + 1 }},
		{"past date", func(b *domain.Booking) { b.TourDate = time.Now().AddDate(0, 0, -2) }},
		{"blank name", func(b *domain.Booking) { b.Contact.FullName = "  " }},
		{"bad email", func(b *domain.Booking) { b.Contact.Email = "nope" }},
		{"blank phone", func(b *domain.Booking) { b.Contact.Phone = "" }},
		{"bad method", func(b *domain.Booking) { b.PaymentMethod = "cheque" }},
		{"unknown destination", func(b *domain.Booking) { b.DestinationID = 404 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)
			_, err := f.svc.CreateBooking(context.Background(), b)
			if !domain.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
	if len(f.bookings.created) != 0 {
		t.Fatalf("created %d bookings, want 0", len(f.bookings.created))
	}
}

func TestCreateRegistration_EventFieldsAuthoritative(t *testing.T) {
	f := newFixture()
	r := domain.EventRegistration{
		OwnerID:   "u1",
		EventID:   5,
		EventName: "spoofed",
		EventDate: time.Now().AddDate(-1, 0, 0),
		Tickets:   2,
		Contact:   domain.Contact{FullName: "Jane Doe", Email: "jane@example.com", Phone: "699112233"},
	}
	if _, err := f.svc.CreateRegistration(context.Background(), r); err != nil {
		t.Fatalf("err: %v", err)
	}
	got := f.regs.created[0]
	if got.EventName != "Mount Cameroon Race" {
		t.Fatalf("event name = %q", got.EventName)
	}
	if got.EventDate.Before(time.Now()) {
		t.Fatal("event date not taken from catalog")
	}
	if got.TotalPrice != 20000 {
		t.Fatalf("total = %d, want 20000", got.TotalPrice)
	}
}

func TestCreateRegistration_PastEventRejected(t *testing.T) {
	regs := &fakeGateway[domain.EventRegistration]{}
	cat := &fakeCatalog{
		ev: domain.Event{ID: 5, Name: "Mount Cameroon Race", Date: time.Now().AddDate(-1, 0, 0), Price: "10,000 CFA"},
	}
	svc := app.NewSubmissionService(&fakeGateway[domain.Booking]{}, regs, &fakeGateway[domain.Payment]{}, cat)

	r := domain.EventRegistration{
		OwnerID: "u1",
		EventID: 5,
		Tickets: 2,
		Contact: domain.Contact{FullName: "Jane Doe", Email: "jane@example.com", Phone: "699112233"},
	}
	if _, err := svc.CreateRegistration(context.Background(), r); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error for a past event", err)
	}
	if len(regs.created) != 0 {
		t.Fatalf("created %d registrations, want 0", len(regs.created))
	}
}

func TestCreatePayment_Redacts(t *testing.T) {
	f := newFixture()
	p := domain.Payment{
		OwnerID:  "u1",
		Amount:   180000,
		Currency: "CFA",
		Method:   domain.MethodCard,
		Details: domain.MethodDetails{
			Card: &domain.CardDetails{Number: "4111 1111 1111 1111", Expiry: "09/27", Holder: "Jane Doe"},
		},
	}
	if _, err := f.svc.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("err: %v", err)
	}
	got := f.payments.created[0]
	if got.Details.Card.Number != "****1111" {
		t.Fatalf("stored number %q, want masked", got.Details.Card.Number)
	}
	if got.Status != domain.PaymentCompleted {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestCreatePayment_Rejections(t *testing.T) {
	f := newFixture()

	mobile := domain.MethodDetails{Mobile: &domain.MobileDetails{Provider: "mtn", Number: "699112233"}}

	cases := []struct {
		name string
		p    domain.Payment
	}{
		{"zero amount", domain.Payment{Amount: 0, Method: domain.MethodMobileMoney, Details: mobile}},
		{"bad method", domain.Payment{Amount: 100, Method: "cash", Details: mobile}},
		{"variant mismatch", domain.Payment{Amount: 100, Method: domain.MethodCard, Details: mobile}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.CreatePayment(context.Background(), tc.p); !domain.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateStatus_PassesThroughStoreErrors(t *testing.T) {
	f := newFixture()
	f.bookings.updateErr = domain.ErrAlreadyCancelled

	err := f.svc.UpdateBookingStatus(context.Background(), "b-1", domain.StatusConfirmed)
	if !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("err = %v, want ErrAlreadyCancelled", err)
	}

	if err := f.svc.UpdateBookingStatus(context.Background(), "b-1", "bogus"); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error for bogus status", err)
	}
}

func TestUpdatePaymentStatus_Immutable(t *testing.T) {
	f := newFixture()
	f.payments.updateErr = domain.ErrImmutableStatus

	err := f.svc.UpdatePaymentStatus(context.Background(), "p-1", domain.StatusCancelled)
	if !errors.Is(err, domain.ErrImmutableStatus) {
		t.Fatalf("err = %v, want ErrImmutableStatus", err)
	}
}
