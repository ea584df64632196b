package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "voyage_booking/internal/adapters/http_server"
	"voyage_booking/internal/app"
	"voyage_booking/internal/domain"
)

// ---- fakes ----

type memGateway[T any] struct {
	created   []T
	updateErr error
	deleteErr error
}

func (g *memGateway[T]) Create(ctx context.Context, rec T) (string, error) {
	g.created = append(g.created, rec)
	return "rec-1", nil
}
func (g *memGateway[T]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	return g.created, nil
}
func (g *memGateway[T]) UpdateStatus(ctx context.Context, id string, st domain.Status) error {
	return g.updateErr
}
func (g *memGateway[T]) Delete(ctx context.Context, id string) error { return g.deleteErr }

type fakeCatalogRepo struct {
	dest domain.Destination
	ev   domain.Event
}

func (f *fakeCatalogRepo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	return nil
}
func (f *fakeCatalogRepo) UpsertEvent(ctx context.Context, e domain.Event) error { return nil }
func (f *fakeCatalogRepo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	if id != f.dest.ID {
		return domain.Destination{}, domain.ErrNotFound
	}
	return f.dest, nil
}
func (f *fakeCatalogRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return []domain.Destination{f.dest}, nil
}
func (f *fakeCatalogRepo) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	if id != f.ev.ID {
		return domain.Event{}, domain.ErrNotFound
	}
	return f.ev, nil
}
func (f *fakeCatalogRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return []domain.Event{f.ev}, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (noopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (noopCache) Del(ctx context.Context, key string) error { return nil }

type env struct {
	bookings *memGateway[domain.Booking]
	payments *memGateway[domain.Payment]
	srv      *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	bookings := &memGateway[domain.Booking]{}
	regs := &memGateway[domain.EventRegistration]{}
	payments := &memGateway[domain.Payment]{}
	payments.updateErr = domain.ErrImmutableStatus
	cat := &fakeCatalogRepo{
		dest: domain.Destination{ID: 1, Name: "Mount Cameroon", Price: "275,000 CFA"},
		ev:   domain.Event{ID: 7, Name: "Ngondo Festival", Date: time.Now().AddDate(0, 1, 0), Price: "15,000 CFA"},
	}

	s := httpserver.New()
	s.MountHandlers(&httpserver.Handlers{
		S: app.NewSubmissionService(bookings, regs, payments, cat),
		C: app.NewCatalogService(cat, noopCache{}, time.Minute),
	})
	srv := httptest.NewServer(s.Mux())
	t.Cleanup(srv.Close)
	return &env{bookings: bookings, payments: payments, srv: srv}
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ---- tests ----

func TestCreateBooking_RecomputesTotal(t *testing.T) {
	e := newEnv(t)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// client claims a 1 CFA total; server must ignore it
	body := `{
		"userId": "u1",
		"destinationId": 1,
		"tourDate": "` + tomorrow + `",
		"guests": 2,
		"contact": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "+237699112233"},
		"paymentMethod": "mobileMoney",
		"totalPrice": 1
	}`
	resp := do(t, http.MethodPost, e.srv.URL+"/v1/bookings", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["id"] == "" {
		t.Fatal("missing id in response")
	}
	if len(e.bookings.created) != 1 {
		t.Fatalf("created %d bookings, want 1", len(e.bookings.created))
	}
	b := e.bookings.created[0]
	if b.TotalPrice != 550000 {
		t.Fatalf("total = %d, want 550000", b.TotalPrice)
	}
	if b.DestinationName != "Mount Cameroon" {
		t.Fatalf("destination name = %q", b.DestinationName)
	}
	if b.Status != domain.StatusConfirmed {
		t.Fatalf("status = %q", b.Status)
	}
}

func TestCreateBooking_ValidationProblems(t *testing.T) {
	e := newEnv(t)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	cases := []struct {
		name string
		body string
	}{
		{"past date", `{"destinationId":1,"tourDate":"2020-01-01","guests":2,"contact":{"fullName":"J","email":"j@x.com","phone":"1"},"paymentMethod":"card"}`},
		{"zero guests", `{"destinationId":1,"tourDate":"` + tomorrow + `","guests":0,"contact":{"fullName":"J","email":"j@x.com","phone":"1"},"paymentMethod":"card"}`},
		{"eleven guests", `{"destinationId":1,"tourDate":"` + tomorrow + `","guests":11,"contact":{"fullName":"J","email":"j@x.com","phone":"1"},"paymentMethod":"card"}`},
		{"bad email", `{"destinationId":1,"tourDate":"` + tomorrow + `","guests":2,"contact":{"fullName":"J","email":"not-an-email","phone":"1"},"paymentMethod":"card"}`},
		{"unknown destination", `{"destinationId":999,"tourDate":"` + tomorrow + `","guests":2,"contact":{"fullName":"J","email":"j@x.com","phone":"1"},"paymentMethod":"card"}`},
		{"unknown method", `{"destinationId":1,"tourDate":"` + tomorrow + `","guests":2,"contact":{"fullName":"J","email":"j@x.com","phone":"1"},"paymentMethod":"cheque"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, e.srv.URL+"/v1/bookings", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("content type = %q", ct)
			}
		})
	}
	if len(e.bookings.created) != 0 {
		t.Fatalf("created %d bookings, want 0", len(e.bookings.created))
	}
}

func TestPatchBooking_CancelledConflict(t *testing.T) {
	e := newEnv(t)
	e.bookings.updateErr = domain.ErrAlreadyCancelled

	resp := do(t, http.MethodPatch, e.srv.URL+"/v1/bookings/b-1", `{"status":"confirmed"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestPatchBooking_NotFound(t *testing.T) {
	e := newEnv(t)
	e.bookings.updateErr = domain.ErrNotFound

	resp := do(t, http.MethodPatch, e.srv.URL+"/v1/bookings/missing", `{"status":"cancelled"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteBooking(t *testing.T) {
	e := newEnv(t)
	resp := do(t, http.MethodDelete, e.srv.URL+"/v1/bookings/b-1", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	e.bookings.deleteErr = domain.ErrNotFound
	resp = do(t, http.MethodDelete, e.srv.URL+"/v1/bookings/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPatchPayment_AlwaysConflicts(t *testing.T) {
	e := newEnv(t)
	resp := do(t, http.MethodPatch, e.srv.URL+"/v1/payments/p-1", `{"status":"cancelled"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreatePayment_RedactsCard(t *testing.T) {
	e := newEnv(t)
	body := `{
		"userId": "u1",
		"amount": 550000,
		"currency": "CFA",
		"paymentMethod": "card",
		"details": {"cardDetails": {"cardNumber": "4242 4242 4242 4242", "cardExpiry": "12/27", "cardName": "Jane Doe"}}
	}`
	resp := do(t, http.MethodPost, e.srv.URL+"/v1/payments", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if len(e.payments.created) != 1 {
		t.Fatalf("created %d payments, want 1", len(e.payments.created))
	}
	got := e.payments.created[0].Details.Card.Number
	if got != "****4242" {
		t.Fatalf("stored card number %q, want masked", got)
	}
}

func TestCreatePayment_MismatchedVariant(t *testing.T) {
	e := newEnv(t)
	body := `{
		"amount": 100,
		"currency": "CFA",
		"paymentMethod": "card",
		"details": {"mobileDetails": {"provider": "mtn", "mobileNumber": "699112233"}}
	}`
	resp := do(t, http.MethodPost, e.srv.URL+"/v1/payments", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRegistration_EventDateAuthoritative(t *testing.T) {
	e := newEnv(t)
	body := `{
		"userId": "u1",
		"eventId": 7,
		"numberOfTickets": 3,
		"contact": {"fullName": "Jane Doe", "email": "jane@example.com", "phone": "+237699112233"}
	}`
	resp := do(t, http.MethodPost, e.srv.URL+"/v1/eventRegistrations", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
}

func TestListBookings_EmptyIsJSONArray(t *testing.T) {
	e := newEnv(t)
	resp := do(t, http.MethodGet, e.srv.URL+"/v1/bookings?ownerId=nobody", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(body)); got != "[]" {
		t.Fatalf("body = %q, want empty array", got)
	}
}

func TestListDestinations_ETag(t *testing.T) {
	e := newEnv(t)

	resp := do(t, http.MethodGet, e.srv.URL+"/v1/destinations", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/v1/destinations", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", resp2.StatusCode)
	}
}

func TestGetDestination_NotFound(t *testing.T) {
	e := newEnv(t)
	resp := do(t, http.MethodGet, e.srv.URL+"/v1/destinations/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	resp := do(t, http.MethodGet, e.srv.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
