package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"voyage_booking/internal/app"
	"voyage_booking/internal/domain"
)

type Handlers struct {
	S *app.SubmissionService
	C *app.CatalogService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/bookings", func(r chi.Router) {
		r.Post("/", h.createBooking)
		r.Get("/", h.listBookings)
		r.Patch("/{id}", h.patchBooking)
		r.Delete("/{id}", h.deleteBooking)
	})
	s.mux.Route("/v1/eventRegistrations", func(r chi.Router) {
		r.Post("/", h.createRegistration)
		r.Get("/", h.listRegistrations)
		r.Patch("/{id}", h.patchRegistration)
		r.Delete("/{id}", h.deleteRegistration)
	})
	s.mux.Route("/v1/payments", func(r chi.Router) {
		r.Post("/", h.createPayment)
		r.Get("/", h.listPayments)
		r.Patch("/{id}", h.patchPayment)
		r.Delete("/{id}", h.deletePayment)
	})

	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/destinations/{id}", h.getDestination)
	s.mux.Get("/v1/events", h.listEvents)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeErr maps service errors onto problem responses.
func writeErr(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "no such record")
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeProblem(w, http.StatusConflict, "Conflict", "record is already cancelled")
	case errors.Is(err, domain.ErrImmutableStatus):
		writeProblem(w, http.StatusConflict, "Conflict", "payment status cannot change after creation")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cacheable body")
	}
}

// parseDay accepts the form's YYYY-MM-DD dates, falling back to RFC 3339.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ---- bookings ----

type bookingRequest struct {
	OwnerID             string         `json:"userId"`
	DestinationID       int64          `json:"destinationId"`
	TourDate            string         `json:"tourDate"`
	Guests              int            `json:"guests"`
	Contact             domain.Contact `json:"contact"`
	SpecialRequirements string         `json:"specialRequirements"`
	PaymentMethod       domain.Method  `json:"paymentMethod"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	date, err := parseDay(req.TourDate)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "tourDate must be YYYY-MM-DD")
		return
	}
	id, err := h.S.CreateBooking(r.Context(), domain.Booking{
		OwnerID:             req.OwnerID,
		DestinationID:       req.DestinationID,
		TourDate:            date,
		Guests:              req.Guests,
		Contact:             req.Contact,
		SpecialRequirements: req.SpecialRequirements,
		PaymentMethod:       req.PaymentMethod,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.ListBookings(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []domain.Booking{} // empty list, not null
	}
	writeJSON(w, http.StatusOK, out)
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

func (h *Handlers) patchBooking(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.S.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- event registrations ----

type registrationRequest struct {
	OwnerID             string         `json:"userId"`
	EventID             int64          `json:"eventId"`
	Tickets             int            `json:"numberOfTickets"`
	Contact             domain.Contact `json:"contact"`
	SpecialRequirements string         `json:"specialRequirements"`
}

func (h *Handlers) createRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	id, err := h.S.CreateRegistration(r.Context(), domain.EventRegistration{
		OwnerID:             req.OwnerID,
		EventID:             req.EventID,
		Tickets:             req.Tickets,
		Contact:             req.Contact,
		SpecialRequirements: req.SpecialRequirements,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) listRegistrations(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.ListRegistrations(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []domain.EventRegistration{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) patchRegistration(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.S.UpdateRegistrationStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *Handlers) deleteRegistration(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeleteRegistration(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- payments ----

type paymentRequest struct {
	OwnerID     string               `json:"userId"`
	Amount      int64                `json:"amount"`
	Currency    string               `json:"currency"`
	Method      domain.Method        `json:"paymentMethod"`
	Details     domain.MethodDetails `json:"details"`
	BookingID   *string              `json:"bookingId"`
	RegID       *string              `json:"eventRegistrationId"`
	Description string               `json:"description"`
}

func (h *Handlers) createPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	id, err := h.S.CreatePayment(r.Context(), domain.Payment{
		OwnerID:             req.OwnerID,
		Amount:              req.Amount,
		Currency:            req.Currency,
		Method:              req.Method,
		Details:             req.Details,
		BookingID:           req.BookingID,
		EventRegistrationID: req.RegID,
		Description:         req.Description,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) listPayments(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.ListPayments(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []domain.Payment{}
	}
	writeJSON(w, http.StatusOK, out)
}

// patchPayment always conflicts: payment status is fixed at creation.
func (h *Handlers) patchPayment(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.S.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *Handlers) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.S.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- catalog ----

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.ListDestinations(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	d, err := h.C.GetDestination(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCacheable(w, r, d)
}

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.ListEvents(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCacheable(w, r, out)
}
