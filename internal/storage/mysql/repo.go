package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"voyage_booking/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
func nullF64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// Repo bundles the three record stores with the catalog tables. The stores
// satisfy domain.Gateway for their record type.
type Repo struct {
	db            *sql.DB
	Bookings      *BookingStore
	Registrations *RegistrationStore
	Payments      *PaymentStore
}

func New(db *sql.DB) *Repo {
	return &Repo{
		db:            db,
		Bookings:      &BookingStore{db: db},
		Registrations: &RegistrationStore{db: db},
		Payments:      &PaymentStore{db: db},
	}
}

// updateStatus runs a guarded status update and maps a zero-row result to
// either not-found or the terminal-cancelled conflict.
func updateStatus(ctx context.Context, db *sql.DB, updateSQL, statusSQL string, id string, s domain.Status) error {
	res, err := db.ExecContext(ctx, updateSQL, string(s), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var cur string
	switch err := db.QueryRowContext(ctx, statusSQL, id).Scan(&cur); {
	case err == sql.ErrNoRows:
		return domain.ErrNotFound
	case err != nil:
		return err
	case cur == string(domain.StatusCancelled):
		return domain.ErrAlreadyCancelled
	}
	// same-value update reports zero affected rows; treat it as success
	return nil
}

func deleteByID(ctx context.Context, db *sql.DB, delSQL, id string) error {
	res, err := db.ExecContext(ctx, delSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- bookings ----

type BookingStore struct{ db *sql.DB }

func (s *BookingStore) Create(ctx context.Context, b domain.Booking) (string, error) {
	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := b.Status
	if status == "" {
		status = domain.StatusConfirmed
	}
	_, err := s.db.ExecContext(ctx, insertBookingSQL,
		id,
		b.OwnerID,
		b.DestinationID,
		b.DestinationName,
		b.TourDate.Format("2006-01-02"),
		b.Guests,
		b.Contact.FullName,
		b.Contact.Email,
		b.Contact.Phone,
		b.SpecialRequirements,
		string(b.PaymentMethod),
		b.TotalPrice,
		string(status),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *BookingStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, listBookingsByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		var special sql.NullString
		var method, status string
		var tourDate, createdAt time.Time
		if err := rows.Scan(
			&b.ID, &b.OwnerID, &b.DestinationID, &b.DestinationName,
			&tourDate, &b.Guests,
			&b.Contact.FullName, &b.Contact.Email, &b.Contact.Phone,
			&special, &method, &b.TotalPrice, &status, &createdAt,
		); err != nil {
			return nil, err
		}
		if special.Valid {
			b.SpecialRequirements = special.String
		}
		b.TourDate = tourDate
		b.PaymentMethod = domain.Method(method)
		b.Status = domain.Status(status)
		b.CreatedAt = createdAt
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id string, st domain.Status) error {
	return updateStatus(ctx, s.db, updateBookingStatusSQL, selectBookingStatusSQL, id, st)
}

func (s *BookingStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, deleteBookingSQL, id)
}

// ---- event registrations ----

type RegistrationStore struct{ db *sql.DB }

func (s *RegistrationStore) Create(ctx context.Context, r domain.EventRegistration) (string, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := r.Status
	if status == "" {
		status = domain.StatusConfirmed
	}
	_, err := s.db.ExecContext(ctx, insertRegistrationSQL,
		id,
		r.OwnerID,
		r.EventID,
		r.EventName,
		r.EventDate.Format("2006-01-02"),
		r.Tickets,
		r.Contact.FullName,
		r.Contact.Email,
		r.Contact.Phone,
		r.SpecialRequirements,
		r.TotalPrice,
		string(status),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *RegistrationStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.EventRegistration, error) {
	rows, err := s.db.QueryContext(ctx, listRegistrationsByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.EventRegistration{}
	for rows.Next() {
		var r domain.EventRegistration
		var special sql.NullString
		var status string
		var eventDate, createdAt time.Time
		if err := rows.Scan(
			&r.ID, &r.OwnerID, &r.EventID, &r.EventName,
			&eventDate, &r.Tickets,
			&r.Contact.FullName, &r.Contact.Email, &r.Contact.Phone,
			&special, &r.TotalPrice, &status, &createdAt,
		); err != nil {
			return nil, err
		}
		if special.Valid {
			r.SpecialRequirements = special.String
		}
		r.EventDate = eventDate
		r.Status = domain.Status(status)
		r.CreatedAt = createdAt
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *RegistrationStore) UpdateStatus(ctx context.Context, id string, st domain.Status) error {
	return updateStatus(ctx, s.db, updateRegistrationStatusSQL, selectRegistrationStatusSQL, id, st)
}

func (s *RegistrationStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, deleteRegistrationSQL, id)
}

// ---- payments ----

type PaymentStore struct{ db *sql.DB }

func (s *PaymentStore) Create(ctx context.Context, p domain.Payment) (string, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := p.Status
	if status == "" {
		status = domain.PaymentCompleted
	}
	details, err := json.Marshal(p.Details)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, insertPaymentSQL,
		id,
		p.OwnerID,
		p.Amount,
		p.Currency,
		string(p.Method),
		string(details),
		valStr(p.BookingID),
		valStr(p.EventRegistrationID),
		p.Description,
		string(status),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PaymentStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Payment, error) {
	rows, err := s.db.QueryContext(ctx, listPaymentsByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		var method, status string
		var detailsRaw []byte
		var bookingID, regID, desc sql.NullString
		var createdAt time.Time
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Amount, &p.Currency, &method, &detailsRaw,
			&bookingID, &regID, &desc, &status, &createdAt,
		); err != nil {
			return nil, err
		}
		p.Method = domain.Method(method)
		p.Status = domain.PaymentStatus(status)
		p.BookingID = nullStr(bookingID)
		p.EventRegistrationID = nullStr(regID)
		if desc.Valid {
			p.Description = desc.String
		}
		p.CreatedAt = createdAt
		if len(detailsRaw) > 0 {
			if err := json.Unmarshal(detailsRaw, &p.Details); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus always fails for payments: their status is set once at
// creation and immutable afterwards.
func (s *PaymentStore) UpdateStatus(ctx context.Context, id string, st domain.Status) error {
	return domain.ErrImmutableStatus
}

func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, deletePaymentSQL, id)
}

// ---- catalog ----

func (r *Repo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	imgs, _ := json.Marshal(d.Images)
	_, err := r.db.ExecContext(ctx, upsertDestinationSQL,
		d.ID,
		d.Name,
		valStr(d.Region),
		valStr(d.Description),
		d.Price,
		valF64(d.Rating),
		valF64(d.Lat),
		valF64(d.Lon),
		string(imgs),
	)
	return err
}

func (r *Repo) UpsertEvent(ctx context.Context, e domain.Event) error {
	_, err := r.db.ExecContext(ctx, upsertEventSQL,
		e.ID,
		e.Name,
		valStr(e.Venue),
		e.Date.Format("2006-01-02"),
		e.Price,
		valStr(e.Description),
	)
	return err
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return scanDestination(r.db.QueryRowContext(ctx, getDestinationSQL, id))
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
}

func (r *Repo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanDestination(row rowScanner) (domain.Destination, error) {
	var d domain.Destination
	var region, desc sql.NullString
	var rating, lat, lon sql.NullFloat64
	var imagesJSON []byte
	err := row.Scan(&d.ID, &d.Name, &region, &desc, &d.Price,
		&rating, &lat, &lon, &imagesJSON, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Destination{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Destination{}, err
	}
	d.Region = nullStr(region)
	d.Description = nullStr(desc)
	d.Rating = nullF64(rating)
	d.Lat = nullF64(lat)
	d.Lon = nullF64(lon)
	_ = json.Unmarshal(imagesJSON, &d.Images)
	return d, nil
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var e domain.Event
	var venue, desc sql.NullString
	err := row.Scan(&e.ID, &e.Name, &venue, &e.Date, &e.Price, &desc, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Event{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Event{}, err
	}
	e.Venue = nullStr(venue)
	e.Description = nullStr(desc)
	return e, nil
}
