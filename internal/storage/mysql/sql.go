package mysql

// -----------------------------------------------------------------------------
// RECORD WRITES
// -----------------------------------------------------------------------------

const insertBookingSQL = `
INSERT INTO bookings
  (id, owner_id, destination_id, destination_name, tour_date, guests,
   full_name, email, phone, special_requirements, payment_method, total_price, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertRegistrationSQL = `
INSERT INTO event_registrations
  (id, owner_id, event_id, event_name, event_date, tickets,
   full_name, email, phone, special_requirements, total_price, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertPaymentSQL = `
INSERT INTO payments
  (id, owner_id, amount, currency, method, details,
   booking_id, event_registration_id, description, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Status updates never move a record out of the terminal cancelled state;
// the WHERE clause enforces that and the store inspects the row on miss.
const updateBookingStatusSQL = `
UPDATE bookings SET status = ? WHERE id = ? AND status <> 'cancelled'
`

const updateRegistrationStatusSQL = `
UPDATE event_registrations SET status = ? WHERE id = ? AND status <> 'cancelled'
`

const selectBookingStatusSQL = `SELECT status FROM bookings WHERE id = ?`

const selectRegistrationStatusSQL = `SELECT status FROM event_registrations WHERE id = ?`

const deleteBookingSQL = `DELETE FROM bookings WHERE id = ?`

const deleteRegistrationSQL = `DELETE FROM event_registrations WHERE id = ?`

const deletePaymentSQL = `DELETE FROM payments WHERE id = ?`

// -----------------------------------------------------------------------------
// RECORD READS
// -----------------------------------------------------------------------------

const listBookingsByOwnerSQL = `
SELECT id, owner_id, destination_id, destination_name, tour_date, guests,
       full_name, email, phone, special_requirements, payment_method,
       total_price, status, created_at
FROM bookings
WHERE owner_id = ?
ORDER BY created_at DESC, id DESC
`

const listRegistrationsByOwnerSQL = `
SELECT id, owner_id, event_id, event_name, event_date, tickets,
       full_name, email, phone, special_requirements,
       total_price, status, created_at
FROM event_registrations
WHERE owner_id = ?
ORDER BY created_at DESC, id DESC
`

const listPaymentsByOwnerSQL = `
SELECT id, owner_id, amount, currency, method, details,
       booking_id, event_registration_id, description, status, created_at
FROM payments
WHERE owner_id = ?
ORDER BY created_at DESC, id DESC
`

// -----------------------------------------------------------------------------
// CATALOG
// -----------------------------------------------------------------------------

const upsertDestinationSQL = `
INSERT INTO destinations
  (id, name, region, description, price, rating, lat, lon, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  region      = VALUES(region),
  description = VALUES(description),
  price       = VALUES(price),
  rating      = VALUES(rating),
  lat         = VALUES(lat),
  lon         = VALUES(lon),
  images      = VALUES(images),
  updated_at  = CURRENT_TIMESTAMP
`

const upsertEventSQL = `
INSERT INTO events
  (id, name, venue, event_date, price, description)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  venue       = VALUES(venue),
  event_date  = VALUES(event_date),
  price       = VALUES(price),
  description = VALUES(description),
  updated_at  = CURRENT_TIMESTAMP
`

const getDestinationSQL = `
SELECT id, name, region, description, price, rating, lat, lon, images, updated_at
FROM destinations WHERE id = ?
`

const listDestinationsSQL = `
SELECT id, name, region, description, price, rating, lat, lon, images, updated_at
FROM destinations ORDER BY id
`

const getEventSQL = `
SELECT id, name, venue, event_date, price, description, updated_at
FROM events WHERE id = ?
`

const listEventsSQL = `
SELECT id, name, venue, event_date, price, description, updated_at
FROM events ORDER BY event_date, id
`
