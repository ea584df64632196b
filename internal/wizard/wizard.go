// Package wizard drives the linear multi-step submission flow shared by
// tour bookings, event registrations and standalone payments: collect
// details, collect contact info, pick a payment method, submit once.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"voyage_booking/internal/domain"
)

type Step int

const (
	StepDetails Step = iota + 1
	StepContact
	StepPayment
)

const DateLayout = "2006-01-02"

// Form holds every user-entered field for one wizard instance. Nothing in
// it is shared between instances.
type Form struct {
	ScheduledDate       string // DateLayout
	Quantity            int
	FullName            string
	Email               string
	Phone               string
	SpecialRequirements string
	Payment             Selection
}

// StepCheck validates the fields a step collects; a nil check means the
// step always passes.
type StepCheck func(f *Form) error

type Config[T any] struct {
	Gateway  domain.Gateway[T]
	Notifier domain.Notifier
	// Checks gate forward navigation out of Details and Contact, and gate
	// Submit together with the payment selection.
	Checks map[Step]StepCheck
	// Build assembles the persistence record from the form at submit time.
	Build func(f *Form) (T, error)

	SuccessMessage string
	FailureMessage string
}

type Wizard[T any] struct {
	cfg  Config[T]
	form Form
	step Step

	mu         sync.Mutex
	submitting bool
}

func New[T any](cfg Config[T]) *Wizard[T] {
	w := &Wizard[T]{cfg: cfg, step: StepDetails}
	w.resetForm()
	return w
}

func (w *Wizard[T]) Step() Step { return w.step }

// Form exposes the mutable field state; the caller edits fields in place
// the way input handlers would.
func (w *Wizard[T]) Form() *Form { return &w.form }

// Next advances one step after validating the current one. It never moves
// past StepPayment; submission is explicit.
func (w *Wizard[T]) Next() error {
	if w.step >= StepPayment {
		return domain.Invalid("step", "already at the final step")
	}
	if err := w.check(w.step); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back always succeeds and never validates or clears fields.
func (w *Wizard[T]) Back() {
	if w.step > StepDetails {
		w.step--
	}
}

// Submit validates the whole form, builds the record and calls the gateway
// exactly once. A second Submit while one is in flight is a no-op. On
// gateway failure the step and all field values are preserved and a single
// error notification is fired; on success the wizard resets to step one
// with empty fields and fires a single success notification.
func (w *Wizard[T]) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return "", nil
	}
	if w.step != StepPayment {
		w.mu.Unlock()
		return "", domain.Invalid("step", "submission only allowed at the payment step")
	}
	// Re-run every gate: fields can be edited after a step was passed.
	for _, s := range []Step{StepDetails, StepContact, StepPayment} {
		if err := w.check(s); err != nil {
			w.mu.Unlock()
			return "", err
		}
	}
	rec, err := w.cfg.Build(&w.form)
	if err != nil {
		w.mu.Unlock()
		return "", err
	}
	w.submitting = true
	w.mu.Unlock()

	id, err := w.cfg.Gateway.Create(ctx, rec)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.notify(domain.NoticeError, w.cfg.FailureMessage)
		return "", fmt.Errorf("create record: %w", err)
	}
	w.notify(domain.NoticeSuccess, w.cfg.SuccessMessage)
	w.resetForm()
	w.step = StepDetails
	return id, nil
}

func (w *Wizard[T]) check(s Step) error {
	if s == StepPayment {
		if err := w.form.Payment.Validate(); err != nil {
			return err
		}
	}
	if c := w.cfg.Checks[s]; c != nil {
		return c(&w.form)
	}
	return nil
}

func (w *Wizard[T]) notify(kind domain.NoticeKind, msg string) {
	if w.cfg.Notifier != nil && msg != "" {
		w.cfg.Notifier.Notify(kind, msg)
	}
}

func (w *Wizard[T]) resetForm() {
	w.form = Form{Quantity: 1}
	w.form.Payment.Method = domain.MethodCard
}

// CheckDetails is the default Details gate: a scheduled date that parses,
// is not in the past, and a quantity within [1, MaxQuantity].
func CheckDetails(f *Form) error {
	if strings.TrimSpace(f.ScheduledDate) == "" {
		return domain.Invalid("scheduledDate", "required")
	}
	if _, err := time.Parse(DateLayout, f.ScheduledDate); err != nil {
		return domain.Invalid("scheduledDate", "must be YYYY-MM-DD")
	}
	// DateLayout strings order lexicographically, so this compares calendar
	// days in the user's own zone.
	if f.ScheduledDate < time.Now().Format(DateLayout) {
		return domain.Invalid("scheduledDate", "must not be in the past")
	}
	if f.Quantity < 1 || f.Quantity > domain.MaxQuantity {
		return domain.Invalid("quantity", fmt.Sprintf("must be between 1 and %d", domain.MaxQuantity))
	}
	return nil
}

// CheckContact is the default Contact gate: full name, email and phone all
// non-empty. Format checks beyond that happen server-side.
func CheckContact(f *Form) error {
	if strings.TrimSpace(f.FullName) == "" {
		return domain.Invalid("fullName", "required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return domain.Invalid("email", "required")
	}
	if strings.TrimSpace(f.Phone) == "" {
		return domain.Invalid("phone", "required")
	}
	return nil
}
