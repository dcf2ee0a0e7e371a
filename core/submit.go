package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/thermolog/core/norm"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
)

// ErrNotResubmittable is returned when a confirmed or pending submission is
// sent again.
var ErrNotResubmittable = errors.New("only failed or stale submissions can be resubmitted")

// BuildRecord validates a form and turns it into the canonical record that
// gets posted. Only the group of the selected kind is filled in. A reading
// always belongs to one shift, so the All filter value is rejected.
func BuildRecord(form schema.Form) (schema.Record, error) {
	rec := schema.Record{
		Date:       strings.TrimSpace(form.Date),
		Time:       strings.TrimSpace(form.Time),
		Zone:       strings.TrimSpace(form.Zone),
		RecordedBy: strings.TrimSpace(form.RecordedBy),
		Notes:      strings.TrimSpace(form.Notes),
		Kind:       form.Kind,
	}
	if rec.Kind != schema.HumidityKind {
		rec.Kind = schema.TemperatureKind
	}
	rec.Shift = form.Shift

	if rec.RecordedBy == "" {
		return rec, schema.ErrMissingOperator
	}
	if rec.Zone == "" {
		return rec, schema.ErrMissingZone
	}
	if rec.Shift != schema.MorningShift && rec.Shift != schema.AfternoonShift {
		return rec, schema.ErrMissingShift
	}
	if rec.Date == "" {
		return rec, schema.ErrMissingDate
	}

	current := norm.ParseNumber(form.Current)
	if current == nil {
		return rec, schema.ErrMissingCurrent
	}
	minimum := norm.ParseNumber(form.Min)
	maximum := norm.ParseNumber(form.Max)

	if rec.Kind == schema.HumidityKind {
		rec.HumMin, rec.HumCurrent, rec.HumMax = minimum, current, maximum
	} else {
		rec.TempMin, rec.TempCurrent, rec.TempMax = minimum, current, maximum
	}
	return rec, nil
}

// Submitter posts records and follows each one until the store shows it or
// the confirmation window closes.
type Submitter struct {
	store    contract.RecordStore
	ledger   contract.LedgerStore // may be nil
	timeout  time.Duration
	interval time.Duration

	now   func() time.Time
	newID func() string
}

// NewSubmitter returns a submitter. A nil ledger keeps submissions in memory only.
func NewSubmitter(store contract.RecordStore, ledger contract.LedgerStore, timeout, interval time.Duration) *Submitter {
	if timeout <= 0 {
		timeout = contract.DefaultConfirmTimeout
	}
	if interval <= 0 {
		interval = contract.DefaultConfirmInterval
	}
	return &Submitter{
		store:    store,
		ledger:   ledger,
		timeout:  timeout,
		interval: interval,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit validates form, posts it and waits for confirmation.
// onUpdate, when not nil, sees every state the submission goes through.
func (s *Submitter) Submit(ctx context.Context, form schema.Form, onUpdate func(schema.Submission)) (schema.Submission, error) {
	rec, err := BuildRecord(form)
	if err != nil {
		return schema.Submission{}, err
	}
	sub := schema.Submission{
		ID:          s.newID(),
		Fingerprint: rec.Fingerprint(),
		Record:      rec,
	}
	return s.send(ctx, sub, onUpdate)
}

// Resubmit posts a failed or stale submission again under the same ID.
func (s *Submitter) Resubmit(ctx context.Context, id string, onUpdate func(schema.Submission)) (schema.Submission, error) {
	if s.ledger == nil {
		return schema.Submission{}, fmt.Errorf("%w: %s", schema.ErrSubmissionNotFound, id)
	}
	sub, err := s.ledger.Get(id)
	if err != nil {
		return schema.Submission{}, err
	}
	if sub.Status != schema.FailedStatus && sub.Status != schema.StaleStatus {
		return sub, fmt.Errorf("%w: %s is %s", ErrNotResubmittable, id, sub.Status)
	}
	sub.Fingerprint = sub.Record.Fingerprint()
	return s.send(ctx, sub, onUpdate)
}

// send runs the protocol for one attempt: pending, then failed, confirmed or stale.
func (s *Submitter) send(ctx context.Context, sub schema.Submission, onUpdate func(schema.Submission)) (schema.Submission, error) {
	sub.Status = schema.PendingStatus
	sub.SubmittedAt = s.now()
	sub.ResolvedAt = nil
	sub.LastError = ""
	s.record(sub, onUpdate)

	if err := s.store.Append(ctx, sub.Record); err != nil {
		sub = s.resolve(sub, schema.FailedStatus)
		sub.LastError = err.Error()
		s.record(sub, onUpdate)
		return sub, fmt.Errorf("failed to submit reading: %w", err)
	}

	return s.confirm(ctx, sub, onUpdate)
}

// confirm polls the store until a row with the submission's fingerprint
// shows up or the window elapses. A cancelled context leaves it pending.
func (s *Submitter) confirm(ctx context.Context, sub schema.Submission, onUpdate func(schema.Submission)) (schema.Submission, error) {
	deadline := sub.SubmittedAt.Add(s.timeout)
	for {
		if rows, err := s.store.Fetch(ctx); err == nil && containsFingerprint(rows, sub.Fingerprint) {
			sub = s.resolve(sub, schema.ConfirmedStatus)
			s.record(sub, onUpdate)
			return sub, nil
		}

		if !s.now().Add(s.interval).Before(deadline) {
			sub = s.resolve(sub, schema.StaleStatus)
			s.record(sub, onUpdate)
			return sub, nil
		}

		select {
		case <-ctx.Done():
			return sub, ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

func (s *Submitter) resolve(sub schema.Submission, status schema.SubmissionStatus) schema.Submission {
	at := s.now()
	sub.Status = status
	sub.ResolvedAt = &at
	return sub
}

// record persists sub and forwards it to onUpdate. Ledger errors are only
// logged since the remote store is the source of truth.
func (s *Submitter) record(sub schema.Submission, onUpdate func(schema.Submission)) {
	if s.ledger != nil {
		if err := s.ledger.Save(sub); err != nil {
			contract.LogWarn("Cannot save submission "+sub.ID, err)
		}
	}
	if onUpdate != nil {
		onUpdate(sub)
	}
}

func containsFingerprint(rows []schema.RawRecord, fingerprint string) bool {
	for _, rec := range norm.NormalizeAll(rows) {
		if rec.Fingerprint() == fingerprint {
			return true
		}
	}
	return false
}
