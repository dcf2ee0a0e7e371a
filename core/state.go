package core

import (
	"time"

	"github.com/huangsam/thermolog/core/agg"
	"github.com/huangsam/thermolog/core/rules"
	"github.com/huangsam/thermolog/schema"
)

// State is everything a view of the readings is derived from.
// It is only ever changed through Reduce.
type State struct {
	Records     []schema.Record // newest first, replaced on every fetch
	FetchedAt   time.Time
	Criteria    schema.Criteria
	Limits      *rules.Table
	Submissions map[string]schema.Submission
}

// NewState returns the initial state for the given criteria and limit table.
func NewState(criteria schema.Criteria, limits *rules.Table) State {
	if limits == nil {
		limits = rules.DefaultTable()
	}
	return State{
		Records:     []schema.Record{},
		Criteria:    criteria,
		Limits:      limits,
		Submissions: map[string]schema.Submission{},
	}
}

// Event is something that happened to the application.
type Event interface {
	isEvent()
}

// FetchCompleted carries the normalized result of one fetch.
type FetchCompleted struct {
	Records   []schema.Record
	FetchedAt time.Time
}

// CriteriaChanged selects a different zone, month or shift.
type CriteriaChanged struct {
	Criteria schema.Criteria
}

// SubmissionUpdated reports a write moving through the submission protocol.
type SubmissionUpdated struct {
	Submission schema.Submission
}

func (FetchCompleted) isEvent()    {}
func (CriteriaChanged) isEvent()   {}
func (SubmissionUpdated) isEvent() {}

// Reduce applies ev to s and returns the new state. The input state is not
// modified; a fetch replaces the whole record collection, so whichever
// completion is reduced last wins.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case FetchCompleted:
		records := make([]schema.Record, len(e.Records))
		copy(records, e.Records)
		agg.SortNewestFirst(records)
		s.Records = records
		s.FetchedAt = e.FetchedAt
	case CriteriaChanged:
		s.Criteria = e.Criteria
	case SubmissionUpdated:
		subs := make(map[string]schema.Submission, len(s.Submissions)+1)
		for id, sub := range s.Submissions {
			subs[id] = sub
		}
		subs[e.Submission.ID] = e.Submission
		s.Submissions = subs
	}
	return s
}

// Filtered returns the records selected by the state's criteria, newest first.
func (s State) Filtered() []schema.Record {
	return agg.Filter(s.Records, s.Criteria)
}

// View derives the report for the current criteria.
func View(s State, now time.Time) schema.Report {
	limits := s.Limits
	if limits == nil {
		limits = rules.DefaultTable()
	}
	filtered := s.Filtered()
	return schema.Report{
		Criteria:    s.Criteria,
		Period:      s.Criteria.PeriodLabel(),
		Limits:      limits.Resolve(s.Criteria.Zone),
		Records:     filtered,
		Series:      agg.BuildSeries(filtered, s.Criteria),
		Summary:     agg.Summarize(filtered, limits),
		GeneratedAt: now,
	}
}
