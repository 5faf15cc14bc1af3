// Package http provides http transport for attendance
package http

import (
	stdhttp "net/http"
	"time"

	"timeclock/internal/modkit/httpkit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/services/attendance/domain"
	svc "timeclock/internal/services/attendance/service"
)

// ClockInput is the payload for a descriptor driven capture
type ClockInput struct {
	Descriptor []float32 `json:"descriptor" validate:"required,len=128"`
	Type       string    `json:"type"       validate:"required,oneof=in out"`
	Threshold  float64   `json:"threshold,omitempty"`
	Source     string    `json:"source,omitempty"`
}

// RecordInput is the payload for a direct event append
type RecordInput struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid4"`
	Type       string `json:"type"        validate:"required,oneof=in out"`
	OccurredAt string `json:"occurred_at,omitempty"`
	Source     string `json:"source,omitempty"`
}

// SummariesInput filters a summary listing
type SummariesInput struct {
	EmployeeID string `json:"employee_id,omitempty" validate:"omitempty,uuid4"`
	ShiftID    string `json:"shift_id,omitempty"    validate:"omitempty,uuid4"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
}

// EventsInput filters an event listing
type EventsInput struct {
	EmployeeID string `json:"employee_id,omitempty" validate:"omitempty,uuid4"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// RebuildInput bounds a summary rebuild
type RebuildInput struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to"   validate:"required"`
}

// EventDTO is the wire form of an event
type EventDTO struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	ShiftID    string    `json:"shift_id,omitempty"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source,omitempty"`
}

// SummaryDTO is the wire form of a summary
type SummaryDTO struct {
	EmployeeID string     `json:"employee_id"`
	ShiftID    string     `json:"shift_id"`
	WorkDate   string     `json:"work_date"`
	InAt       *time.Time `json:"time_in_at,omitempty"`
	OutAt      *time.Time `json:"time_out_at,omitempty"`
	Status     string     `json:"status"`
}

// ClockDTO is the wire form of a capture outcome
type ClockDTO struct {
	Matched    bool        `json:"matched"`
	EmployeeID string      `json:"employee_id,omitempty"`
	FullName   string      `json:"full_name,omitempty"`
	Distance   float64     `json:"distance,omitempty"`
	Event      *EventDTO   `json:"event,omitempty"`
	Summary    *SummaryDTO `json:"summary,omitempty"`
}

func toEventDTO(e domain.Event) EventDTO {
	return EventDTO{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		ShiftID:    e.ShiftID,
		Type:       string(e.Type),
		OccurredAt: e.OccurredAt,
		Source:     e.Source,
	}
}

func toSummaryDTO(s domain.Summary) SummaryDTO {
	return SummaryDTO{
		EmployeeID: s.EmployeeID,
		ShiftID:    s.ShiftID,
		WorkDate:   s.WorkDate.Format("2006-01-02"),
		InAt:       s.InAt,
		OutAt:      s.OutAt,
		Status:     string(s.Status),
	}
}

// Register mounts attendance endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[ClockInput](r, "/attendance/clock", h.clock)
	httpkit.PostJSON[RecordInput](r, "/attendance/events", h.record)
	httpkit.PostJSON[EventsInput](r, "/attendance/events/search", h.events)
	httpkit.PostJSON[SummariesInput](r, "/attendance/summaries/search", h.summaries)
	httpkit.PostJSON[RebuildInput](r, "/attendance/rebuild", h.rebuild)
}

type handlers struct{ svc *svc.Service }

func (h *handlers) clock(r *stdhttp.Request, in ClockInput) (any, error) {
	res, err := h.svc.Clock(
		r.Context(), in.Descriptor, in.Threshold, domain.EventType(in.Type), in.Source,
	)
	if err != nil {
		return nil, err
	}
	out := ClockDTO{Matched: res.Matched}
	if res.Matched {
		out.EmployeeID = res.Employee.ID
		out.FullName = res.Employee.FullName
		out.Distance = res.Distance
		if res.Event != nil {
			e := toEventDTO(*res.Event)
			out.Event = &e
		}
		if res.Summary != nil {
			s := toSummaryDTO(*res.Summary)
			out.Summary = &s
		}
	}
	return out, nil
}

func (h *handlers) record(r *stdhttp.Request, in RecordInput) (any, error) {
	occurredAt, err := parseTime(in.OccurredAt, "occurred_at")
	if err != nil {
		return nil, err
	}
	evt, sum, err := h.svc.Record(
		r.Context(), in.EmployeeID, domain.EventType(in.Type), occurredAt, in.Source,
	)
	if err != nil {
		return nil, err
	}
	s := toSummaryDTO(sum)
	return struct {
		Event   EventDTO    `json:"event"`
		Summary *SummaryDTO `json:"summary"`
	}{Event: toEventDTO(evt), Summary: &s}, nil
}

func (h *handlers) events(r *stdhttp.Request, in EventsInput) (any, error) {
	from, err := parseTime(in.From, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseTime(in.To, "to")
	if err != nil {
		return nil, err
	}
	events, err := h.svc.ListEvents(r.Context(), domain.EventFilter{
		EmployeeID: in.EmployeeID, From: from, To: to, Limit: in.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out, nil
}

func (h *handlers) summaries(r *stdhttp.Request, in SummariesInput) (any, error) {
	from, err := parseDate(in.From, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(in.To, "to")
	if err != nil {
		return nil, err
	}
	sums, err := h.svc.ListSummaries(r.Context(), domain.SummaryFilter{
		EmployeeID: in.EmployeeID, ShiftID: in.ShiftID, From: from, To: to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]SummaryDTO, 0, len(sums))
	for _, s := range sums {
		out = append(out, toSummaryDTO(s))
	}
	return out, nil
}

func (h *handlers) rebuild(r *stdhttp.Request, in RebuildInput) (any, error) {
	from, err := parseDate(in.From, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(in.To, "to")
	if err != nil {
		return nil, err
	}
	report, err := h.svc.RebuildRange(r.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return report, nil
}

func parseTime(v, field string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, perr.WithField(
			perr.InvalidArgf("%s must be RFC3339", field), field,
		)
	}
	return t, nil
}

func parseDate(v, field string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, perr.WithField(
			perr.InvalidArgf("%s must be YYYY-MM-DD", field), field,
		)
	}
	return t, nil
}
