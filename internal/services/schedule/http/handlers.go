// Package http provides http transport for schedule
package http

import (
	stdhttp "net/http"

	"timeclock/internal/modkit/httpkit"
	"timeclock/internal/services/schedule/domain"
	svc "timeclock/internal/services/schedule/service"
)

// CreateShiftInput is the payload for creating a shift
type CreateShiftInput struct {
	Name     string `json:"name"      validate:"required"`
	ClockIn  string `json:"clock_in"  validate:"required"`
	ClockOut string `json:"clock_out" validate:"required"`
}

// ShiftDTO is the wire form of a shift definition
type ShiftDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClockIn  string `json:"clock_in"`
	ClockOut string `json:"clock_out"`
}

func toDTO(s domain.Shift) ShiftDTO {
	return ShiftDTO{
		ID:       s.ID,
		Name:     s.Name,
		ClockIn:  s.ClockIn.Clock(),
		ClockOut: s.ClockOut.Clock(),
	}
}

// Register mounts schedule endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[CreateShiftInput](r, "/shifts", h.create)
	httpkit.Get(r, "/shifts", h.list)
	httpkit.Get(r, "/shifts/detail", h.get)
}

type handlers struct{ svc *svc.Service }

func (h *handlers) create(r *stdhttp.Request, in CreateShiftInput) (any, error) {
	clockIn, err := domain.ParseClock(in.ClockIn)
	if err != nil {
		return nil, err
	}
	clockOut, err := domain.ParseClock(in.ClockOut)
	if err != nil {
		return nil, err
	}
	sh, err := h.svc.CreateShift(r.Context(), in.Name, clockIn, clockOut)
	if err != nil {
		return nil, err
	}
	return toDTO(sh), nil
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	sh, err := h.svc.GetShift(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		return nil, err
	}
	return toDTO(sh), nil
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	shifts, err := h.svc.ListShifts(r.Context())
	if err != nil {
		return nil, err
	}
	out := make([]ShiftDTO, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, toDTO(s))
	}
	return out, nil
}
