// Package http provides http transport for ident
package http

import (
	stdhttp "net/http"
	"time"

	"timeclock/internal/modkit/httpkit"
	"timeclock/internal/services/ident/domain"
	svc "timeclock/internal/services/ident/service"
)

// CreateEmployeeInput is the payload for registering an employee
type CreateEmployeeInput struct {
	FullName string `json:"full_name" validate:"required"`
	ShiftID  string `json:"shift_id"  validate:"required,uuid4"`
}

// EnrollInput is the payload for adding a face descriptor
type EnrollInput struct {
	EmployeeID string    `json:"employee_id" validate:"required,uuid4"`
	Descriptor []float32 `json:"descriptor"  validate:"required,len=128"`
}

// DeactivateInput is the payload for retiring an employee from matching
type DeactivateInput struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid4"`
}

// MatchInput is the payload for a standalone descriptor lookup
type MatchInput struct {
	Descriptor []float32 `json:"descriptor" validate:"required,len=128"`
	Threshold  float64   `json:"threshold,omitempty"`
}

// EmployeeDTO is the wire form of an employee
type EmployeeDTO struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	ShiftID   string    `json:"shift_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchDTO is the wire form of a lookup outcome
type MatchDTO struct {
	Matched    bool    `json:"matched"`
	EmployeeID string  `json:"employee_id,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
}

func toEmployeeDTO(e domain.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		FullName:  e.FullName,
		ShiftID:   e.ShiftID,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}

func toMatchDTO(m domain.Match) MatchDTO {
	return MatchDTO{Matched: m.Matched, EmployeeID: m.EmployeeID, Distance: m.Distance}
}

// Register mounts ident endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[CreateEmployeeInput](r, "/employees", h.create)
	httpkit.Get(r, "/employees", h.list)
	httpkit.PostJSON[EnrollInput](r, "/employees/enroll", h.enroll)
	httpkit.PostJSON[DeactivateInput](r, "/employees/deactivate", h.deactivate)
	httpkit.PostJSON[MatchInput](r, "/match", h.match)
}

type handlers struct{ svc *svc.Service }

func (h *handlers) create(r *stdhttp.Request, in CreateEmployeeInput) (any, error) {
	e, err := h.svc.CreateEmployee(r.Context(), in.FullName, in.ShiftID)
	if err != nil {
		return nil, err
	}
	return toEmployeeDTO(e), nil
}

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	es, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeDTO, 0, len(es))
	for _, e := range es {
		out = append(out, toEmployeeDTO(e))
	}
	return out, nil
}

func (h *handlers) enroll(r *stdhttp.Request, in EnrollInput) (any, error) {
	if err := h.svc.Enroll(r.Context(), in.EmployeeID, domain.Descriptor(in.Descriptor)); err != nil {
		return nil, err
	}
	return map[string]string{"status": "enrolled"}, nil
}

func (h *handlers) deactivate(r *stdhttp.Request, in DeactivateInput) (any, error) {
	if err := h.svc.Deactivate(r.Context(), in.EmployeeID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "deactivated"}, nil
}

func (h *handlers) match(r *stdhttp.Request, in MatchInput) (any, error) {
	m, err := h.svc.FindBestMatch(r.Context(), domain.Descriptor(in.Descriptor), in.Threshold)
	if err != nil {
		return nil, err
	}
	return toMatchDTO(m), nil
}
