// Package service provides the ident service implementation
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/modkit/repokit"
	perr "timeclock/internal/platform/errors"
	"timeclock/internal/services/ident/domain"
	"timeclock/internal/services/ident/repo"
)

// Match index selectors
const (
	IndexLinear = "linear"
	IndexHNSW   = "hnsw"
)

// Threshold bounds for a descriptor lookup
const (
	MinThreshold = 0.2
	MaxThreshold = 1.0
)

// Config carries matcher tunables
type Config struct {
	// DefaultThreshold is used when a caller passes zero
	DefaultThreshold float64
	// MatchIndex selects linear scan or the in-memory hnsw graph
	MatchIndex string
	// HNSWM bounds neighbors per graph node
	HNSWM int
}

// Service implements domain.MatcherPort and domain.DirectoryPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config

	index *hnswIndex
}

// New constructs an ident service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("ident.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ident.Service requires a non nil Repo binder")
	}
	if cfg.DefaultThreshold == 0 {
		cfg.DefaultThreshold = 0.6
	}
	if cfg.MatchIndex == "" {
		cfg.MatchIndex = IndexLinear
	}
	if cfg.HNSWM <= 0 {
		cfg.HNSWM = 16
	}
	s := &Service{DB: db, Binder: binder, Cfg: cfg}
	if cfg.MatchIndex == IndexHNSW {
		s.index = newHNSWIndex(cfg.HNSWM)
	}
	return s
}

// FindBestMatch implements domain.MatcherPort
//
// The probe must be exactly domain.DescriptorDim long and the threshold
// must sit within [MinThreshold, MaxThreshold]. An empty candidate set
// is not an error, it yields Matched false.
func (s *Service) FindBestMatch(
	ctx context.Context,
	probe domain.Descriptor,
	threshold float64,
) (domain.Match, error) {
	if len(probe) != domain.DescriptorDim {
		return domain.NoMatch(), perr.InvalidArgf(
			"descriptor must have %d elements, got %d", domain.DescriptorDim, len(probe),
		)
	}
	if threshold == 0 {
		threshold = s.Cfg.DefaultThreshold
	}
	if threshold < MinThreshold || threshold > MaxThreshold {
		return domain.NoMatch(), perr.InvalidArgf(
			"threshold %.3f outside [%.1f, %.1f]", threshold, MinThreshold, MaxThreshold,
		)
	}

	cands, err := s.Binder.Bind(s.DB).ActiveCandidates(ctx)
	if err != nil {
		return domain.NoMatch(), err
	}
	if len(cands) == 0 {
		return domain.NoMatch(), nil
	}

	if s.index != nil {
		s.index.ensure(cands)
		return s.index.nearest(probe, threshold), nil
	}
	return bestLinear(cands, probe, threshold), nil
}

// bestLinear scans every candidate and keeps the strictly closer one,
// so on equal distance the lowest employee id wins because candidates
// arrive ordered by employee id
func bestLinear(cands []domain.Candidate, probe domain.Descriptor, threshold float64) domain.Match {
	best := domain.NoMatch()
	for _, c := range cands {
		if len(c.Descriptor) != len(probe) {
			continue
		}
		d := domain.EuclideanDistance(probe, c.Descriptor)
		if d > threshold {
			continue
		}
		if !best.Matched || d < best.Distance {
			best = domain.Match{EmployeeID: c.EmployeeID, Distance: d, Matched: true}
		}
	}
	return best
}

// CreateEmployee implements domain.DirectoryPort
func (s *Service) CreateEmployee(ctx context.Context, fullName, shiftID string) (domain.Employee, error) {
	if fullName == "" {
		return domain.Employee{}, perr.InvalidArgf("full name is required")
	}
	if shiftID == "" {
		return domain.Employee{}, perr.InvalidArgf("shift id is required")
	}
	e := domain.Employee{
		ID:        uuid.NewString(),
		FullName:  fullName,
		ShiftID:   shiftID,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Binder.Bind(s.DB).InsertEmployee(ctx, e); err != nil {
		return domain.Employee{}, err
	}
	return e, nil
}

// GetEmployee implements domain.DirectoryPort
func (s *Service) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	if id == "" {
		return domain.Employee{}, perr.InvalidArgf("employee id is required")
	}
	return s.Binder.Bind(s.DB).GetEmployee(ctx, id)
}

// ListEmployees implements domain.DirectoryPort
func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.Binder.Bind(s.DB).ListEmployees(ctx)
}

// Enroll implements domain.DirectoryPort
func (s *Service) Enroll(ctx context.Context, employeeID string, d domain.Descriptor) error {
	if employeeID == "" {
		return perr.InvalidArgf("employee id is required")
	}
	if len(d) != domain.DescriptorDim {
		return perr.InvalidArgf(
			"descriptor must have %d elements, got %d", domain.DescriptorDim, len(d),
		)
	}
	if _, err := s.Binder.Bind(s.DB).GetEmployee(ctx, employeeID); err != nil {
		return err
	}
	if err := s.Binder.Bind(s.DB).InsertDescriptor(ctx, uuid.NewString(), employeeID, d); err != nil {
		return err
	}
	if s.index != nil {
		s.index.invalidate()
	}
	return nil
}

// Deactivate implements domain.DirectoryPort
func (s *Service) Deactivate(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return perr.InvalidArgf("employee id is required")
	}
	if err := s.Binder.Bind(s.DB).SetActive(ctx, employeeID, false); err != nil {
		return err
	}
	if s.index != nil {
		s.index.invalidate()
	}
	return nil
}
