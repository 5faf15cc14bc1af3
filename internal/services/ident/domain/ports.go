package domain

import "context"

// MatcherPort resolves a probe descriptor to the closest enrolled employee
type MatcherPort interface {
	// FindBestMatch returns the nearest enrolled candidate within threshold
	// a zero threshold selects the configured default
	FindBestMatch(ctx context.Context, probe Descriptor, threshold float64) (Match, error)
}

// DirectoryPort manages the employee roster and enrolled descriptors
type DirectoryPort interface {
	CreateEmployee(ctx context.Context, fullName, shiftID string) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	Enroll(ctx context.Context, employeeID string, d Descriptor) error
	Deactivate(ctx context.Context, employeeID string) error
}
