// Package domain holds identity types shared across ident layers
package domain

import "time"

// DescriptorDim is the fixed length of a face descriptor
const DescriptorDim = 128

// Descriptor is a fixed-length face embedding
type Descriptor []float32

// Employee is a registered worker who can clock in and out
type Employee struct {
	ID        string
	FullName  string
	ShiftID   string
	Active    bool
	CreatedAt time.Time
}

// Candidate pairs an enrolled descriptor with its owner
type Candidate struct {
	EmployeeID string
	Descriptor Descriptor
}

// Match is the outcome of a descriptor lookup
// Matched false means no candidate came within the threshold
type Match struct {
	EmployeeID string
	Distance   float64
	Matched    bool
}

// NoMatch is the zero outcome for an empty or out-of-range lookup
func NoMatch() Match { return Match{} }
