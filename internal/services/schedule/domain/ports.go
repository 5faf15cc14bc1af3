package domain

import "context"

// ReaderPort reads shift definitions
// the attendance reconciler reads a shift once per reconciliation call
type ReaderPort interface {
	GetShift(ctx context.Context, id string) (Shift, error)
	ListShifts(ctx context.Context) ([]Shift, error)
}

// WriterPort creates shift definitions
type WriterPort interface {
	CreateShift(ctx context.Context, name string, clockIn, clockOut MinuteOfDay) (Shift, error)
}
