package prescriptions

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	Get(ctx context.Context, id int64) (*Prescription, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Prescription, error)
}
