package patients

import "context"

// Repository port (interface for persistence)
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	Get(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Delete(ctx context.Context, id int64) error
}
