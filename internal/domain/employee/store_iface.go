package employee

import "context"

type StoreAPI interface {
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Upsert(ctx context.Context, emp Employee) error
}
