package out

import "context"

type Store interface {
	Load(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, values map[string]bool) error
}
