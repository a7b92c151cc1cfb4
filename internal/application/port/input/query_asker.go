package input

import "context"

type QueryAsker interface {
	Ask(ctx context.Context, query string) (string, error)
}
