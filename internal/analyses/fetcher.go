package analyses

import "context"

// Fetcher reads analyses from the backend.
type Fetcher interface {
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	// Latest returns the user's most recent analysis, or nil when there is none.
	Latest(ctx context.Context) (*Analysis, error)
}
