package ports

import "context"

// FileStore persists profile pictures under a caller-chosen name.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
}
