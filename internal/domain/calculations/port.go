package calculations

import "context"

// Repository port: unconditional overwrite-put keyed by record id.
// No read, query, or delete — consumers of the stored data live elsewhere.
type Repository interface {
	Put(ctx context.Context, rec *Record) error
}
