package analysis

import "context"

// Generator port: single best-effort call to a hosted text-generation model.
// Returns the raw decoded reply plus provider-reported token usage.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, Usage, error)
	Model() string
}

// ArchiveStore port for keeping raw model replies around for auditing.
// Optional; a nil store disables archiving.
type ArchiveStore interface {
	PutReply(ctx context.Context, key string, body []byte) (string, error)
}
