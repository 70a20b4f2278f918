package repository

import (
	"context"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

// ContentRepository serves the static multilingual content bundled with the
// app: UI labels, the FAQ knowledge base and notices.
type ContentRepository interface {
	Labels(ctx context.Context) (map[string]entity.LocalizedText, error)
	FAQ(ctx context.Context, lang entity.Language) ([]entity.FAQEntry, error)
	Notices(ctx context.Context) ([]*entity.Notice, error)
}
