package usecase

import (
	"context"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
)

type ContentUseCase struct {
	contentRepo repository.ContentRepository
}

func NewContentUseCase(contentRepo repository.ContentRepository) *ContentUseCase {
	return &ContentUseCase{contentRepo: contentRepo}
}

type NoticeView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Labels resolves the whole UI label catalog in lang.
func (uc *ContentUseCase) Labels(ctx context.Context, lang entity.Language) (map[string]string, error) {
	labels, err := uc.contentRepo.Labels(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(labels))
	for key, text := range labels {
		out[key] = labelText(text, key, lang)
	}
	return out, nil
}

// Label returns one label in lang, falling back to Korean and then to the
// key itself.
func (uc *ContentUseCase) Label(ctx context.Context, key string, lang entity.Language) (string, error) {
	labels, err := uc.contentRepo.Labels(ctx)
	if err != nil {
		return "", err
	}
	text, ok := labels[key]
	if !ok {
		return key, nil
	}
	return labelText(text, key, lang), nil
}

func labelText(text entity.LocalizedText, key string, lang entity.Language) string {
	if v := text.Get(lang); v != "" {
		return v
	}
	return key
}

func (uc *ContentUseCase) FAQ(ctx context.Context, lang entity.Language) ([]entity.FAQEntry, error) {
	return uc.contentRepo.FAQ(ctx, lang)
}

func (uc *ContentUseCase) Notices(ctx context.Context, lang entity.Language) ([]NoticeView, error) {
	notices, err := uc.contentRepo.Notices(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, NoticeView{
			ID:        n.ID,
			Title:     entity.Resolve(n, "title", lang),
			Content:   entity.Resolve(n, "content", lang),
			CreatedAt: n.CreatedAt,
		})
	}
	return views, nil
}
