package repository

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
)

//go:embed content/*.yaml
var contentFS embed.FS

type staticContentRepository struct {
	labels  map[string]entity.LocalizedText
	faq     map[entity.Language][]entity.FAQEntry
	notices []*entity.Notice
}

// NewStaticContentRepository parses the bundled content files once.
func NewStaticContentRepository() (repository.ContentRepository, error) {
	r := &staticContentRepository{}
	if err := decodeContent("content/labels.yaml", &r.labels); err != nil {
		return nil, err
	}
	if err := decodeContent("content/faq.yaml", &r.faq); err != nil {
		return nil, err
	}
	if err := decodeContent("content/notices.yaml", &r.notices); err != nil {
		return nil, err
	}

	sort.SliceStable(r.notices, func(i, j int) bool {
		return r.notices[i].CreatedAt.After(r.notices[j].CreatedAt)
	})
	return r, nil
}

func decodeContent(name string, out interface{}) error {
	data, err := contentFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (r *staticContentRepository) Labels(ctx context.Context) (map[string]entity.LocalizedText, error) {
	out := make(map[string]entity.LocalizedText, len(r.labels))
	for k, v := range r.labels {
		out[k] = v
	}
	return out, nil
}

// FAQ returns the entries for lang, or the Korean set when lang has none.
func (r *staticContentRepository) FAQ(ctx context.Context, lang entity.Language) ([]entity.FAQEntry, error) {
	entries, ok := r.faq[lang]
	if !ok || len(entries) == 0 {
		entries = r.faq[entity.DefaultLanguage]
	}
	return append([]entity.FAQEntry(nil), entries...), nil
}

func (r *staticContentRepository) Notices(ctx context.Context) ([]*entity.Notice, error) {
	out := make([]*entity.Notice, len(r.notices))
	for i, n := range r.notices {
		c := *n
		out[i] = &c
	}
	return out, nil
}
