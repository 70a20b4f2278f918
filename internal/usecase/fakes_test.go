package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

type fakeAssistant struct {
	reply   string
	block   chan struct{}
	mu      sync.Mutex
	prompts []string
	langs   []entity.Language
}

func (f *fakeAssistant) GenerateReply(ctx context.Context, prompt string, lang entity.Language) string {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.langs = append(f.langs, lang)
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "Error connecting to AI assistant."
		}
	}
	return f.reply
}

func (f *fakeAssistant) Translate(ctx context.Context, text string) entity.Translation {
	return entity.Translation{Zh: "zh:" + text, En: "en:" + text}
}

func (f *fakeAssistant) ExtractAndTranslate(ctx context.Context, image []byte, mimeType string) entity.OCRResult {
	return entity.OCRResult{OriginalText: "영업중", ChineseText: "营业中", EnglishText: "Open"}
}

func (f *fakeAssistant) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type publishedEvent struct {
	evt        entity.Event
	recipients []string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakeNotifier) Publish(ctx context.Context, evt entity.Event, recipients ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{evt: evt, recipients: recipients})
	return nil
}

func (f *fakeNotifier) ofType(t entity.EventType) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.evt.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// denyLimiter rejects the listed actions and allows everything else.
type denyLimiter struct {
	deny map[string]bool
}

func (d denyLimiter) Allow(userID, action string) (bool, time.Duration) {
	if d.deny[action] {
		return false, 12 * time.Second
	}
	return true, 0
}

type fakeDirectory struct {
	profiles map[string]*entity.UserProfile
	calls    int
}

func (f *fakeDirectory) GetProfile(ctx context.Context, uid string) (*entity.UserProfile, error) {
	f.calls++
	p, ok := f.profiles[uid]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	c := *p
	return &c, nil
}
