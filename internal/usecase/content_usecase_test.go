package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
)

func newTestContentUseCase(t *testing.T) *ContentUseCase {
	repo, err := repository.NewStaticContentRepository()
	require.NoError(t, err)
	return NewContentUseCase(repo)
}

func TestLabels(t *testing.T) {
	uc := newTestContentUseCase(t)

	zh, err := uc.Labels(context.Background(), entity.LangZH)
	require.NoError(t, err)
	assert.Equal(t, "二手交易", zh["nav_trade"])

	en, err := uc.Labels(context.Background(), entity.LangEN)
	require.NoError(t, err)
	assert.Equal(t, "Trade", en["nav_trade"])
}

func TestLabel_FallsBackToKey(t *testing.T) {
	uc := newTestContentUseCase(t)

	text, err := uc.Label(context.Background(), "nav_jobs", entity.LangKO)
	require.NoError(t, err)
	assert.Equal(t, "구인구직", text)

	text, err = uc.Label(context.Background(), "no_such_label", entity.LangZH)
	require.NoError(t, err)
	assert.Equal(t, "no_such_label", text)
}

func TestNotices_ResolvedInLanguage(t *testing.T) {
	uc := newTestContentUseCase(t)

	notices, err := uc.Notices(context.Background(), entity.LangZH)
	require.NoError(t, err)
	require.NotEmpty(t, notices)
	assert.Equal(t, "上线", notices[0].Title)
	assert.Equal(t, "C-韩国连接正式上线。", notices[0].Content)
}
