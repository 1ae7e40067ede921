package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardslip/internal/domain/models"
)

type fakeRepo struct {
	values [][]interface{}
	err    error
	calls  int
}

func (f *fakeRepo) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	f.calls++
	return f.values, f.err
}

func catalogValues() [][]interface{} {
	return [][]interface{}{
		{"番号", "名前", "価格"},
		{"025/100", "ピカチュウ", float64(1200)},
		{"125", "ライチュウ", "￥2,400"},
	}
}

func TestServiceSearchRequiresQuery(t *testing.T) {
	svc := NewService(&fakeRepo{}, "A:Z", nil)

	_, err := svc.Search(context.Background(), "")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestServiceSearchUsesCachedSnapshot(t *testing.T) {
	repo := &fakeRepo{values: catalogValues()}
	svc := NewService(repo, "A:Z", nil)

	cards, err := svc.Search(context.Background(), "25")
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = svc.Search(context.Background(), "125")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second search must hit the cache")
}

func TestServiceNumericCellsStringified(t *testing.T) {
	repo := &fakeRepo{values: [][]interface{}{
		{"番号", "価格"},
		{float64(125), float64(1000000)},
	}}
	svc := NewService(repo, "A:Z", nil)

	cards, err := svc.Search(context.Background(), "125")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "125", cards[0].Number)
	assert.Equal(t, "1000000", cards[0].Price, "large numbers must not render in scientific notation")
}

func TestServiceRefreshRereads(t *testing.T) {
	repo := &fakeRepo{values: catalogValues()}
	svc := NewService(repo, "A:Z", nil)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestServiceSearchWrapsRepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("quota exceeded")}
	svc := NewService(repo, "A:Z", nil)

	_, err := svc.Search(context.Background(), "25")
	require.Error(t, err)
	assert.ErrorContains(t, err, "quota exceeded")
}
