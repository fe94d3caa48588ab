package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt_view_extractor/internal/core/domain"
)

func TestPaginate_FollowsTokensUntilEmpty(t *testing.T) {
	pages := pagesOf([]int{1, 2}, []int{3}, []int{4, 5})
	var tokens []string
	var got []int

	n, err := Paginate(context.Background(), func(_ context.Context, token string) (domain.Page[int], error) {
		tokens = append(tokens, token)
		return pages[pageIndex(token)], nil
	}, func(items []int) error {
		got = append(got, items...)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"", "p1", "p2"}, tokens)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestPaginate_SinglePageWithoutCursor(t *testing.T) {
	calls := 0
	n, err := Paginate(context.Background(), func(context.Context, string) (domain.Page[string], error) {
		calls++
		return domain.Page[string]{}, nil
	}, func([]string) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls)
}

func TestPaginate_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	pages := pagesOf([]int{1}, []int{2}, []int{3})

	n, err := Paginate(context.Background(), func(_ context.Context, token string) (domain.Page[int], error) {
		if token == "p1" {
			return domain.Page[int]{}, boom
		}
		return pages[pageIndex(token)], nil
	}, func([]int) error { return nil })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
}

func TestPaginate_VisitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	pages := pagesOf([]int{1}, []int{2})
	calls := 0

	_, err := Paginate(context.Background(), func(_ context.Context, token string) (domain.Page[int], error) {
		calls++
		return pages[pageIndex(token)], nil
	}, func([]int) error { return stop })

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
