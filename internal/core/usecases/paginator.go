package usecases

import (
	"context"
	"fmt"

	"yt_view_extractor/internal/core/domain"
)

// PageFetcher fetches the page identified by pageToken ("" for the first page).
type PageFetcher[T any] func(ctx context.Context, pageToken string) (domain.Page[T], error)

// Paginate walks a cursor-based listing until a page comes back without a next
// token, handing each page's items to visit. It returns the number of pages fetched.
func Paginate[T any](ctx context.Context, fetch PageFetcher[T], visit func(items []T) error) (int, error) {
	pageToken := ""
	pages := 0

	for {
		page, err := fetch(ctx, pageToken)
		if err != nil {
			return pages, fmt.Errorf("error while fetching page %d: %w", pages+1, err)
		}
		pages++

		if err := visit(page.Items); err != nil {
			return pages, err
		}

		if page.NextPageToken == "" {
			break
		}

		pageToken = page.NextPageToken
	}

	return pages, nil
}
