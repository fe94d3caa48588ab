package ports

import (
	"context"

	"yt_view_extractor/internal/core/domain"
)

// YoutubePort is the upstream Data API. Every method is one quota-consuming call.
type YoutubePort interface {
	GetChannel(ctx context.Context, channelID string) (domain.Channel, error)
	ListUploads(ctx context.Context, playlistID, pageToken string) (domain.Page[domain.UploadItem], error)
	SearchVideos(ctx context.Context, query, pageToken string) (domain.Page[domain.SearchHit], error)
	GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.VideoDetail, error)
}

// YoutubeOpener returns a YoutubePort bound to a credential.
type YoutubeOpener func(cred domain.Credential) YoutubePort
