package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sosodev/duration"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"yt_view_extractor/infrastructure/token_manager"
	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// maxResults is the largest page size the list endpoints accept.
const maxResults = 50

type youtubeProvider struct {
	credential   domain.Credential
	tokenService token_manager.TokenService
	log          ports.LoggerPort
	opts         []option.ClientOption
	service      *youtube.Service
	mu           sync.Mutex
}

// NewYoutubeProvider authenticates with the API key of cred, or with the stored
// OAuth token when the key is empty. Extra options are passed to youtube.NewService.
func NewYoutubeProvider(cred domain.Credential, tokenService token_manager.TokenService, logger ports.LoggerPort, opts ...option.ClientOption) ports.YoutubePort {
	return &youtubeProvider{
		credential:   cred,
		tokenService: tokenService,
		log:          logger,
		opts:         opts,
	}
}

func (s *youtubeProvider) getYoutubeService(ctx context.Context) (*youtube.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service, nil
	}

	opts := append([]option.ClientOption{}, s.opts...)

	if !s.credential.IsZero() {
		opts = append(opts, option.WithAPIKey(s.credential.APIKey))
	} else {
		if s.tokenService == nil {
			return nil, domain.ErrMissingCredential
		}

		token, err := s.tokenService.LoadToken()
		if err != nil {
			s.log.Error("error while load token", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrMissingCredential, err)
		}

		s.log.Info("Load token completed")
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube service", err)
		return nil, fmt.Errorf("error while create youtube service: %w", err)
	}

	s.service = service
	s.log.Info("Create youtube service completed for " + s.credential.String())

	return service, nil
}

func (s *youtubeProvider) GetChannel(ctx context.Context, channelID string) (domain.Channel, error) {
	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return domain.Channel{}, err
	}

	response, err := service.Channels.List([]string{"contentDetails", "snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return domain.Channel{}, classifyError("channels.list", err)
	}

	if len(response.Items) == 0 {
		s.log.Warning("No items found for channel ID: " + channelID)
		return domain.Channel{}, fmt.Errorf("no items found for channel ID %s: %w", channelID, domain.ErrChannelNotFound)
	}

	item := response.Items[0]
	channel := domain.Channel{ID: item.Id}

	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	return channel, nil
}

func (s *youtubeProvider) ListUploads(ctx context.Context, playlistID, pageToken string) (domain.Page[domain.UploadItem], error) {
	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return domain.Page[domain.UploadItem]{}, err
	}

	call := service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return domain.Page[domain.UploadItem]{}, classifyError("playlistItems.list", err)
	}

	items := make([]domain.UploadItem, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ContentDetails == nil {
			continue
		}

		items = append(items, domain.UploadItem{
			VideoID:     item.ContentDetails.VideoId,
			PublishedAt: parseTimestamp(item.ContentDetails.VideoPublishedAt),
		})
	}

	return domain.Page[domain.UploadItem]{Items: items, NextPageToken: response.NextPageToken}, nil
}

func (s *youtubeProvider) SearchVideos(ctx context.Context, query, pageToken string) (domain.Page[domain.SearchHit], error) {
	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return domain.Page[domain.SearchHit]{}, err
	}

	call := service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return domain.Page[domain.SearchHit]{}, classifyError("search.list", err)
	}

	hits := make([]domain.SearchHit, 0, len(response.Items))
	for _, item := range response.Items {
		hit := domain.SearchHit{}
		if item.Id != nil {
			hit.VideoID = item.Id.VideoId
		}
		if item.Snippet != nil {
			hit.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		}
		hits = append(hits, hit)
	}

	return domain.Page[domain.SearchHit]{Items: hits, NextPageToken: response.NextPageToken}, nil
}

func (s *youtubeProvider) GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return nil, err
	}

	response, err := service.Videos.List([]string{"statistics", "snippet", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyError("videos.list", err)
	}

	details := make([]domain.VideoDetail, 0, len(response.Items))
	for _, item := range response.Items {
		detail := domain.VideoDetail{ID: item.Id}

		if item.Snippet != nil {
			detail.Title = item.Snippet.Title
			detail.Description = item.Snippet.Description
			detail.ChannelTitle = item.Snippet.ChannelTitle
			detail.PublishedAt = parseTimestamp(item.Snippet.PublishedAt)
		}
		if item.Statistics != nil {
			detail.ViewCount = item.Statistics.ViewCount
		}
		if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
			parsed, err := duration.Parse(item.ContentDetails.Duration)
			if err != nil {
				s.log.Warning(fmt.Sprintf("error while parsing duration of video %s: %v", item.Id, err))
			} else {
				detail.Duration = parsed.ToTimeDuration()
			}
		}

		details = append(details, detail)
	}

	return details, nil
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

var quotaReasons = map[string]bool{
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// classifyError maps an API failure to ErrQuotaExceeded or ErrUpstream.
func classifyError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return fmt.Errorf("error in call youtube api %s: %w: %w", op, domain.ErrQuotaExceeded, err)
		}
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				return fmt.Errorf("error in call youtube api %s: %w: %w", op, domain.ErrQuotaExceeded, err)
			}
		}
	}

	return fmt.Errorf("error in call youtube api %s: %w: %w", op, domain.ErrUpstream, err)
}
