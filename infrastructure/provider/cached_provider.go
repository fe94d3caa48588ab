package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"yt_view_extractor/infrastructure/cache"
	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// TTLs sets how long each kind of response is reused.
type TTLs struct {
	Channel time.Duration
	Listing time.Duration
}

func DefaultTTLs() TTLs {
	return TTLs{
		Channel: 60 * time.Minute,
		Listing: 30 * time.Minute,
	}
}

type cachedProvider struct {
	inner ports.YoutubePort
	cache ports.CachePort
	scope string
	ttl   TTLs
	log   ports.LoggerPort
}

// NewCachedProvider serves repeated calls from c. scope separates entries made
// with different credentials and must not contain the secret itself.
func NewCachedProvider(inner ports.YoutubePort, c ports.CachePort, scope string, ttl TTLs, logger ports.LoggerPort) ports.YoutubePort {
	return &cachedProvider{
		inner: inner,
		cache: c,
		scope: scope,
		ttl:   ttl,
		log:   logger,
	}
}

func (p *cachedProvider) GetChannel(ctx context.Context, channelID string) (domain.Channel, error) {
	key := cache.Key("channels", p.scope, channelID)
	return cached(ctx, p, key, p.ttl.Channel, func() (domain.Channel, error) {
		return p.inner.GetChannel(ctx, channelID)
	})
}

func (p *cachedProvider) ListUploads(ctx context.Context, playlistID, pageToken string) (domain.Page[domain.UploadItem], error) {
	key := cache.Key("playlistItems", p.scope, playlistID, pageToken)
	return cached(ctx, p, key, p.ttl.Listing, func() (domain.Page[domain.UploadItem], error) {
		return p.inner.ListUploads(ctx, playlistID, pageToken)
	})
}

func (p *cachedProvider) SearchVideos(ctx context.Context, query, pageToken string) (domain.Page[domain.SearchHit], error) {
	key := cache.Key("search", p.scope, query, pageToken)
	return cached(ctx, p, key, p.ttl.Listing, func() (domain.Page[domain.SearchHit], error) {
		return p.inner.SearchVideos(ctx, query, pageToken)
	})
}

func (p *cachedProvider) GetVideoDetails(ctx context.Context, videoIDs []string) ([]domain.VideoDetail, error) {
	key := cache.Key("videos", p.scope, strings.Join(videoIDs, ","))
	return cached(ctx, p, key, p.ttl.Listing, func() ([]domain.VideoDetail, error) {
		return p.inner.GetVideoDetails(ctx, videoIDs)
	})
}

func cached[T any](ctx context.Context, p *cachedProvider, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if raw, ok := p.cache.Get(ctx, key); ok {
		var value T
		err := json.Unmarshal(raw, &value)
		if err == nil {
			return value, nil
		}
		p.log.Error("error while decoding cached response", err)
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		p.log.Error("error while encoding response for cache", err)
		return value, nil
	}

	p.cache.Set(ctx, key, raw, ttl)

	return value, nil
}
