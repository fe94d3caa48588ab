package usecases

import (
	"context"
	"fmt"
	"strings"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// ResolveChannel looks up the uploads playlist and display name of a channel.
func ResolveChannel(ctx context.Context, yt ports.YoutubePort, channelID string) (domain.Channel, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return domain.Channel{}, fmt.Errorf("channel id cannot be empty: %w", domain.ErrInvalidRequest)
	}

	channel, err := yt.GetChannel(ctx, channelID)
	if err != nil {
		return domain.Channel{}, err
	}

	if channel.UploadsPlaylistID == "" {
		return domain.Channel{}, fmt.Errorf("channel %s has no uploads playlist: %w", channelID, domain.ErrChannelNotFound)
	}

	return channel, nil
}
