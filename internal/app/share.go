package app

import (
	"context"
	"log"
	"strings"

	"github.com/five82/linksaver/internal/config"
)

// Share saves text handed over by another program as a link and returns
// the one notice to show before exiting.
func Share(ctx context.Context, settings config.Settings, text string, build ClientFactory) Notice {
	link := strings.TrimSpace(text)
	if link == "" {
		return Describe(OpShare, ErrNothingToShare)
	}
	if build == nil {
		build = DefaultClientFactory
	}
	client, err := build(settings)
	if err != nil {
		return Describe(OpShare, err)
	}
	if _, err := client.AddLink(ctx, link); err != nil {
		log.Printf("share failed: %v", err)
		return Describe(OpShare, err)
	}
	return Describe(OpShare, nil)
}
