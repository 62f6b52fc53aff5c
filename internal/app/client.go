package app

import (
	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
)

// ClientFactory builds an item client for a settings snapshot. It returns
// linkapi.ErrNotConfigured when the snapshot has no base URL.
type ClientFactory func(config.Settings) (linkapi.ItemService, error)

// BuildClient constructs a client from settings. A fresh client is built for
// every snapshot.
func BuildClient(s config.Settings) (*linkapi.Client, error) {
	if !s.Configured() {
		return nil, linkapi.ErrNotConfigured
	}
	return linkapi.NewClient(s.BaseURL, linkapi.Options{
		Username: s.Username,
		Password: s.Password,
	})
}

// DefaultClientFactory is BuildClient as a ClientFactory.
func DefaultClientFactory(s config.Settings) (linkapi.ItemService, error) {
	client, err := BuildClient(s)
	if err != nil {
		return nil, err
	}
	return client, nil
}
