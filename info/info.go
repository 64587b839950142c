// Package info retrieves venue metadata over the REST API.
package info

import (
	"context"

	"github.com/corvan/hl-prepare/rest"
)

// Info fetches the metadata feeds that describe the venue's tradable
// universe. It holds no state beyond the transport; callers snapshot
// the feeds once and build their own lookup structures.
type Info struct {
	rest rest.ClientInterface
}

// Config for initializing the Info client
type Config struct {
	BaseURL string
	Timeout uint
}

// New creates a new Info client
func New(cfg Config) *Info {
	client := rest.New(rest.Config{
		BaseUrl: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})

	return &Info{rest: client}
}

// NewWithClient creates an Info client on an existing transport.
func NewWithClient(client rest.ClientInterface) *Info {
	return &Info{rest: client}
}

// Meta retrieves exchange metadata for perpetuals.
func (i *Info) Meta(ctx context.Context, dex string) (*Meta, error) {
	result, err := rest.Post[Meta](
		ctx,
		i.rest,
		"/info",
		map[string]any{
			"type": "meta",
			"dex":  dex,
		},
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SpotMeta retrieves exchange metadata for spot trading.
func (i *Info) SpotMeta(ctx context.Context) (*SpotMeta, error) {
	result, err := rest.Post[SpotMeta](
		ctx,
		i.rest,
		"/info",
		map[string]any{
			"type": "spotMeta",
		},
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
