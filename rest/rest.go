// Package rest provides core functions for
// network requests to Hyperliquid API endpoints
package rest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corvan/hl-prepare/constants"
	"github.com/go-resty/resty/v2"
	"github.com/samber/mo"
)

type Client struct {
	baseUrl string
	timeout mo.Option[uint]
}

// ClientInterface defines the contract for REST API calls
type ClientInterface interface {
	Post(ctx context.Context, path string, body any, result any) error
	BaseUrl() string
	IsMainnet() bool
	NetworkName() string
}

type Config struct {
	// BaseUrl is the base URL for the Hyperliquid API
	// If none is provided, the mainnet url will be used
	BaseUrl string
	// Timeout is the timeout for network requests
	// If none is provided, no timeout will be enforced
	Timeout uint
}

// New creates a new client instance with the
// provided configuration.
func New(c Config) *Client {
	var baseUrl string = c.BaseUrl
	var timeout mo.Option[uint]

	if c.BaseUrl == "" {
		baseUrl = constants.MAINNET_API_URL
	}
	if c.Timeout != 0 {
		timeout = mo.Some(c.Timeout)
	}

	client := &Client{
		baseUrl: baseUrl,
		timeout: timeout,
	}

	return client
}

// BaseUrl returns the base URL this client targets.
func (c *Client) BaseUrl() string {
	return c.baseUrl
}

// IsMainnet reports whether the client targets the mainnet API.
// Any base URL other than the public testnet is treated as mainnet,
// matching the venue's signing rules for local deployments.
func (c *Client) IsMainnet() bool {
	return c.baseUrl != constants.TESTNET_API_URL
}

// NetworkName returns the chain name the venue expects inside
// user-signed actions: "Mainnet" or "Testnet".
func (c *Client) NetworkName() string {
	if c.IsMainnet() {
		return "Mainnet"
	}
	return "Testnet"
}

// Post sends a POST request to the specified path with the provided body.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body any,
	result any,
) error {
	r := resty.
		New().
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	url := c.baseUrl + path

	// Apply timeout to context if specified
	if timeout, ok := c.timeout.Get(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	resp, err := r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(url)

	if err != nil {
		return err
	}

	if err := handleException(resp); err != nil {
		return err
	}

	return nil
}

// Post sends a POST request and decodes the response into T. It works
// against any ClientInterface, so fakes pass through it too.
func Post[T any](
	ctx context.Context,
	c ClientInterface,
	path string,
	body any,
) (T, error) {
	var result T
	if err := c.Post(ctx, path, body, &result); err != nil {
		return result, err
	}
	return result, nil
}
