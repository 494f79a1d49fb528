// Package warmcli is the client library for the prewarm daemon. It talks
// JSON-RPC 2.0 to the daemon's HTTP bridge and can subscribe to warming
// event notifications over the daemon's websocket stream.
package warmcli

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
)

// Client is a connection to a running prewarm daemon.
type Client struct {
	rpc *jrpc2.Client
	ch  *jhttp.Channel

	baseURL string
	secret  string
	hc      *http.Client
}

// Options tunes the daemon connection. The zero value is usable.
type Options struct {
	// HTTPClient overrides the transport used for RPC calls.
	HTTPClient *http.Client
}

// NewClient connects to the daemon's RPC endpoint rooted at baseURL,
// e.g. "http://127.0.0.1:4661". The secret is sent as a bearer token
// with every request.
func NewClient(baseURL, secret string, opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	baseURL = strings.TrimRight(baseURL, "/")
	ch := jhttp.NewChannel(baseURL+"/rpc", &jhttp.ChannelOptions{
		Client: &bearerHTTPClient{client: hc, secret: secret},
	})
	return &Client{
		rpc:     jrpc2.NewClient(ch, nil),
		ch:      ch,
		baseURL: baseURL,
		secret:  secret,
		hc:      hc,
	}
}

// invoke calls a daemon method and decodes the typed result.
func invoke[T any](ctx context.Context, c *Client, method string, params any) (*T, error) {
	var result T
	if err := c.rpc.CallResult(ctx, method, params, &result); err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", method, err)
	}
	return &result, nil
}

// Close terminates the RPC connection. The client cannot be reused.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// bearerHTTPClient attaches the daemon secret to every outgoing request.
// The request is cloned before mutation so retries see a clean copy.
type bearerHTTPClient struct {
	client *http.Client
	secret string
}

func (b *bearerHTTPClient) Do(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if b.secret != "" {
		r.Header.Set("Authorization", "Bearer "+b.secret)
	}
	return b.client.Do(r)
}
