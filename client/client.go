// Package client queries the catalog listing endpoint and maps its records
// into display models. A failed query never returns an error to the
// caller: it yields the empty result with Err set.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/catalog"
	"github.com/pkg/errors"
)

// Defaults applied to an unset Query.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Query is one paged listing request. Category and Keyword are omitted from
// the request when empty.
type Query struct {
	Page     int
	PageSize int
	Category string
	Keyword  string
}

// Result is one page of display models.
type Result struct {
	Models     []Model `json:"data"`
	Total      int64   `json:"total"`
	Page       int64   `json:"page"`
	PageSize   int64   `json:"pageSize"`
	TotalPages int64   `json:"totalPages"`

	// Err is set when the result is the empty fallback of a failed query.
	Err error `json:"-"`
}

// emptyResult is returned for any failed query.
func emptyResult(err error) Result {
	return Result{
		Models:     []Model{},
		Page:       DefaultPage,
		PageSize:   DefaultPageSize,
		TotalPages: 0,
		Err:        err,
	}
}

// Client is a catalog listing client.
type Client struct {
	base   string
	hc     *http.Client
	logger gz.Logger
	hosts  []string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger sets the logger used to report failed queries. By default the
// logger in the request context is used.
func WithLogger(l gz.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithFileServerHosts sets the file-server origins stripped from record
// URLs.
func WithFileServerHosts(hosts ...string) Option {
	return func(c *Client) { c.hosts = hosts }
}

// NewClient returns a client for the backend at base, eg. "/api" behind the
// gallery proxy or "http://10.213.19.130:9090".
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimSuffix(base, "/"),
		hc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// escape encodes a query value the way browsers' encodeURIComponent does.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ListURL returns the listing URL for q.
func (c *Client) ListURL(q Query) string {
	q = q.normalized()
	u := fmt.Sprintf("%s/search/list?pageNum=%d&pageSize=%d", c.base, q.Page, q.PageSize)
	if q.Category != "" {
		u += "&category=" + escape(q.Category)
	}
	if q.Keyword != "" {
		u += "&keyword=" + escape(q.Keyword)
	}
	return u
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// List fetches one page. Transport errors, undecodable bodies and envelopes
// with a code other than "200" are logged and turned into the empty result.
func (c *Client) List(ctx context.Context, q Query) Result {
	env, err := c.fetch(ctx, c.ListURL(q))
	if err != nil {
		c.log(ctx).Error("Error fetching models:", err)
		return emptyResult(err)
	}
	if !env.OK() {
		err := errors.Errorf("listing failed with code %q: %s", env.Code, env.Msg)
		c.log(ctx).Error("Listing returned an error:", env.Msg)
		return emptyResult(err)
	}

	models := make([]Model, 0, len(env.Data.Records))
	for _, r := range env.Data.Records {
		models = append(models, FromRecord(r, c.hosts...))
	}
	return Result{
		Models:     models,
		Total:      env.Data.Total,
		Page:       env.Data.Current,
		PageSize:   env.Data.Size,
		TotalPages: env.Data.Pages,
	}
}

func (c *Client) fetch(ctx context.Context, u string) (*catalog.Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building listing request")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting listing")
	}
	defer resp.Body.Close()

	var env catalog.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errors.Wrapf(err, "decoding listing response (%s)", resp.Status)
	}
	return &env, nil
}

func (c *Client) log(ctx context.Context) gz.Logger {
	if c.logger != nil {
		return c.logger
	}
	return gz.LoggerFromContext(ctx)
}
