package nutrislice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/components/assert"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch_week = "client.fetch-week"
)

const (
	DefaultApiBaseUrl  = "https://stonybrook.api.nutrislice.com"
	DefaultMenuBaseUrl = "https://stonybrook.nutrislice.com"
	DefaultTimeout     = 25 * time.Second
	UserAgent          = "Mozilla/5.0 (SBU Student Project)"
)

var tracer = otel.Tracer("seawolf-dine/nutrislice")

type Options struct {
	// ApiBaseUrl defaults to DefaultApiBaseUrl.
	ApiBaseUrl string
	// MenuBaseUrl defaults to DefaultMenuBaseUrl.
	MenuBaseUrl string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	// CloudflareBypass wraps the transport so requests look like a real browser.
	CloudflareBypass bool
	// HttpOutput, if set, receives a dump of every http exchange.
	HttpOutput telemetry.HttpOutput
}

// Client fetches weeks of menus from the nutrislice api.
type Client struct {
	http        *resty.Client
	apiBaseUrl  string
	menuBaseUrl string
	tel         telemetry.API
}

func NewClient(opts Options, tel telemetry.API) *Client {
	assert.NotNil("telemetry", tel)

	tel = telemetry.NewScopedAPI("nutrislice", tel)

	if opts.ApiBaseUrl == "" {
		opts.ApiBaseUrl = DefaultApiBaseUrl
	}
	if opts.MenuBaseUrl == "" {
		opts.MenuBaseUrl = DefaultMenuBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeader("User-Agent", UserAgent)
	httpClient.SetHeader("Accept", "application/json")
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	// max burst >= rps just means that no requests will be dropped
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, opts.HttpOutput)

	return &Client{
		http:        httpClient,
		apiBaseUrl:  strings.TrimSuffix(opts.ApiBaseUrl, "/"),
		menuBaseUrl: strings.TrimSuffix(opts.MenuBaseUrl, "/"),
		tel:         tel,
	}
}

// WeekURL is the url of the week of menus containing `date`.
func (c *Client) WeekURL(school, menuType string, date time.Time) string {
	return fmt.Sprintf(
		"%s/menu/api/weeks/school/%s/menu-type/%s/%04d/%02d/%02d/?format=json",
		c.apiBaseUrl,
		url.PathEscape(school),
		url.PathEscape(menuType),
		date.Year(),
		int(date.Month()),
		date.Day(),
	)
}

// MenuPageURL is the human readable menu page of `date`.
func (c *Client) MenuPageURL(school, menuType string, date time.Time) string {
	return fmt.Sprintf(
		"%s/menu/%s/%s/%s",
		c.menuBaseUrl,
		url.PathEscape(school),
		url.PathEscape(menuType),
		date.Format(time.DateOnly),
	)
}

// FetchWeek requests the week of menus containing `date`. The returned error is
// either a *TransportError or a *ParseError.
func (c *Client) FetchWeek(ctx context.Context, school, menuType string, date time.Time) (Week, error) {
	endpoint := c.WeekURL(school, menuType, date)

	ctx, span := tracer.Start(ctx, "FetchWeek", trace.WithAttributes(
		attribute.String("nutrislice.school", school),
		attribute.String("nutrislice.menu_type", menuType),
		attribute.String("nutrislice.date", date.Format(time.DateOnly)),
	))
	defer span.End()

	c.tel.ReportDebug(report_client_fetch_week, endpoint)

	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		err = &TransportError{Url: endpoint, Err: err}
		c.tel.ReportBroken(report_client_fetch_week, err)
		span.SetStatus(codes.Error, err.Error())
		return Week{}, err
	}
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if res.IsError() {
		err = &TransportError{Url: endpoint, Status: res.StatusCode()}
		c.tel.ReportWarning(report_client_fetch_week, err)
		span.SetStatus(codes.Error, err.Error())
		return Week{}, err
	}

	var week Week
	err = json.Unmarshal(res.Body(), &week)
	if err != nil {
		err = &ParseError{Url: endpoint, Err: err}
		c.tel.ReportBroken(report_client_fetch_week, err)
		span.SetStatus(codes.Error, err.Error())
		return Week{}, err
	}

	span.SetAttributes(attribute.Int("nutrislice.days", len(week.Days)))
	return week, nil
}
