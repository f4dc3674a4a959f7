package transparency

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"adtransparency-backend/lib/restyutil"
	"adtransparency-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const staticUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client fetches portal pages over plain HTTP, without a browser.
// Useful for the parts of an advertiser page that render server side.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func NewClient() (*Client, error) {
	baseUrl, err := url.Parse(BaseURL)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", staticUserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/transparency/http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// PageSummary is a structural inventory of an advertiser page: the set
// of tag names in use and every image it references.
type PageSummary struct {
	Tags      []string
	ImageURLs []string
}

// FetchAdvertiserPage fetches an advertiser's page and summarizes its
// structure.
func (c *Client) FetchAdvertiserPage(ctx context.Context, advertiserID string, region string) (PageSummary, error) {
	ctx, span := tracer.Start(ctx, "client:FetchAdvertiserPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParam("region", region).
		Get(fmt.Sprintf("/advertiser/%s", advertiserID))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch advertiser page")
		return PageSummary{}, err
	}
	if res.StatusCode() != 200 {
		err = fmt.Errorf("failed to fetch advertiser page: HTTP %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return PageSummary{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return PageSummary{}, err
	}

	pageUrl := *c.BaseUrl
	pageUrl.Path = fmt.Sprintf("/advertiser/%s", advertiserID)
	return summarizePage(&pageUrl, doc), nil
}

func summarizePage(base *url.URL, doc *goquery.Document) PageSummary {
	tagSet := map[string]bool{}
	doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		tagSet[goquery.NodeName(el)] = true
	})

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var imageUrls []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}

		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			resolved, err := base.Parse(src)
			if err != nil {
				return
			}
			src = resolved.String()
		}
		imageUrls = append(imageUrls, src)
	})

	return PageSummary{
		Tags:      tags,
		ImageURLs: imageUrls,
	}
}
