// Package collect talks to the job-board API: rate-limited, retried,
// paginated search plus per-vacancy detail fetches.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"hhscout-engine/internal/config"
)

const (
	maxRetries     = 3
	detailParallel = 4
)

type Client struct {
	baseURL   string
	userAgent string
	token     string
	httpc     *http.Client
	limiter   *rate.Limiter
}

// NewClient builds a client from the api config section. token may be
// empty; the public search endpoints work anonymously.
func NewClient(cfg config.Config, token string) *Client {
	return &Client{
		baseURL:   cfg.API.BaseURL,
		userAgent: cfg.API.UserAgent,
		token:     token,
		httpc: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.API.RequestsPerSecond), 1),
	}
}

// SearchParams mirror the API's vacancy search query.
type SearchParams struct {
	Text       string
	Area       *int
	Period     *int
	Experience string
	Employment string
	PerPage    int
	Page       int
}

// SearchPage is one page of search results. Items stay raw; summaries
// and detail records share the parser downstream.
type SearchPage struct {
	Items []json.RawMessage `json:"items"`
	Found int               `json:"found"`
	Pages int               `json:"pages"`
	Page  int               `json:"page"`
}

func (c *Client) SearchVacancies(ctx context.Context, p SearchParams) (SearchPage, error) {
	params := url.Values{}
	params.Set("text", p.Text)
	params.Set("per_page", strconv.Itoa(p.PerPage))
	params.Set("page", strconv.Itoa(p.Page))
	if p.Area != nil {
		params.Set("area", strconv.Itoa(*p.Area))
	}
	if p.Period != nil {
		params.Set("period", strconv.Itoa(*p.Period))
	}
	if p.Experience != "" {
		params.Set("experience", p.Experience)
	}
	if p.Employment != "" {
		params.Set("employment", p.Employment)
	}

	var page SearchPage
	body, err := c.get(ctx, "vacancies", params)
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("decode search page: %w", err)
	}
	return page, nil
}

func (c *Client) VacancyDetails(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "vacancies/"+url.PathEscape(id), nil)
}

// get performs one rate-limited GET with retries and exponential backoff.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Printf("[collect] request failed (attempt %d/%d): %v", attempt+1, maxRetries, err)
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GET %s: unexpected status %d", u, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// CollectAll walks the search pages up to maxPages, optionally swapping
// each summary for its full detail record. Detail fetches run in a small
// parallel group; a failed detail falls back to the summary item.
// onPage reports progress after each fetched page.
func (c *Client) CollectAll(ctx context.Context, p SearchParams, maxPages int, withDetails bool, onPage func(page, totalPages, collected int)) ([]json.RawMessage, error) {
	var all []json.RawMessage

	for page := 0; page < maxPages; page++ {
		p.Page = page
		result, err := c.SearchVacancies(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}
		if len(result.Items) == 0 {
			break
		}

		items := result.Items
		if withDetails {
			items = c.fetchDetails(ctx, items)
		}
		all = append(all, items...)

		if onPage != nil {
			onPage(page+1, result.Pages, len(all))
		}
		if page+1 >= result.Pages {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchDetails(ctx context.Context, summaries []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailParallel)

	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			var ref struct {
				ID json.Number `json:"id"`
			}
			if err := json.Unmarshal(summary, &ref); err != nil || ref.ID.String() == "" {
				out[i] = summary
				return nil
			}

			detail, err := c.VacancyDetails(gctx, ref.ID.String())
			if err != nil {
				log.Printf("[collect] details for vacancy %s failed, keeping summary: %v", ref.ID, err)
				out[i] = summary
				return nil
			}
			out[i] = detail
			return nil
		})
	}
	_ = g.Wait()
	return out
}
