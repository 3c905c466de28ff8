package mediawiki

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

var itemIDMentions = regexp.MustCompile(`Q[0-9]+`)

// PageItemIDs fetches a wiki page's plain-text extract and returns the
// set of item ids mentioned in it. Used to load the edit blocklist page.
// An empty title yields an empty set without a network round-trip.
func (c *Client) PageItemIDs(ctx context.Context, title string) (map[string]struct{}, error) {
	qids := make(map[string]struct{})
	if title == "" {
		return qids, nil
	}

	params := url.Values{}
	params.Set("titles", title)
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")

	var resp struct {
		Query struct {
			Pages map[string]struct {
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.do(ctx, http.MethodGet, "query", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching page %q: %w", title, err)
	}
	if len(resp.Query.Pages) != 1 {
		return nil, fmt.Errorf("fetching page %q: expected one page, got %d", title, len(resp.Query.Pages))
	}

	for _, page := range resp.Query.Pages {
		for _, qid := range itemIDMentions.FindAllString(page.Extract, -1) {
			qids[qid] = struct{}{}
		}
	}
	return qids, nil
}
