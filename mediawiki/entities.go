package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/c360studio/wikipatch/wikidata"
)

// maxEntityIDs is the largest id batch wbgetentities accepts.
const maxEntityIDs = 50

// GetEntities fetches up to 50 entities by id. The returned map holds
// an entry for every requested id; ids the API reports missing or
// deleted carry an entity with Missing set.
// https://www.wikidata.org/w/api.php?action=help&modules=wbgetentities
func (c *Client) GetEntities(ctx context.Context, ids []string) (map[string]*wikidata.Entity, error) {
	if len(ids) == 0 {
		return nil, errors.New("at least one entity id is required")
	}
	if len(ids) > maxEntityIDs {
		return nil, fmt.Errorf("at most %d entity ids per call, got %d", maxEntityIDs, len(ids))
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, "|"))

	var resp struct {
		Entities map[string]json.RawMessage `json:"entities"`
		Success  int                        `json:"success"`
	}
	if err := c.do(ctx, http.MethodGet, "wbgetentities", params, &resp); err != nil {
		return nil, err
	}
	if resp.Success != 1 {
		return nil, errors.New("wbgetentities did not report success")
	}

	out := make(map[string]*wikidata.Entity, len(ids))
	for _, id := range ids {
		raw, ok := resp.Entities[id]
		if !ok {
			c.logger.Warn("entity absent from lookup response", "entity", id)
			out[id] = &wikidata.Entity{ID: id, Missing: true}
			continue
		}
		var probe struct {
			Missing *string `json:"missing"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("decoding entity %s: %w", id, err)
		}
		if probe.Missing != nil {
			out[id] = &wikidata.Entity{ID: id, Missing: true}
			continue
		}
		entity := new(wikidata.Entity)
		if err := json.Unmarshal(raw, entity); err != nil {
			return nil, fmt.Errorf("decoding entity %s: %w", id, err)
		}
		out[id] = entity
	}
	return out, nil
}

// EditData is the payload of one wbeditentity call.
type EditData struct {
	Labels       map[string]wikidata.LanguageValue `json:"labels,omitempty"`
	Descriptions map[string]wikidata.LanguageValue `json:"descriptions,omitempty"`
	Claims       []*wikidata.Statement             `json:"claims,omitempty"`
}

// EditEntity submits an entity edit as a bot. Lagged requests sleep and
// retry; an expired bot session re-logins once per attempt. Attempts
// are bounded by the client's retry budget.
// https://www.wikidata.org/w/api.php?action=help&modules=wbeditentity
func (c *Client) EditEntity(ctx context.Context, entityID string, data EditData, baseRevID int64, summary string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding edit data: %w", err)
	}

	for attempt := 0; attempt < c.editRetries; attempt++ {
		c.mu.Lock()
		token := c.csrfToken
		c.mu.Unlock()

		params := url.Values{}
		params.Set("id", entityID)
		params.Set("token", token)
		params.Set("bot", "1")
		params.Set("assert", "bot")
		params.Set("data", string(payload))
		if baseRevID != 0 {
			params.Set("baserevid", strconv.FormatInt(baseRevID, 10))
		}
		if summary != "" {
			params.Set("summary", summary)
		}

		var resp struct {
			Success int `json:"success"`
		}
		err := c.do(ctx, http.MethodPost, "wbeditentity", params, &resp)
		if err == nil {
			if resp.Success == 1 {
				return nil
			}
			continue
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		switch apiErr.Code {
		case "maxlag":
			c.logger.Warn("server lagged, waiting to retry",
				"entity", entityID, "wait", c.maxLagWait)
			if err := sleep(ctx, c.maxLagWait); err != nil {
				return err
			}
		case "assertbotfailed":
			c.logger.Warn("bot session expired, logging in again", "entity", entityID)
			if err := c.login(ctx); err != nil {
				return fmt.Errorf("re-login: %w", err)
			}
		default:
			return err
		}
	}
	return fmt.Errorf("editing %s: out of retries", entityID)
}
