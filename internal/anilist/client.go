// Package anilist is a read-only client for the AniList GraphQL API.
//
// Fetch failures (non-200 status, network errors, malformed bodies) are
// logged and surfaced to callers as empty results; absence of data is the
// uniform failure signal at this package's boundary.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public AniList GraphQL endpoint.
const DefaultBaseURL = "https://graphql.anilist.co"

// pageSize is the window for trending and popular rankings.
const pageSize = 50

// Client issues GraphQL queries against one AniList endpoint.
type Client struct {
	baseURL string
	logger  *slog.Logger
	http    *http.Client
}

// NewClient builds an AniList client; baseURL defaults to DefaultBaseURL if empty.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	if log == nil {
		log = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With(slog.String("client", "anilist")),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// PlanningList returns every entry, across all list segments, that username
// has marked planning. When minScore is positive, entries without a score and
// entries scoring below the threshold are dropped. Empty on fetch failure.
func (c *Client) PlanningList(ctx context.Context, username string, minScore int) []Media {
	var out mediaListCollectionResponse
	if err := c.post(ctx, planningQuery, map[string]any{"userName": username}, &out); err != nil {
		c.logger.Error("fetch planning list failed", slog.String("username", username), slog.Any("error", err))
		return nil
	}

	var result []Media
	for _, list := range out.Data.MediaListCollection.Lists {
		for _, entry := range list.Entries {
			media := entry.Media.toMedia()
			if minScore > 0 {
				if media.AverageScore == nil || *media.AverageScore < minScore {
					continue
				}
			}
			result = append(result, media)
		}
	}
	return result
}

// Trending returns the top non-adult anime by descending trending rank.
// Empty on fetch failure.
func (c *Client) Trending(ctx context.Context) []Media {
	return c.page(ctx, trendingQuery, "trending")
}

// AllTimePopular returns the top non-adult anime by descending popularity.
// Empty on fetch failure.
func (c *Client) AllTimePopular(ctx context.Context) []Media {
	return c.page(ctx, popularQuery, "popular")
}

// UserAnimeIDs returns the ids of every anime on username's list, any
// status, for exclusion filtering. Empty on fetch failure.
func (c *Client) UserAnimeIDs(ctx context.Context, username string) map[int]struct{} {
	var out mediaListCollectionResponse
	if err := c.post(ctx, userListQuery, map[string]any{"userName": username}, &out); err != nil {
		c.logger.Error("fetch user anime list failed", slog.String("username", username), slog.Any("error", err))
		return map[int]struct{}{}
	}

	ids := make(map[int]struct{})
	for _, list := range out.Data.MediaListCollection.Lists {
		for _, entry := range list.Entries {
			ids[entry.Media.ID] = struct{}{}
		}
	}
	return ids
}

func (c *Client) page(ctx context.Context, query, kind string) []Media {
	var out pageResponse
	if err := c.post(ctx, query, map[string]any{"perPage": pageSize}, &out); err != nil {
		c.logger.Error("fetch page failed", slog.String("kind", kind), slog.Any("error", err))
		return nil
	}

	result := make([]Media, 0, len(out.Data.Page.Media))
	for _, media := range out.Data.Page.Media {
		result = append(result, media.toMedia())
	}
	return result
}

// post marshals one GraphQL request, POSTs it, and decodes the data envelope
// into out. Every query variant funnels through here.
func (c *Client) post(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("anilist: close response body failed", slog.Any("error", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("anilist: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("anilist: decode response: %w", err)
	}
	return nil
}
