package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"goldwatch/internal/model"
)

// NewsAPIFetcher implements NewsFetcher using newsapi.org. Each instrument is
// queried independently; without a credential, on query failure, or when zero
// articles come back, that instrument gets the fixed placeholder headlines.
type NewsAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Now     func() time.Time
	log     zerolog.Logger
}

// NewNewsAPIFetcher creates a newsapi.org fetcher.
func NewNewsAPIFetcher(apiKey string, log zerolog.Logger) *NewsAPIFetcher {
	return &NewsAPIFetcher{
		BaseURL: "https://newsapi.org/v2",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Now:     time.Now,
		log:     log.With().Str("source", "newsapi").Logger(),
	}
}

func (f *NewsAPIFetcher) Name() string { return "newsapi" }

var newsQueries = map[model.Instrument]string{
	model.Gold:   "gold price",
	model.Silver: "silver price",
}

var placeholderHeadlines = map[model.Instrument][]string{
	model.Gold: {
		"Gold prices steady as markets weigh central bank policy",
		"Investors eye gold as inflation hedge amid economic uncertainty",
		"Central bank reserves keep long-term gold demand intact",
	},
	model.Silver: {
		"Silver demand supported by industrial and solar applications",
		"Silver holds its range as traders watch the gold/silver ratio",
		"Analysts see silver tracking gold amid shifting rate expectations",
	},
}

// newsAPIResponse is the subset of the newsapi.org payload we use.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (f *NewsAPIFetcher) fetchQuery(ctx context.Context, query string) ([]model.NewsItem, error) {
	u := fmt.Sprintf("%s/everything?q=%s&sortBy=publishedAt&pageSize=5&language=en&apiKey=%s",
		f.BaseURL, url.QueryEscape(query), f.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d", resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if len(body.Articles) == 0 {
		return nil, fmt.Errorf("newsapi: zero articles for %q", query)
	}

	items := make([]model.NewsItem, 0, len(body.Articles))
	for _, a := range body.Articles {
		items = append(items, model.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return items, nil
}

func (f *NewsAPIFetcher) placeholder(inst model.Instrument) []model.NewsItem {
	now := f.Now()
	headlines := placeholderHeadlines[inst]
	items := make([]model.NewsItem, 0, len(headlines))
	for _, title := range headlines {
		items = append(items, model.NewsItem{
			Title:       title,
			Source:      "goldwatch",
			PublishedAt: now,
		})
	}
	return items
}

// FetchNews returns up to 5 headlines per instrument, newest first. It never
// returns an error: instruments that cannot be fetched get placeholders.
func (f *NewsAPIFetcher) FetchNews(ctx context.Context) (map[model.Instrument][]model.NewsItem, error) {
	out := make(map[model.Instrument][]model.NewsItem, len(newsQueries))
	for inst, query := range newsQueries {
		if f.APIKey == "" {
			out[inst] = f.placeholder(inst)
			continue
		}
		items, err := f.fetchQuery(ctx, query)
		if err != nil {
			f.log.Warn().Err(err).Str("instrument", string(inst)).Msg("news query failed, using placeholders")
			out[inst] = f.placeholder(inst)
			continue
		}
		out[inst] = items
	}
	return out, nil
}
