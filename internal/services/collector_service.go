package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/prwatcher/prwatcher/internal/models"
	"github.com/prwatcher/prwatcher/internal/repositories"
	"github.com/prwatcher/prwatcher/pkg/config"
)

var (
	// ErrRequestFailed means a search request came back with a
	// non-success HTTP status. The run aborts, nothing is written.
	ErrRequestFailed = errors.New("search request failed")
	// ErrMalformedResponse means a response had no usable total_count.
	ErrMalformedResponse = errors.New("search response missing total_count")
)

// SearchQuery maps one search term to the metric it feeds.
type SearchQuery struct {
	Query   string
	Metric  string
	Commits bool // use the commit search endpoint instead of issue search
}

// DefaultQueries returns the fixed query set, in log column order.
func DefaultQueries() []SearchQuery {
	return []SearchQuery{
		{Query: "is:pr head:copilot/", Metric: models.MetricCopilotTotal},
		{Query: "is:pr head:copilot/ is:merged", Metric: models.MetricCopilotMerged},
		{Query: "is:pr head:codex/", Metric: models.MetricCodexTotal},
		{Query: "is:pr head:codex/ is:merged", Metric: models.MetricCodexMerged},
		{Query: `committer:"devin-ai-integration[bot]"`, Metric: models.MetricDevinCommits, Commits: true},
		{Query: `committer:"google-labs-jules[bot]"`, Metric: models.MetricJulesCommits, Commits: true},
	}
}

// CollectorService polls the GitHub search API and appends one
// MetricRow per run to the log.
type CollectorService struct {
	client  *github.Client
	queries []SearchQuery
	repo    *repositories.MetricLogRepository
	log     *logrus.Entry
	now     func() time.Time
}

func NewCollectorService(
	client *github.Client,
	queries []SearchQuery,
	repo *repositories.MetricLogRepository,
	log *logrus.Entry,
) *CollectorService {
	return &CollectorService{
		client:  client,
		queries: queries,
		repo:    repo,
		log:     log,
		now:     time.Now,
	}
}

// NewGitHubClient builds the search client from configuration: fixed
// request timeout, static User-Agent, optional static token, and an
// overridable base URL.
func NewGitHubClient(ctx context.Context, cfg config.GitHubConfig) (*github.Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.Timeout
	}

	client := github.NewClient(httpClient)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = base
	}

	return client, nil
}

// Collect runs all configured searches and appends one row stamped
// with the current UTC time. Any failure aborts before the write, so
// a partial metric set is never persisted. Returns the log file path
// on success.
func (s *CollectorService) Collect(ctx context.Context) (string, error) {
	counts := make(map[string]int, len(s.queries))
	for _, query := range s.queries {
		total, err := s.search(ctx, query)
		if err != nil {
			return "", err
		}
		counts[query.Metric] = total

		// Only the commit-based agents get a diagnostic line.
		switch query.Metric {
		case models.MetricDevinCommits:
			s.log.WithField("count", total).Info("Devin commits found")
		case models.MetricJulesCommits:
			s.log.WithField("count", total).Info("Jules commits found")
		}
	}

	row := models.NewMetricRow(s.now(), counts)
	if err := s.repo.Append(row); err != nil {
		return "", fmt.Errorf("append metric row: %w", err)
	}

	return s.repo.Path(), nil
}

func (s *CollectorService) search(ctx context.Context, query SearchQuery) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}

	var (
		total *int
		err   error
	)
	if query.Commits {
		var result *github.CommitsSearchResult
		result, _, err = s.client.Search.Commits(ctx, query.Query, opts)
		if result != nil {
			total = result.Total
		}
	} else {
		var result *github.IssuesSearchResult
		result, _, err = s.client.Search.Issues(ctx, query.Query, opts)
		if result != nil {
			total = result.Total
		}
	}

	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil {
			return 0, fmt.Errorf("%w: %s returned status %d",
				ErrRequestFailed, query.Metric, ghErr.Response.StatusCode)
		}
		var jsonErr *json.UnmarshalTypeError
		if errors.As(err, &jsonErr) {
			return 0, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, query.Metric, err)
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrRequestFailed, query.Metric, err)
	}
	if total == nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedResponse, query.Metric)
	}

	return *total, nil
}
