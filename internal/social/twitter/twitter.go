// Package twitter implements the live activity scanner against the platform's
// v2 API.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mintworks/impression/internal/configs"
	"github.com/mintworks/impression/internal/models"
	"github.com/mintworks/impression/internal/social"
	"github.com/mintworks/impression/internal/utils/request"
)

type Scanner struct {
	baseURL     string
	bearerToken string
	profile     configs.HeuristicsProfile
	httpClient  *resty.Client
	now         func() time.Time
}

func NewScanner(bearerToken string, profile configs.HeuristicsProfile) *Scanner {
	return &Scanner{
		baseURL:     "https://api.twitter.com/2",
		bearerToken: bearerToken,
		profile:     profile,
		httpClient:  request.Request,
		now:         time.Now,
	}
}

type userResponse struct {
	Data struct {
		ID        string    `json:"id"`
		Username  string    `json:"username"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
}

type tweetsResponse struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
}

// Scan implements social.Scanner.
func (s *Scanner) Scan(ctx context.Context, handle string, window models.ActivityWindow) (*models.ActivityScan, error) {
	if handle == "" {
		return nil, social.ErrEmptyHandle
	}

	identityID, registeredAt, err := s.lookupIdentity(ctx, handle)
	if err != nil {
		return nil, err
	}

	posts, err := s.fetchPosts(ctx, identityID, handle, window)
	if err != nil {
		return nil, err
	}

	return social.BuildScan(handle, identityID, registeredAt, posts, window, s.profile, false, s.now()), nil
}

func (s *Scanner) lookupIdentity(ctx context.Context, handle string) (int64, time.Time, error) {
	url := fmt.Sprintf("%s/users/by/username/%s", s.baseURL, handle)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(s.bearerToken).
		SetQueryParam("user.fields", "created_at").
		Get(url)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, time.Time{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var user userResponse
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if user.Data.ID == "" {
		return 0, time.Time{}, fmt.Errorf("handle %s not found", handle)
	}

	identityID, err := strconv.ParseInt(user.Data.ID, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to parse identity id %q: %w", user.Data.ID, err)
	}

	return identityID, user.Data.CreatedAt, nil
}

func (s *Scanner) fetchPosts(ctx context.Context, identityID int64, handle string, window models.ActivityWindow) ([]models.ActivityRecord, error) {
	url := fmt.Sprintf("%s/users/%d/tweets", s.baseURL, identityID)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(s.bearerToken).
		SetQueryParams(map[string]string{
			"max_results":  "100",
			"tweet.fields": "created_at",
			"start_time":   window.Start.UTC().Format(time.RFC3339),
			"end_time":     window.End.UTC().Format(time.RFC3339),
		}).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var tweets tweetsResponse
	if err := json.Unmarshal(resp.Body(), &tweets); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	posts := make([]models.ActivityRecord, 0, len(tweets.Data))
	for _, tw := range tweets.Data {
		posts = append(posts, models.ActivityRecord{
			PostID:       tw.ID,
			Text:         tw.Text,
			CreatedAt:    tw.CreatedAt,
			OriginHandle: handle,
		})
	}
	return posts, nil
}

// SetBaseURL overrides the API endpoint, for tests.
func (s *Scanner) SetBaseURL(url string) {
	s.baseURL = url
}
