/**
 * @description
 * HTTP Client for the weather-market API.
 * Fetches markets and bets, submits bets, and manages user profiles.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - mime/multipart
 * - github.com/google/uuid: idempotency request ids for bet submission
 */

package weatherapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weather-project/webapp/internal/models"
)

const (
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// ListMarkets fetches markets matching the optional filters.
// GET /api/markets?country&city&search
func (c *Client) ListMarkets(ctx context.Context, filter MarketFilter) ([]models.Market, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/markets", c.BaseURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	if filter.Country != "" {
		q.Set("country", filter.Country)
	}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	u.RawQuery = q.Encode()

	var markets []models.Market
	if err := c.getJSON(ctx, u.String(), &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// GetMarket fetches a single market by ID.
// Returns (nil, nil) when the market does not exist.
func (c *Client) GetMarket(ctx context.Context, id string) (*models.Market, error) {
	u := fmt.Sprintf("%s/api/markets/%s", c.BaseURL, url.PathEscape(id))

	env, status, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Error}
	}

	var market models.Market
	if err := json.Unmarshal(env.Data, &market); err != nil {
		return nil, err
	}
	return &market, nil
}

// PlaceBet submits a bet on a market.
// POST /api/markets/{id}/bet with body {userId, type, amount, price}
func (c *Client) PlaceBet(ctx context.Context, marketID string, req BetRequest) (*models.Bet, error) {
	u := fmt.Sprintf("%s/api/markets/%s/bet", c.BaseURL, url.PathEscape(marketID))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	env, status, err := c.do(ctx, http.MethodPost, u, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Error}
	}

	var bet models.Bet
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &bet); err != nil {
			return nil, err
		}
	}
	return &bet, nil
}

// ListUserBets fetches all bets for a user, each joined with a market summary.
// GET /api/users/{id}/bets
func (c *Client) ListUserBets(ctx context.Context, userID string) ([]models.Bet, error) {
	u := fmt.Sprintf("%s/api/users/%s/bets", c.BaseURL, url.PathEscape(userID))

	var bets []models.Bet
	if err := c.getJSON(ctx, u, &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// GetProfile fetches the stored profile for an identity-provider user.
// Returns (nil, nil) when no profile exists yet.
func (c *Client) GetProfile(ctx context.Context, privyID string) (*models.UserProfile, error) {
	u := fmt.Sprintf("%s/api/user/profile/%s", c.BaseURL, url.PathEscape(privyID))

	env, status, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Error}
	}

	return decodeProfile(env)
}

// UpdateProfile upserts profile fields.
// PUT /api/user/profile/{id}
func (c *Client) UpdateProfile(ctx context.Context, privyID string, update ProfileUpdate) (*models.UserProfile, error) {
	u := fmt.Sprintf("%s/api/user/profile/%s", c.BaseURL, url.PathEscape(privyID))

	body, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	env, status, err := c.do(ctx, http.MethodPut, u, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{StatusCode: status, Message: env.Error}
	}

	return decodeProfile(env)
}

// UploadProfileImage uploads a new profile image as multipart form data.
// POST /api/user/profile/{id}/image
// Returns the updated profile and the served image URL.
func (c *Client) UploadProfileImage(ctx context.Context, privyID, filename string, image io.Reader) (*models.UserProfile, string, error) {
	u := fmt.Sprintf("%s/api/user/profile/%s/image", c.BaseURL, url.PathEscape(privyID))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	env, status, err := c.do(ctx, http.MethodPost, u, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, "", err
	}
	if !env.Success {
		return nil, "", &APIError{StatusCode: status, Message: env.Error}
	}

	profile, err := decodeProfile(env)
	if err != nil {
		return nil, "", err
	}

	imageURL := env.ImageURL
	if imageURL == "" && profile != nil {
		imageURL = profile.ProfileImage
	}
	return profile, c.ResolveImageURL(imageURL), nil
}

// ResolveImageURL prefixes relative image paths with the API base URL.
func (c *Client) ResolveImageURL(imageURL string) string {
	if imageURL == "" || strings.HasPrefix(imageURL, "http") {
		return imageURL
	}
	return c.BaseURL + imageURL
}

// getJSON issues a GET and decodes the envelope's data payload into out.
func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	env, status, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return &APIError{StatusCode: status, Message: env.Error}
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// do executes a request and decodes the response envelope.
// Transport failures wrap ErrUnreachable; malformed envelopes are decode errors.
func (c *Client) do(ctx context.Context, method, u, contentType string, body io.Reader) (*envelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet {
		// Idempotency id so the API can dedupe retried submissions
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode == http.StatusNotFound {
			// Some deployments serve bare 404s without an envelope
			return &envelope{}, resp.StatusCode, nil
		}
		return nil, resp.StatusCode, fmt.Errorf("decoding weather api response: %w", err)
	}

	return &env, resp.StatusCode, nil
}

func decodeProfile(env *envelope) (*models.UserProfile, error) {
	payload := env.User
	if len(payload) == 0 {
		payload = env.Data
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
