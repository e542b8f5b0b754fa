package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/config"
	"assetdesk/internal/shared/constants"
)

const apiBase = "https://qyapi.weixin.qq.com/cgi-bin"

// Client talks to the WeChat Work API. The access token is shared
// through the cache so every instance reuses the same one until it
// expires.
type Client struct {
	corpID  string
	secret  string
	store   cache.Store
	client  *http.Client
	baseURL string
}

func NewClient(cfg *config.WeChatConfig, store cache.Store) *Client {
	return &Client{
		corpID:  cfg.CorpID,
		secret:  cfg.Secret,
		store:   store,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: apiBase,
	}
}

// SetBaseURL points the client at a test server.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

type tokenResponse struct {
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type userIDResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	UserID  string `json:"UserId"`
}

// UserInfo is the subset of the member record the login flow needs.
type UserInfo struct {
	UserID     string `json:"userid"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	Department string `json:"main_department_name"`
}

type userInfoResponse struct {
	ErrCode int `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	UserInfo
}

// AccessToken returns a valid API token, preferring the cached one.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	token, ok, err := c.store.Get(ctx, constants.WeChatTokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read cached token: %w", err)
	}
	if ok {
		return token, nil
	}

	var resp tokenResponse
	endpoint := fmt.Sprintf("%s/gettoken?corpid=%s&corpsecret=%s",
		c.baseURL, url.QueryEscape(c.corpID), url.QueryEscape(c.secret))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.ErrCode != 0 {
		return "", fmt.Errorf("wechat gettoken failed: %s", resp.ErrMsg)
	}

	ttl := time.Duration(resp.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = 7200 * time.Second
	}
	if err := c.store.Set(ctx, constants.WeChatTokenKey, resp.AccessToken, ttl); err != nil {
		return "", fmt.Errorf("failed to cache token: %w", err)
	}
	return resp.AccessToken, nil
}

// UserIDByCode resolves the OAuth redirect code to a WeChat user id.
func (c *Client) UserIDByCode(ctx context.Context, code string) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	var resp userIDResponse
	endpoint := fmt.Sprintf("%s/user/getuserinfo?access_token=%s&code=%s",
		c.baseURL, url.QueryEscape(token), url.QueryEscape(code))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.ErrCode != 0 {
		return "", fmt.Errorf("wechat getuserinfo failed: %s", resp.ErrMsg)
	}
	if resp.UserID == "" {
		return "", fmt.Errorf("code does not belong to a corp member")
	}
	return resp.UserID, nil
}

// UserByID fetches the member record for a WeChat user id.
func (c *Client) UserByID(ctx context.Context, userID string) (*UserInfo, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var resp userInfoResponse
	endpoint := fmt.Sprintf("%s/user/get?access_token=%s&userid=%s",
		c.baseURL, url.QueryEscape(token), url.QueryEscape(userID))
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.ErrCode != 0 {
		return nil, fmt.Errorf("wechat user/get failed: %s", resp.ErrMsg)
	}
	info := resp.UserInfo
	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build wechat request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call wechat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wechat api returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode wechat response: %w", err)
	}
	return nil
}
