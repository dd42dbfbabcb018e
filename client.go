package fluxcrystal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxRateLimitRetries bounds how many times Client.do will retry a request
// after a 429 before giving up and returning an APIError with
// Code == ErrorRateLimited.
const maxRateLimitRetries = 5

// defaultRetryAfter is used when a 429 response carries no retry_after.
const defaultRetryAfter = 1 * time.Second

// Client is the REST envelope: every outbound HTTP call to the Fluxer API
// goes through Client.do, which attaches auth, retries rate limits, and
// maps error responses to *APIError.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	limiter    *routeLimiter
}

// ClientOption configures a Client constructed by NewClient.
type ClientOption func(*Client)

// WithHTTPClient overrides the http.Client used for requests. Useful for
// injecting custom transports, timeouts, or proxies.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the default User-Agent sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithBaseURL overrides the default API base URL, for testing against a
// mock server or an alternate deployment.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithLogger sets the logger used for retry/rate-limit diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

const defaultBaseURL = "https://api.fluxer.chat/v1"

// NewClient constructs a REST client authenticated with token. token is
// sent as-is in the Authorization header's "Bot " prefix.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "fluxcrystal-go (https://github.com/fluxcrystal/fluxcrystal-go)",
		logger:     slog.Default(),
		limiter:    newRouteLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bot token this client authenticates with.
func (c *Client) Token() string { return c.token }

// BaseURL returns the API base URL this client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues an HTTP request against path (relative to BaseURL), retrying
// on 429 up to maxRateLimitRetries times, and decodes the JSON response
// body into out (skipped if out is nil). route identifies the rate-limit
// bucket; by convention it's "METHOD /path/template" with path params
// stripped, so /channels/123/messages and /channels/456/messages share a
// bucket.
func (c *Client) do(ctx context.Context, method, route, path string, body io.Reader, contentType string, out interface{}) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("fluxcrystal: reading request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.wait(ctx, route); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("fluxcrystal: building request: %w", err)
		}
		req.Header.Set("Authorization", "Bot "+c.token)
		req.Header.Set("User-Agent", c.userAgent)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fluxcrystal: request failed: %w", err)
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("fluxcrystal: reading response body: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parseRetryAfter(respBody, resp.Header)
			c.limiter.tighten(route, retryAfter)
			if attempt >= maxRateLimitRetries {
				return &APIError{Code: ErrorRateLimited, HTTPStatus: resp.StatusCode, Message: "rate limit retries exhausted", RetryAfter: retryAfter}
			}
			c.logger.Warn("rate limited, retrying", "route", route, "retry_after", retryAfter, "attempt", attempt+1)
			select {
			case <-time.After(retryAfter):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		mapped, err := mapError(respBody, resp.StatusCode)
		if err != nil {
			return err
		}
		if out == nil || len(mapped) == 0 {
			return nil
		}
		if err := json.Unmarshal(mapped, out); err != nil {
			return fmt.Errorf("fluxcrystal: decoding response: %w", err)
		}
		return nil
	}
}

func parseRetryAfter(body []byte, header http.Header) time.Duration {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.RetryAfter > 0 {
		return time.Duration(env.RetryAfter * float64(time.Second))
	}
	if h := header.Get("Retry-After"); h != "" {
		if secs, err := strconv.ParseFloat(h, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return defaultRetryAfter
}

// assembleMultipart builds a multipart/form-data body containing a
// payload_json part and one files[i] part per attachment, maintaining the
// invariant that payload["attachments"][i].id == i (an integer, not a string).
func assembleMultipart(payload map[string]interface{}, attachments []AttachmentUpload) (io.Reader, string, error) {
	if len(attachments) == 0 {
		buf, err := json.Marshal(payload)
		return bytes.NewReader(buf), "application/json", err
	}

	attachmentMeta := make([]map[string]interface{}, len(attachments))
	for i, a := range attachments {
		filename := a.Filename
		if filename == "" {
			filename = fmt.Sprintf("file_%d", i)
		}
		meta := map[string]interface{}{
			"id":       i,
			"filename": filename,
		}
		if a.Title != "" {
			meta["title"] = a.Title
		}
		if a.Description != "" {
			meta["description"] = a.Description
		}
		attachmentMeta[i] = meta
	}
	payload["attachments"] = attachmentMeta

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("payload_json", string(payloadJSON)); err != nil {
		return nil, "", err
	}

	for i, a := range attachments {
		filename := a.Filename
		if filename == "" {
			filename = fmt.Sprintf("file_%d", i)
		}
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="files[%d]"; filename=%q`, i, filename)}
		header["Content-Type"] = []string{contentType}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// gatewayURLResponse is the shape of GET /gateway/bot.
type gatewayURLResponse struct {
	URL string `json:"url"`
}

// GetGatewayURL fetches the WebSocket URL new gateway connections should
// dial.
func (c *Client) GetGatewayURL(ctx context.Context) (string, error) {
	var out gatewayURLResponse
	if err := c.do(ctx, http.MethodGet, "GET /gateway/bot", "/gateway/bot", nil, "", &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// CreateMessageParams are the optional fields of CreateMessage.
type CreateMessageParams struct {
	Content          string
	Embeds           []RichEmbed
	Attachments      []AttachmentUpload
	MessageReference *MessageReference
	TTS              bool
	// Nonce deduplicates a client's own echoed MessageCreateEvent against
	// the message it just sent. Defaults to a fresh NewNonce() if empty.
	Nonce string
}

// CreateMessage sends a message to channelID.
func (c *Client) CreateMessage(ctx context.Context, channelID string, params CreateMessageParams) (Message, error) {
	nonce := params.Nonce
	if nonce == "" {
		nonce = NewNonce()
	}
	payload := map[string]interface{}{
		"nonce": nonce,
	}
	if params.Content != "" {
		payload["content"] = params.Content
	}
	if params.TTS {
		payload["tts"] = true
	}
	if params.MessageReference != nil {
		payload["message_reference"] = params.MessageReference
	}
	if len(params.Embeds) > 0 {
		wireEmbeds := make([]wireEmbed, len(params.Embeds))
		for i, e := range params.Embeds {
			wireEmbeds[i] = e.toWire()
		}
		payload["embeds"] = wireEmbeds
	}

	body, contentType, err := assembleMultipart(payload, params.Attachments)
	if err != nil {
		return Message{}, fmt.Errorf("fluxcrystal: assembling message body: %w", err)
	}

	var out Message
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	err = c.do(ctx, http.MethodPost, "POST /channels/:id/messages", path, body, contentType, &out)
	return out, err
}

// FetchMessage fetches a single message by ID.
func (c *Client) FetchMessage(ctx context.Context, channelID, messageID string) (Message, error) {
	var out Message
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	err := c.do(ctx, http.MethodGet, "GET /channels/:id/messages/:id", path, nil, "", &out)
	return out, err
}

// FetchMessagesParams bounds a FetchMessages page.
type FetchMessagesParams struct {
	Before string
	After  string
	Limit  int
}

// FetchMessages lists messages in a channel, most recent first.
func (c *Client) FetchMessages(ctx context.Context, channelID string, params FetchMessagesParams) ([]Message, error) {
	q := url.Values{}
	if params.Before != "" {
		q.Set("before", params.Before)
	}
	if params.After != "" {
		q.Set("after", params.After)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Message
	err := c.do(ctx, http.MethodGet, "GET /channels/:id/messages", path, nil, "", &out)
	return out, err
}

// EditMessage edits the content and/or embeds of a message this bot sent.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, content string, embeds []RichEmbed) (Message, error) {
	payload := map[string]interface{}{"content": content}
	if len(embeds) > 0 {
		wireEmbeds := make([]wireEmbed, len(embeds))
		for i, e := range embeds {
			wireEmbeds[i] = e.toWire()
		}
		payload["embeds"] = wireEmbeds
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	var out Message
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	err = c.do(ctx, http.MethodPatch, "PATCH /channels/:id/messages/:id", path, bytes.NewReader(buf), "application/json", &out)
	return out, err
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodDelete, "DELETE /channels/:id/messages/:id", path, nil, "", nil)
}

// SendTyping triggers the typing indicator in a channel.
func (c *Client) SendTyping(ctx context.Context, channelID string) error {
	path := fmt.Sprintf("/channels/%s/typing", channelID)
	return c.do(ctx, http.MethodPost, "POST /channels/:id/typing", path, nil, "", nil)
}

// AddReaction adds emoji to a message as this bot's reaction.
func (c *Client) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodPut, "PUT /channels/:id/messages/:id/reactions/:emoji/@me", path, nil, "", nil)
}

// RemoveReaction removes this bot's own emoji reaction from a message.
func (c *Client) RemoveReaction(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me", channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodDelete, "DELETE /channels/:id/messages/:id/reactions/:emoji/@me", path, nil, "", nil)
}

// FetchChannel fetches a channel by ID.
func (c *Client) FetchChannel(ctx context.Context, channelID string) (Channel, error) {
	var out Channel
	err := c.do(ctx, http.MethodGet, "GET /channels/:id", "/channels/"+channelID, nil, "", &out)
	return out, err
}

// FetchGuildChannels lists every channel in a guild.
func (c *Client) FetchGuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	var out []Channel
	err := c.do(ctx, http.MethodGet, "GET /guilds/:id/channels", "/guilds/"+guildID+"/channels", nil, "", &out)
	return out, err
}

// FetchGuild fetches a guild by ID.
func (c *Client) FetchGuild(ctx context.Context, guildID string) (Guild, error) {
	var out Guild
	err := c.do(ctx, http.MethodGet, "GET /guilds/:id", "/guilds/"+guildID, nil, "", &out)
	return out, err
}

// FetchGuildRoles lists every role in a guild.
func (c *Client) FetchGuildRoles(ctx context.Context, guildID string) ([]Role, error) {
	var out []Role
	err := c.do(ctx, http.MethodGet, "GET /guilds/:id/roles", "/guilds/"+guildID+"/roles", nil, "", &out)
	return out, err
}

// FetchGuildMember fetches a single guild member.
func (c *Client) FetchGuildMember(ctx context.Context, guildID, userID string) (GuildMember, error) {
	var out GuildMember
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	err := c.do(ctx, http.MethodGet, "GET /guilds/:id/members/:id", path, nil, "", &out)
	return out, err
}

// KickMember removes a member from a guild.
func (c *Client) KickMember(ctx context.Context, guildID, userID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	return c.do(ctx, http.MethodDelete, "DELETE /guilds/:id/members/:id", path, nil, "", nil)
}

// BanMember bans a user from a guild, optionally deleting their recent
// messages (deleteMessageSeconds, 0 to skip).
func (c *Client) BanMember(ctx context.Context, guildID, userID string, deleteMessageSeconds int) error {
	payload := map[string]interface{}{}
	if deleteMessageSeconds > 0 {
		payload["delete_message_seconds"] = deleteMessageSeconds
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID)
	return c.do(ctx, http.MethodPut, "PUT /guilds/:id/bans/:id", path, bytes.NewReader(buf), "application/json", nil)
}

// UnbanMember lifts a ban.
func (c *Client) UnbanMember(ctx context.Context, guildID, userID string) error {
	path := fmt.Sprintf("/guilds/%s/bans/%s", guildID, userID)
	return c.do(ctx, http.MethodDelete, "DELETE /guilds/:id/bans/:id", path, nil, "", nil)
}

// AddMemberRole grants a role to a guild member.
func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	return c.do(ctx, http.MethodPut, "PUT /guilds/:id/members/:id/roles/:id", path, nil, "", nil)
}

// RemoveMemberRole revokes a role from a guild member.
func (c *Client) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	return c.do(ctx, http.MethodDelete, "DELETE /guilds/:id/members/:id/roles/:id", path, nil, "", nil)
}

// FetchMyUser fetches the authenticated bot's own user object.
func (c *Client) FetchMyUser(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "GET /users/@me", "/users/@me", nil, "", &out)
	return out, err
}

// FetchUser fetches another user's public profile.
func (c *Client) FetchUser(ctx context.Context, userID string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "GET /users/:id", "/users/"+userID, nil, "", &out)
	return out, err
}

// GetInvite fetches an invite by its code.
func (c *Client) GetInvite(ctx context.Context, code string) (Invite, error) {
	var out Invite
	err := c.do(ctx, http.MethodGet, "GET /invites/:code", "/invites/"+code, nil, "", &out)
	return out, err
}
