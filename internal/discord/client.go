package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://discord.com/api/v10"

// MessagePageLimit é fixo; o frontend não pagina.
const MessagePageLimit = 20

var (
	ErrUnauthorized = errors.New("discord: unauthorized")
	ErrForbidden    = errors.New("discord: forbidden")
	ErrUnavailable  = errors.New("discord: upstream unavailable")
)

// SanitizeToken normaliza um token colado com ou sem o prefixo "Bot "
// (case-sensitive) para o valor cru; o prefixo é reposto na hora do request.
func SanitizeToken(tok string) string {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimPrefix(tok, "Bot ")
	return strings.TrimSpace(tok)
}

type Client struct {
	log     *slog.Logger
	http    *http.Client
	limiter *rate.Limiter
	token   string

	// BaseURL é sobrescrito nos testes para apontar num httptest.Server.
	BaseURL string
}

func NewClient(log *slog.Logger, token string) *Client {
	return &Client{
		log:     log,
		http:    newHTTPClient(),
		limiter: rate.NewLimiter(rate.Limit(40), 5),
		token:   SanitizeToken(token),
		BaseURL: DefaultBaseURL,
	}
}

// newHTTPClient monta um client com pooling e timeouts adequados para a API do Discord.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

// FetchGuildMember busca o membro da guild; uma única tentativa, sem retry.
func (c *Client) FetchGuildMember(ctx context.Context, guildID, userID string) (*GuildMember, error) {
	var member GuildMember
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	if err := c.get(ctx, path, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// FetchRecentMessages retorna a página mais recente do canal, na ordem do
// upstream (mais novas primeiro).
func (c *Client) FetchRecentMessages(ctx context.Context, channelID string) ([]Message, error) {
	var msgs []Message
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", channelID, MessagePageLimit)
	if err := c.get(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("User-Agent", "DiscordBot (https://github.com/discord/discord-api-docs, 1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn("discord_api_error", "path", path, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}
