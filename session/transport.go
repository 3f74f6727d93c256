package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/judgegodwins/tetris-duel/http_utils"
)

// Conn is a message based connection to the relay. *websocket.Conn
// satisfies it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// DialFunc opens a new relay connection.
type DialFunc func(ctx context.Context) (Conn, error)

var dialer = &websocket.Dialer{
	Proxy:            http.ProxyFromEnvironment,
	HandshakeTimeout: 10 * time.Second,
}

// WebsocketDialer dials the relay at rawURL, passing token as the query
// parameter the relay authenticates with.
func WebsocketDialer(rawURL, token string) DialFunc {
	return func(ctx context.Context) (Conn, error) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}

		if token != "" {
			q := u.Query()
			q.Set("token", token)
			u.RawQuery = q.Encode()
		}

		conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
		if err != nil {
			if resp != nil {
				return nil, fmt.Errorf("dial relay: %w (status %d)", err, resp.StatusCode)
			}
			return nil, fmt.Errorf("dial relay: %w", err)
		}

		return conn, nil
	}
}

type tokenRequest struct {
	Username string `json:"username"`
}

type tokenResponse struct {
	http_utils.BaseResponse
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Token    string `json:"token"`
	} `json:"data"`
}

// FetchToken requests an access token for username from the relay's HTTP
// API at baseURL.
func FetchToken(ctx context.Context, client *http.Client, baseURL, username string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(tokenRequest{Username: username})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/auth/username"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !data.Success {
		return "", fmt.Errorf("token request failed: %s", data.Message)
	}

	if data.Data.Token == "" {
		return "", errors.New("token response did not include a token")
	}

	return data.Data.Token, nil
}
