package showdown

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const LoginServerURL = "https://play.pokemonshowdown.com"

// Conn is what the runner needs from a server connection.
type Conn interface {
	ReadFrame() (Message, error)
	Send(room string, message string) error
	Close() error
}

// Client is a websocket connection to a Showdown server.
type Client struct {
	conn   *websocket.Conn
	logger zerolog.Logger
	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex

	HTTP     *http.Client
	LoginURL string
}

func Dial(ctx context.Context, serverURL string, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}

	logger.Info().Str("url", u.String()).Msg("connecting")
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", u, err)
	}

	return &Client{
		conn:     conn,
		logger:   logger,
		HTTP:     http.DefaultClient,
		LoginURL: LoginServerURL,
	}, nil
}

func (c *Client) ReadFrame() (Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			return Message{}, io.EOF
		}
		return Message{}, err
	}

	c.logger.Trace().Str("frame", string(data)).Msg("received")
	return ParseMessage(string(data)), nil
}

// Send writes "room|message". Global commands use an empty room.
func (c *Client) Send(room string, message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	frame := room + "|" + message
	c.logger.Debug().Str("frame", frame).Msg("sending")
	return c.conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func (c *Client) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// Rename claims username with an assertion from the login server. challstr is the payload of
// the "|challstr|" line. Unregistered names don't need a password.
func (c *Client) Rename(ctx context.Context, username string, password string, challstr string) error {
	assertion, err := c.assertion(ctx, username, password, challstr)
	if err != nil {
		return err
	}

	if strings.HasPrefix(assertion, ";;") {
		return fmt.Errorf("login server refused %s: %s", username, strings.TrimPrefix(assertion, ";;"))
	}

	return c.Send("", fmt.Sprintf("/trn %s,0,%s", username, assertion))
}

func (c *Client) assertion(ctx context.Context, username string, password string, challstr string) (string, error) {
	endpoint := c.LoginURL + "/api/login"
	form := url.Values{
		"name":     {username},
		"pass":     {password},
		"challstr": {challstr},
	}
	if password == "" {
		endpoint = c.LoginURL + "/action.php"
		form = url.Values{
			"act":      {"getassertion"},
			"userid":   {username},
			"challstr": {challstr},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login server returned %s", resp.Status)
	}

	return parseAssertion(body, password != "")
}

// parseAssertion reads the login server reply. Password logins answer with "]" followed by
// JSON; assertion requests answer with the bare assertion.
func parseAssertion(body []byte, withPassword bool) (string, error) {
	text := strings.TrimSpace(string(body))
	if !withPassword {
		return text, nil
	}

	var reply struct {
		Actionsuccess bool   `json:"actionsuccess"`
		Assertion     string `json:"assertion"`
	}
	if err := json.Unmarshal([]byte(strings.TrimPrefix(text, "]")), &reply); err != nil {
		return "", fmt.Errorf("decoding login reply: %w", err)
	}
	if reply.Assertion == "" {
		return "", fmt.Errorf("login failed")
	}
	return reply.Assertion, nil
}
