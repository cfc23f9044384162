package remote

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a line client of a remote console
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	session string
}

// Dial connects to the console at url and waits for the session greeting
func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	var greeting Response
	if err := conn.ReadJSON(&greeting); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read greeting: %w", err)
	}
	if greeting.Type != TypeHello {
		conn.Close()
		return nil, fmt.Errorf("unexpected greeting %q", greeting.Type)
	}

	return &Client{conn: conn, session: greeting.Session}, nil
}

// Session returns the id the server assigned to this connection
func (c *Client) Session() string {
	return c.session
}

// Send dispatches line on the remote console
func (c *Client) Send(ctx context.Context, line string) (Response, error) {
	return c.roundTrip(ctx, Request{Type: TypeLine, Line: line})
}

// Ping checks that the session is alive
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.roundTrip(ctx, Request{Type: TypePing})
	if err != nil {
		return err
	}
	if resp.Type != TypePong {
		return fmt.Errorf("unexpected reply %q to ping", resp.Type)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return Response{}, fmt.Errorf("connection closed")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetReadDeadline(deadline)
		defer c.conn.SetReadDeadline(time.Time{})
	}

	if err := c.conn.WriteJSON(req); err != nil {
		return Response{}, fmt.Errorf("failed to send message: %w", err)
	}

	var resp Response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.Type == TypeError {
		return resp, fmt.Errorf("server error: %s", resp.Error)
	}
	return resp, nil
}

// Close closes the WebSocket connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := c.conn.Close()
	c.conn = nil
	return err
}

// REPL reads lines from in, sends them and writes the replies to out until
// in is exhausted or the remote console exits. prompt is written before
// every line if not empty. A line put back by the console is shown as
// "recalled: <line>" and runs when the next input line is empty.
func (c *Client) REPL(ctx context.Context, in io.Reader, out io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	pending := ""
	for {
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			line = pending
		}
		pending = ""
		if strings.TrimSpace(line) == "" {
			continue
		}

		resp, err := c.Send(ctx, line)
		if err != nil {
			return err
		}
		if resp.Output != "" {
			fmt.Fprintln(out, strings.TrimRight(resp.Output, "\n"))
		}
		if resp.Exit {
			return nil
		}
		if resp.Buffer != "" {
			pending = resp.Buffer
			fmt.Fprintf(out, "recalled: %s\n", pending)
		}
	}
}
