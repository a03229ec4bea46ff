package socket

import (
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client sends commands to a running instance
type Client struct {
	socketPath string
}

// FindRunningInstance returns the newest socket in dir and the PID encoded
// in its name (0 when the name carries no PID).
func FindRunningInstance(dir string) (string, int, error) {
	var newest string
	var newestTime time.Time
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, ".sock") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running ttl instance found")
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), socketPrefix), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath}, nil
}

// Send sends a message and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// AddItem asks the instance to add an item to group
func (c *Client) AddItem(group, title, subtitle string) (*Response, error) {
	return c.Send(Message{Command: CommandAddItem, Group: group, Title: title, Subtitle: subtitle})
}

// ClearGroup asks the instance to remove every item of group
func (c *Client) ClearGroup(group string) (*Response, error) {
	return c.Send(Message{Command: CommandClearGroup, Group: group})
}

// Select asks the instance to select the item title of group
func (c *Client) Select(group, title string) (*Response, error) {
	return c.Send(Message{Command: CommandSelect, Group: group, Title: title})
}
