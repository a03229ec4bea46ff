package socket

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const socketPrefix = "ttl-"

// Server accepts commands from other processes on a Unix socket
type Server struct {
	socketPath string
	listener   net.Listener
	msgChan    chan Message
	stopChan   chan struct{}
}

// DefaultDir returns the directory sockets are created in
func DefaultDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-treelist")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tui-treelist")
}

// NewServer listens on dir/ttl-<pid>.sock
func NewServer(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("%s%d.sock", socketPrefix, pid))
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	log.Printf("Socket server listening on: %s", socketPath)

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		msgChan:    make(chan Message, 10),
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins accepting connections on the socket
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection reads one message, validates it and queues it. The
// reply only acknowledges queueing; the command runs on the UI goroutine.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	encoder := json.NewEncoder(conn)
	reply := func(ok bool, format string, args ...any) {
		if err := encoder.Encode(Response{Success: ok, Message: fmt.Sprintf(format, args...)}); err != nil {
			log.Printf("Error writing response: %v", err)
		}
	}

	var msg Message
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		reply(false, "Invalid message format: %v", err)
		return
	}

	if err := msg.Validate(); err != nil {
		reply(false, "%v", err)
		return
	}

	select {
	case s.msgChan <- msg:
		reply(true, "Command queued")
	case <-s.stopChan:
		reply(false, "Server is shutting down")
	}
}

// Messages returns the channel of validated messages
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path to the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop stops the server and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	log.Printf("Socket server stopped")
}
