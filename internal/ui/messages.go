package ui

import (
	"fmt"
	"sync"
	"time"
)

// Message is a status line notification
type Message struct {
	Text      string
	Timestamp time.Time
}

// MessageLog keeps the most recent notifications for the status line
type MessageLog struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	now      func() time.Time
}

// NewMessageLog creates a log that keeps at most maxSize messages
func NewMessageLog(maxSize int) *MessageLog {
	return &MessageLog{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// Addf formats and records a message. Empty messages are ignored.
func (ml *MessageLog) Addf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if text == "" {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Timestamp: ml.now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Last returns the newest message, or false when the log is empty
func (ml *MessageLog) Last() (Message, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return Message{}, false
	}
	return ml.messages[len(ml.messages)-1], true
}

// Recent returns the messages newer than age, oldest first
func (ml *MessageLog) Recent(age time.Duration) []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	cutoff := ml.now().Add(-age)
	var result []Message
	for _, m := range ml.messages {
		if m.Timestamp.After(cutoff) {
			result = append(result, m)
		}
	}
	return result
}

// Count returns the number of messages in the log
func (ml *MessageLog) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
