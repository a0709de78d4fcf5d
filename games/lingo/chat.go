/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package lingo

import "slices"

// SystemSender is the sender of chat lines the server writes itself.
const SystemSender = "system"

// ChatMessage is one line of chat. Timestamp is epoch milliseconds.
type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChatLog keeps the most recent chat lines for replay to joining players.
type ChatLog struct {
	retain   bool
	max      int
	messages []ChatMessage
}

// NewChatLog returns a log keeping at most max lines. With retain false
// nothing is kept.
func NewChatLog(retain bool, max int) *ChatLog {
	return &ChatLog{retain: retain, max: max}
}

func (l *ChatLog) Append(m ChatMessage) {
	if !l.retain {
		return
	}

	l.messages = append(l.messages, m)
	if l.max > 0 && len(l.messages) > l.max {
		l.messages = slices.Clone(l.messages[len(l.messages)-l.max:])
	}
}

// History returns retained lines, oldest first.
func (l *ChatLog) History() []ChatMessage {
	return slices.Clone(l.messages)
}

func (l *ChatLog) Clear() {
	l.messages = nil
}
