package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

const flashCookie = "__flash"

// Level classifies a flash message.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Flash is a one-shot message shown on the page after a redirect.
type Flash struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func Info(text string) Flash  { return Flash{Level: LevelInfo, Text: text} }
func Error(text string) Flash { return Flash{Level: LevelError, Text: text} }

// SetFlash stores msg in an encrypted cookie for the next request.
func (m *Manager) SetFlash(w http.ResponseWriter, msg Flash) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, flashCookie, string(data))
}

// PopFlash returns the pending flash message, if any, and deletes it.
// Unreadable flash cookies are dropped silently.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	data, err := m.GetEncrypted(r, flashCookie)
	if err != nil {
		if !errors.Is(err, ErrCookieNotFound) {
			m.Delete(w, flashCookie)
		}
		return Flash{}, false
	}
	m.Delete(w, flashCookie)

	var msg Flash
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		return Flash{}, false
	}
	return msg, true
}
