// Package messages queues one-shot user-facing notifications for admin
// requests.
//
// Messages travel in a cookie so the admin plane stays stateless. A message
// queued during a request is staged on the response headers first, which
// keeps it visible to that same request's render: an invalid form submission
// shows its error flash immediately, while messages queued before a redirect
// ride the cookie to the next page. The response carries at most one
// ink_flash Set-Cookie, so staging, re-queueing and popping within one
// request cannot leave a stale cookie behind.
package messages

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
)

// CookieName carries queued flash messages between requests.
const CookieName = "ink_flash"

// Level classifies a flash message for presentation.
type Level string

const (
	// LevelSuccess marks a completed operation.
	LevelSuccess Level = "success"
	// LevelError marks a failed operation.
	LevelError Level = "error"
)

// Button is an optional action rendered alongside a message.
type Button struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Message is a single queued notification.
type Message struct {
	Level   Level    `json:"level"`
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

// Success queues a success message, optionally with action buttons.
func Success(w http.ResponseWriter, r *http.Request, text string, buttons ...Button) {
	push(w, r, Message{Level: LevelSuccess, Text: text, Buttons: buttons})
}

// Error queues an error message.
func Error(w http.ResponseWriter, r *http.Request, text string) {
	push(w, r, Message{Level: LevelError, Text: text})
}

// Pop returns the queued messages and clears the cookie. Messages staged on
// the response during this request are included, so a render that follows a
// push in the same request delivers the message instead of deferring it.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	queued := peek(w, r)
	if len(queued) == 0 {
		return nil
	}
	setFlashCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return queued
}

func push(w http.ResponseWriter, r *http.Request, msg Message) {
	if w == nil || msg.Text == "" {
		return
	}
	queued := append(peek(w, r), msg)

	encoded, err := json.Marshal(queued)
	if err != nil {
		log.Printf("encode flash messages: %v", err)
		return
	}
	setFlashCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(encoded),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// peek returns the queued messages without clearing them. Messages staged on
// the response take precedence over the request cookie: once this request
// has written the flash cookie, the response headers hold the full queue.
func peek(w http.ResponseWriter, r *http.Request) []Message {
	if staged, ok := stagedMessages(w); ok {
		return staged
	}
	if r == nil {
		return nil
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	return decodeMessages(cookie.Value)
}

// stagedMessages reads the flash cookie already written to the response, if
// any. The second return reports whether such a cookie exists; a staged
// deletion reports true with no messages.
func stagedMessages(w http.ResponseWriter) ([]Message, bool) {
	if w == nil {
		return nil, false
	}
	for _, line := range w.Header().Values("Set-Cookie") {
		cookie, err := http.ParseSetCookie(line)
		if err != nil || cookie.Name != CookieName {
			continue
		}
		if cookie.MaxAge < 0 || cookie.Value == "" {
			return nil, true
		}
		return decodeMessages(cookie.Value), true
	}
	return nil, false
}

// setFlashCookie writes cookie, replacing any flash cookie staged earlier in
// the request so the response carries a single ink_flash header.
func setFlashCookie(w http.ResponseWriter, cookie *http.Cookie) {
	if w == nil {
		return
	}
	header := w.Header()
	existing := header.Values("Set-Cookie")
	kept := existing[:0]
	for _, line := range existing {
		parsed, err := http.ParseSetCookie(line)
		if err == nil && parsed.Name == CookieName {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		header.Del("Set-Cookie")
	} else {
		header["Set-Cookie"] = kept
	}
	http.SetCookie(w, cookie)
}

func decodeMessages(value string) []Message {
	if value == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var queued []Message
	if err := json.Unmarshal(decoded, &queued); err != nil {
		return nil
	}
	return queued
}
