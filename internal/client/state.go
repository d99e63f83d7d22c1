// File: internal/client/state.go
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// API is the procedure surface SessionState needs. *Client implements it.
type API interface {
	ListSessions(ctx context.Context) ([]Session, error)
	CreateSession(ctx context.Context, title *string) (*Session, error)
	RenameSession(ctx context.Context, sessionID, newTitle string) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
	SendText(ctx context.Context, sessionID, prompt string) (*TextResult, error)
	GenerateImage(ctx context.Context, sessionID, prompt string) (*ImageResult, error)
}

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrUnknownSession  = errors.New("session is not in the session list")
)

// SendError reports a failed send. Prompt is the text the user typed, so the
// caller can offer it again.
type SendError struct {
	Prompt string
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send failed: %v", e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SessionState mirrors the server's session list and the active session's
// transcript. Every mutation is followed by a refetch. Not safe for
// concurrent use.
type SessionState struct {
	api   API
	store *Store

	Sessions []Session
	ActiveID string
	Messages []Message
}

func NewSessionState(api API, store *Store) *SessionState {
	return &SessionState{api: api, store: store}
}

// Load restores the stored hint, checks it against the server's list, and
// falls back to the newest session or a new one.
func (s *SessionState) Load(ctx context.Context) error {
	hint := ""
	if s.store != nil {
		hint = s.store.Load()
	}

	if err := s.refreshSessions(ctx); err != nil {
		return err
	}

	switch {
	case hint != "" && s.hasSession(hint):
		return s.activate(ctx, hint)
	case len(s.Sessions) > 0:
		return s.activate(ctx, s.Sessions[0].ID)
	default:
		_, err := s.NewSession(ctx, nil)
		return err
	}
}

// Select makes id the active session. The previous transcript is dropped
// before the new one is fetched.
func (s *SessionState) Select(ctx context.Context, id string) error {
	if !s.hasSession(id) {
		return ErrUnknownSession
	}
	return s.activate(ctx, id)
}

func (s *SessionState) NewSession(ctx context.Context, title *string) (*Session, error) {
	created, err := s.api.CreateSession(ctx, title)
	if err != nil {
		return nil, err
	}
	if err := s.refreshSessions(ctx); err != nil {
		return nil, err
	}
	if err := s.activate(ctx, created.ID); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *SessionState) Rename(ctx context.Context, id, title string) error {
	if _, err := s.api.RenameSession(ctx, id, title); err != nil {
		return err
	}
	return s.refreshAfterMutation(ctx, id)
}

// Delete removes a session. If it was active, the newest remaining session
// becomes active, or a new one is created.
func (s *SessionState) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteSession(ctx, id); err != nil {
		return err
	}
	if err := s.refreshSessions(ctx); err != nil {
		return err
	}
	if id != s.ActiveID {
		return nil
	}

	s.Messages = nil
	if len(s.Sessions) > 0 {
		return s.activate(ctx, s.Sessions[0].ID)
	}
	_, err := s.NewSession(ctx, nil)
	return err
}

// SendText shows the prompt immediately as a pending message, and removes it
// again if the call fails.
func (s *SessionState) SendText(ctx context.Context, prompt string) (*TextResult, error) {
	var res *TextResult
	err := s.send(ctx, prompt, "text", func(sessionID string) error {
		var err error
		res, err = s.api.SendText(ctx, sessionID, prompt)
		return err
	})
	return res, err
}

func (s *SessionState) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	var res *ImageResult
	err := s.send(ctx, prompt, "image_prompt", func(sessionID string) error {
		var err error
		res, err = s.api.GenerateImage(ctx, sessionID, prompt)
		return err
	})
	return res, err
}

func (s *SessionState) send(ctx context.Context, prompt, msgType string, call func(sessionID string) error) error {
	if s.ActiveID == "" {
		return &SendError{Prompt: prompt, Err: ErrNoActiveSession}
	}
	sessionID := s.ActiveID

	pendingID := "pending-" + uuid.NewString()
	s.Messages = append(s.Messages, Message{
		ID:        pendingID,
		SessionID: sessionID,
		Role:      "user",
		Type:      msgType,
		Content:   prompt,
		Pending:   true,
	})

	if err := call(sessionID); err != nil {
		s.dropMessage(pendingID)
		return &SendError{Prompt: prompt, Err: err}
	}
	return s.refreshAfterMutation(ctx, sessionID)
}

func (s *SessionState) refreshAfterMutation(ctx context.Context, id string) error {
	if err := s.refreshSessions(ctx); err != nil {
		return err
	}
	if id == s.ActiveID {
		return s.refreshMessages(ctx)
	}
	return nil
}

func (s *SessionState) activate(ctx context.Context, id string) error {
	s.Messages = nil
	s.ActiveID = id
	if s.store != nil {
		if err := s.store.Save(id); err != nil {
			return err
		}
	}
	return s.refreshMessages(ctx)
}

func (s *SessionState) refreshSessions(ctx context.Context) error {
	sessions, err := s.api.ListSessions(ctx)
	if err != nil {
		return err
	}
	s.Sessions = sessions
	return nil
}

func (s *SessionState) refreshMessages(ctx context.Context) error {
	msgs, err := s.api.ListMessages(ctx, s.ActiveID)
	if err != nil {
		return err
	}
	s.Messages = msgs
	return nil
}

func (s *SessionState) hasSession(id string) bool {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return true
		}
	}
	return false
}

func (s *SessionState) dropMessage(id string) {
	kept := s.Messages[:0]
	for _, m := range s.Messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.Messages = kept
}

// Active returns the active session, if it is in the list.
func (s *SessionState) Active() (Session, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == s.ActiveID {
			return sess, true
		}
	}
	return Session{}, false
}
