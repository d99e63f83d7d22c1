package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sessions    []Session // newest first
	messages    map[string][]Message
	sendErr     error
	listMsgErr  error
	listedFor   []string
	createCalls int
}

func newFakeAPI(ids ...string) *fakeAPI {
	f := &fakeAPI{messages: map[string][]Message{}}
	for _, id := range ids {
		f.sessions = append(f.sessions, Session{ID: id, Title: "New Chat"})
	}
	return f
}

func (f *fakeAPI) ListSessions(ctx context.Context) ([]Session, error) {
	return append([]Session(nil), f.sessions...), nil
}

func (f *fakeAPI) CreateSession(ctx context.Context, title *string) (*Session, error) {
	f.createCalls++
	s := Session{ID: uuid.NewString(), Title: "New Chat"}
	if title != nil {
		s.Title = *title
	}
	f.sessions = append([]Session{s}, f.sessions...)
	return &s, nil
}

func (f *fakeAPI) RenameSession(ctx context.Context, id, title string) (*Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].Title = title
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, &RPCError{Code: "NOT_FOUND", Message: "chat session not found"}
}

func (f *fakeAPI) DeleteSession(ctx context.Context, id string) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			delete(f.messages, id)
			return nil
		}
	}
	return &RPCError{Code: "NOT_FOUND", Message: "chat session not found"}
}

func (f *fakeAPI) ListMessages(ctx context.Context, id string) ([]Message, error) {
	f.listedFor = append(f.listedFor, id)
	if f.listMsgErr != nil {
		return nil, f.listMsgErr
	}
	return append([]Message(nil), f.messages[id]...), nil
}

func (f *fakeAPI) SendText(ctx context.Context, id, prompt string) (*TextResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	user := Message{ID: uuid.NewString(), SessionID: id, Role: "user", Type: "text", Content: prompt}
	model := Message{ID: uuid.NewString(), SessionID: id, Role: "model", Type: "text", Content: "reply"}
	f.messages[id] = append(f.messages[id], user, model)
	return &TextResult{Success: true, UserMessage: &user, AIMessage: &model}, nil
}

func (f *fakeAPI) GenerateImage(ctx context.Context, id, prompt string) (*ImageResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.messages[id] = append(f.messages[id],
		Message{ID: uuid.NewString(), SessionID: id, Role: "user", Type: "image_prompt", Content: prompt},
		Message{ID: uuid.NewString(), SessionID: id, Role: "model", Type: "image", Content: "data:image/png;base64,QUJD"})
	return &ImageResult{Success: true, ImageURL: "data:image/png;base64,QUJD"}, nil
}

func newStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), "state.json"))
}

func TestLoadKeepsKnownHint(t *testing.T) {
	newest, older := uuid.NewString(), uuid.NewString()
	api := newFakeAPI(newest, older)
	api.messages[older] = []Message{{ID: "m1", Content: "old"}}
	store := newStore(t)
	require.NoError(t, store.Save(older))

	state := NewSessionState(api, store)
	require.NoError(t, state.Load(context.Background()))
	assert.Equal(t, older, state.ActiveID)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "old", state.Messages[0].Content)
}

func TestLoadFallsBackToNewest(t *testing.T) {
	newest, older := uuid.NewString(), uuid.NewString()
	api := newFakeAPI(newest, older)
	store := newStore(t)
	require.NoError(t, store.Save(uuid.NewString()))

	state := NewSessionState(api, store)
	require.NoError(t, state.Load(context.Background()))
	assert.Equal(t, newest, state.ActiveID)
	assert.Equal(t, newest, store.Load())
	assert.Equal(t, 0, api.createCalls)
}

func TestLoadCreatesWhenEmpty(t *testing.T) {
	api := newFakeAPI()
	store := newStore(t)

	state := NewSessionState(api, store)
	require.NoError(t, state.Load(context.Background()))
	assert.Equal(t, 1, api.createCalls)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, state.Sessions[0].ID, state.ActiveID)
	assert.Equal(t, state.ActiveID, store.Load())

	active, ok := state.Active()
	require.True(t, ok)
	assert.Equal(t, "New Chat", active.Title)
}

func TestSelectDropsPreviousTranscript(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	api := newFakeAPI(a, b)
	api.messages[a] = []Message{{ID: "m1", Content: "from a"}}
	state := NewSessionState(api, nil)
	require.NoError(t, state.Load(context.Background()))
	require.Len(t, state.Messages, 1)

	api.listMsgErr = errors.New("offline")
	err := state.Select(context.Background(), b)
	assert.Error(t, err)
	assert.Equal(t, b, state.ActiveID)
	assert.Empty(t, state.Messages)

	assert.ErrorIs(t, state.Select(context.Background(), "unknown"), ErrUnknownSession)
}

func TestSendTextRefetches(t *testing.T) {
	api := newFakeAPI(uuid.NewString())
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))

	res, err := state.SendText(ctx, "Hi")
	require.NoError(t, err)
	assert.Equal(t, "reply", res.AIMessage.Content)
	require.Len(t, state.Messages, 2)
	for _, m := range state.Messages {
		assert.False(t, m.Pending)
	}
	assert.Equal(t, "Hi", state.Messages[0].Content)
}

func TestSendFailureRollsBackPendingMessage(t *testing.T) {
	id := uuid.NewString()
	api := newFakeAPI(id)
	api.messages[id] = []Message{{ID: "m1", Content: "earlier"}}
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))

	api.sendErr = &RPCError{Code: "DEPENDENCY_FAILURE", Message: "failed to save message"}
	_, err := state.SendText(ctx, "lost?")

	var sendErr *SendError
	require.True(t, errors.As(err, &sendErr))
	assert.Equal(t, "lost?", sendErr.Prompt)
	var rpcErr *RPCError
	assert.True(t, errors.As(err, &rpcErr))

	require.Len(t, state.Messages, 1)
	assert.Equal(t, "earlier", state.Messages[0].Content)

	_, err = state.GenerateImage(ctx, "a cat")
	require.True(t, errors.As(err, &sendErr))
	assert.Equal(t, "a cat", sendErr.Prompt)
	assert.Len(t, state.Messages, 1)
}

func TestSendWithoutActiveSession(t *testing.T) {
	state := NewSessionState(newFakeAPI(), nil)
	_, err := state.SendText(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestGenerateImageRefetches(t *testing.T) {
	api := newFakeAPI(uuid.NewString())
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))

	res, err := state.GenerateImage(ctx, "a cat")
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, "image", state.Messages[1].Type)
}

func TestDeleteActiveActivatesNewestRemaining(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	api := newFakeAPI(a, b)
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))
	require.Equal(t, a, state.ActiveID)

	require.NoError(t, state.Delete(ctx, a))
	assert.Equal(t, b, state.ActiveID)
	require.Len(t, state.Sessions, 1)

	require.NoError(t, state.Delete(ctx, b))
	assert.Equal(t, 1, api.createCalls)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, state.Sessions[0].ID, state.ActiveID)
}

func TestDeleteInactiveKeepsActive(t *testing.T) {
	a, b := uuid.NewString(), uuid.NewString()
	api := newFakeAPI(a, b)
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))

	require.NoError(t, state.Delete(ctx, b))
	assert.Equal(t, a, state.ActiveID)
	assert.Len(t, state.Sessions, 1)
}

func TestRenameRefetchesList(t *testing.T) {
	a := uuid.NewString()
	api := newFakeAPI(a)
	state := NewSessionState(api, nil)
	ctx := context.Background()
	require.NoError(t, state.Load(ctx))
	before := len(api.listedFor)

	require.NoError(t, state.Rename(ctx, a, "Renamed"))
	assert.Equal(t, "Renamed", state.Sessions[0].Title)
	assert.Len(t, api.listedFor, before+1)

	err := state.Rename(ctx, uuid.NewString(), "x")
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, "NOT_FOUND", rpcErr.Code)
}
