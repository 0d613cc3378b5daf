package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/puyokura/zethon/data"
	"github.com/puyokura/zethon/effects"
	"github.com/puyokura/zethon/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	effects []effects.Effect
}

func (r *recordingSink) Emit(_ context.Context, e effects.Effect) error {
	r.effects = append(r.effects, e)
	return nil
}

func (r *recordingSink) Close() error { return nil }

func (r *recordingSink) kinds() []effects.Kind {
	out := make([]effects.Kind, len(r.effects))
	for i, e := range r.effects {
		out[i] = e.Kind
	}
	return out
}

func newTestModel(t *testing.T) (modelState, *recordingSink) {
	t.Helper()
	ds, _, err := data.Default()
	require.NoError(t, err)

	sink := &recordingSink{}
	h := session.NewHandlers(sink, zap.NewNop())
	m := initialModel(ds, h, zap.NewNop(), Branding{Name: "Zethon.vip", Tagline: "Gaming community"})
	m.now = func() time.Time { return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC) }

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(modelState), sink
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m modelState, keys ...tea.KeyMsg) modelState {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(modelState)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func login(m modelState) modelState {
	return press(m, runes("alice"), tab, runes("pw"), enter)
}

func TestLoginFlow(t *testing.T) {
	m, sink := newTestModel(t)
	assert.Equal(t, session.ScreenLogin, m.route().Screen)
	assert.Contains(t, m.View(), "Welcome Back")

	m = login(m)
	assert.True(t, m.state.LoggedIn)
	assert.Equal(t, session.PageHome, m.state.Page)
	assert.Equal(t, []effects.Kind{effects.KindLogin}, sink.kinds())
	assert.Equal(t, "alice", sink.effects[0].Fields["username"])
	assert.Contains(t, m.View(), "Welcome to Zethon.vip")
}

func TestBlankLoginIsBlocked(t *testing.T) {
	m, sink := newTestModel(t)
	m = press(m, runes("alice"), enter)

	assert.False(t, m.state.LoggedIn)
	assert.Contains(t, m.formErr, "Please fill out this field")
	assert.Contains(t, m.formErr, "password")
	assert.Empty(t, sink.effects)
}

func TestRegisterMode(t *testing.T) {
	m, sink := newTestModel(t)
	m = press(m, ctrlR)
	assert.Equal(t, session.ScreenRegister, m.route().Screen)
	assert.Len(t, m.authFields(), 3)
	assert.Contains(t, m.View(), "Create Account")

	m = press(m, runes("bob"), tab, runes("bob@example.org"), tab, runes("pw"), enter)
	assert.True(t, m.state.LoggedIn)
	assert.Equal(t, []effects.Kind{effects.KindRegister}, sink.kinds())

	m = press(m, runes("o"))
	assert.False(t, m.state.LoggedIn)
	assert.Equal(t, session.ScreenRegister, m.route().Screen)
}

func TestBrowseToThread(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(m)

	m = press(m, runes("f"), runes("j"), enter)
	assert.Equal(t, session.PageCategory, m.state.Page)
	assert.Equal(t, "c2", m.state.SelectedCategory)
	assert.Equal(t, 0, m.cursor)

	// pinned t4 sorts ahead of t3
	m = press(m, enter)
	assert.Equal(t, session.PageThread, m.state.Page)
	assert.Equal(t, "t4", m.state.SelectedThread)
	assert.Contains(t, m.viewport.View(), "Which season had the best meta?")

	m = press(m, runes("b"))
	assert.Equal(t, session.PageCategory, m.state.Page)
	m = press(m, runes("b"))
	assert.Equal(t, session.PageForum, m.state.Page)
}

func TestThreadActions(t *testing.T) {
	m, sink := newTestModel(t)
	m = login(m)
	m.state = m.state.SelectThread("t4")
	m.resetLocal()

	m = press(m, runes("2"), runes("v"))
	assert.True(t, m.voted)
	require.Len(t, sink.effects, 2)
	assert.Equal(t, effects.KindVote, sink.effects[1].Kind)
	assert.Equal(t, "o2", sink.effects[1].Fields["option_id"])

	m = press(m, runes("l"))
	assert.True(t, m.liked["p2"])
	assert.Equal(t, effects.KindLikePost, sink.effects[2].Kind)

	m = press(m, runes("r"), runes("good call"), ctrlS)
	assert.Equal(t, session.NoticeReply, m.notice)
	assert.False(t, m.replyOpen)
	assert.Equal(t, "good call", sink.effects[3].Fields["content"])

	// leaving the thread drops local toggles
	m = press(m, runes("h"))
	assert.Empty(t, m.liked)
	assert.False(t, m.voted)
}

func TestInboxFlow(t *testing.T) {
	m, sink := newTestModel(t)
	m = login(m)
	unread := session.UnreadMessageCount(m.ds)

	m = press(m, runes("m"), enter)
	assert.Equal(t, session.ScreenInbox, m.route().Screen)
	assert.Equal(t, "m1", m.openMsg)

	m = press(m, runes("d"))
	assert.Equal(t, session.NoticeDelete, m.notice)
	assert.Len(t, m.ds.Messages, 4)
	assert.Equal(t, unread, session.UnreadMessageCount(m.ds))

	m = press(m, runes("c"))
	assert.Equal(t, session.ScreenCompose, m.route().Screen)
	m = press(m, runes("bob"), tab, runes("hi"), tab, runes("hello there"), ctrlS)
	assert.Equal(t, session.PageMessages, m.state.Page)
	assert.Equal(t, session.NoticeSent, m.notice)

	assert.Equal(t, []effects.Kind{
		effects.KindLogin, effects.KindMessageClick, effects.KindDeleteMsg, effects.KindSendMessage,
	}, sink.kinds())
	assert.Equal(t, unread, session.UnreadMessageCount(m.ds))
}

func TestComposeCancel(t *testing.T) {
	m, sink := newTestModel(t)
	m = login(m)
	m = press(m, runes("m"), runes("c"), runes("bob"), ctrlS)
	assert.Equal(t, session.PageCompose, m.state.Page)
	assert.NotEmpty(t, m.formErr)

	m = press(m, esc)
	assert.Equal(t, session.PageMessages, m.state.Page)
	assert.Len(t, sink.effects, 1)
}

func TestShoutbox(t *testing.T) {
	m, sink := newTestModel(t)
	m = login(m)
	assert.True(t, m.route().Shoutbox())
	assert.Contains(t, m.View(), "Shoutbox")

	m = press(m, runes("s"), runes("gg all"), enter)
	require.Len(t, sink.effects, 2)
	assert.Equal(t, effects.KindSendShout, sink.effects[1].Kind)
	assert.Equal(t, "gg all", sink.effects[1].Fields["message"])
	assert.Empty(t, m.shout.Value())
	assert.Len(t, m.ds.Shouts, 5)

	m = press(m, esc, runes("x"))
	assert.False(t, m.shoutOpen)
}

func TestSelectionMissRendersBlank(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(m)
	m = press(m, runes("f"))
	m.state = m.state.SelectThread("nope")
	m.refresh()

	r := m.route()
	assert.True(t, r.Blank)
	assert.Empty(t, m.mainView())
	assert.NotPanics(t, func() { m.View() })
}

func TestProfileView(t *testing.T) {
	m, _ := newTestModel(t)
	m = login(m)
	m = press(m, runes("p"))
	require.Equal(t, session.ScreenProfile, m.route().Screen)

	own := m.mainView()
	assert.Contains(t, own, "About")
	assert.Contains(t, own, "Recent Activity")
	assert.Contains(t, own, "Created thread: Looking for teammates")
	assert.NotContains(t, own, "Send Message")

	other := m.ds.Users[1]
	other.Bio = ""
	view := m.profileFor(other)
	assert.Contains(t, view, "Send Message")
	assert.Contains(t, view, "This user has not added a bio yet.")
}
