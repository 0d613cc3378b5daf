package main

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/puyokura/zethon/model"
	"github.com/puyokura/zethon/session"
	"go.uber.org/zap"
)

type focus int

const (
	focusNone focus = iota
	focusAuth
	focusShout
	focusReply
	focusCompose
)

// Auth form fields. The login form shows username and password only.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

const (
	shoutWidth   = 38
	headerHeight = 3
	footerHeight = 2
)

// Branding is the text shown in the banner and footer.
type Branding struct {
	Name    string
	Tagline string
}

// modelState is the bubbletea model. state is the navigation state; all
// other fields are view-local and reset whenever navigation changes.
type modelState struct {
	ctx      context.Context
	ds       *model.Dataset
	handlers *session.Handlers
	logger   *zap.Logger
	brand    Branding
	now      func() time.Time

	state session.State

	width    int
	height   int
	ready    bool
	viewport viewport.Model

	focus     focus
	field     int
	auth      []textinput.Model
	compose   []textinput.Model
	body      textarea.Model
	reply     textarea.Model
	shout     textinput.Model
	shoutOpen bool

	cursor     int
	notice     string
	formErr    string
	replyOpen  bool
	openMsg    string
	liked      map[string]bool
	disliked   map[string]bool
	pollChoice int
	voted      bool
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func initialModel(ds *model.Dataset, h *session.Handlers, logger *zap.Logger, brand Branding) modelState {
	auth := []textinput.Model{
		newInput("Enter username", 64),
		newInput("Enter email", 128),
		newInput("Enter password", 128),
	}
	auth[fieldPassword].EchoMode = textinput.EchoPassword
	auth[fieldPassword].EchoCharacter = '•'

	body := textarea.New()
	body.Placeholder = "Enter your message"
	body.ShowLineNumbers = false
	body.SetHeight(8)

	reply := textarea.New()
	reply.Placeholder = "Enter your reply..."
	reply.ShowLineNumbers = false
	reply.SetHeight(4)

	shout := newInput("Type your message...", model.MaxShoutLength)
	shout.Width = shoutWidth - 6

	m := modelState{
		ctx:       context.Background(),
		ds:        ds,
		handlers:  h,
		logger:    logger.Named("ui"),
		brand:     brand,
		now:       time.Now,
		state:     session.New(),
		auth:      auth,
		compose:   []textinput.Model{newInput("Enter username", 64), newInput("Enter subject", 120)},
		body:      body,
		reply:     reply,
		shout:     shout,
		shoutOpen: true,
	}
	m.resetLocal()
	m.focusAuthField()
	return m
}

func (m modelState) Init() tea.Cmd {
	return textinput.Blink
}

func (m modelState) route() session.Route {
	return session.Resolve(m.state, m.ds)
}

// resetLocal clears the view-local state that must not survive navigation.
func (m *modelState) resetLocal() {
	m.cursor = 0
	m.notice = ""
	m.formErr = ""
	m.replyOpen = false
	m.openMsg = ""
	m.liked = map[string]bool{}
	m.disliked = map[string]bool{}
	m.pollChoice = -1
	m.voted = false
	m.reply.Reset()
	m.reply.Blur()
	m.viewport.GotoTop()
}

// apply moves to next. Any change in navigation resets view-local state.
func (m *modelState) apply(next session.State) tea.Cmd {
	if next == m.state {
		return nil
	}
	m.state = next
	m.resetLocal()
	m.blurAll()

	switch {
	case !next.LoggedIn:
		m.field = 0
		return m.focusAuthField()
	case m.route().Screen == session.ScreenCompose:
		for i := range m.compose {
			m.compose[i].SetValue("")
		}
		m.body.Reset()
		m.field = 0
		return m.focusComposeField()
	}
	return nil
}

func (m *modelState) blurAll() {
	for i := range m.auth {
		m.auth[i].Blur()
	}
	for i := range m.compose {
		m.compose[i].Blur()
	}
	m.body.Blur()
	m.reply.Blur()
	m.shout.Blur()
	m.focus = focusNone
}

func (m modelState) authFields() []int {
	if m.state.AuthMode == session.AuthRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldUsername, fieldPassword}
}

func (m *modelState) focusAuthField() tea.Cmd {
	m.blurAll()
	m.focus = focusAuth
	fields := m.authFields()
	if m.field >= len(fields) {
		m.field = 0
	}
	return m.auth[fields[m.field]].Focus()
}

func (m *modelState) focusComposeField() tea.Cmd {
	m.blurAll()
	m.focus = focusCompose
	if m.field < len(m.compose) {
		return m.compose[m.field].Focus()
	}
	return m.body.Focus()
}

func (m *modelState) resize(width, height int) {
	m.width = width
	m.height = height
	h := height - headerHeight - footerHeight
	if h < 3 {
		h = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.mainWidth(), h)
		m.ready = true
	} else {
		m.viewport.Width = m.mainWidth()
		m.viewport.Height = h
	}
	m.body.SetWidth(min(m.mainWidth()-8, 80))
	m.reply.SetWidth(min(m.mainWidth()-8, 80))
}

func (m modelState) mainWidth() int {
	w := m.width
	if m.route().Shoutbox() && m.width >= 90 {
		w -= shoutWidth + 1
	}
	if w < 20 {
		w = 20
	}
	return w
}

// refresh re-renders the main column into the viewport. Derived data is
// recomputed every time.
func (m *modelState) refresh() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.mainWidth()
	m.viewport.SetContent(m.mainView())
}

func (m modelState) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	// Panic recovery to catch crashes
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			m.logger.Error("Panic in Update", zap.Any("panic", r), zap.ByteString("stack", buf[:n]))
			next, cmd = m, nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case !m.state.LoggedIn:
			cmd = m.updateAuth(msg)
		case m.focus != focusNone:
			cmd = m.updateInput(msg)
		default:
			cmd = m.updateKeys(msg)
		}
		m.refresh()
		return m, cmd
	}

	cmd = m.forward(msg)
	return m, cmd
}

// forward hands non-key messages (cursor blink) to the focused input.
func (m *modelState) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusAuth:
		f := m.authFields()[m.field]
		m.auth[f], cmd = m.auth[f].Update(msg)
	case focusShout:
		m.shout, cmd = m.shout.Update(msg)
	case focusReply:
		m.reply, cmd = m.reply.Update(msg)
	case focusCompose:
		if m.field < len(m.compose) {
			m.compose[m.field], cmd = m.compose[m.field].Update(msg)
		} else {
			m.body, cmd = m.body.Update(msg)
		}
	}
	return cmd
}

func (m *modelState) updateAuth(msg tea.KeyMsg) tea.Cmd {
	fields := m.authFields()
	switch msg.String() {
	case "esc":
		return tea.Quit
	case "ctrl+r":
		mode := session.AuthRegister
		if m.state.AuthMode == session.AuthRegister {
			mode = session.AuthLogin
		}
		m.state = m.handlers.SwitchAuthMode(m.state, mode)
		m.formErr = ""
		m.field = 0
		return m.focusAuthField()
	case "tab", "down":
		m.field = (m.field + 1) % len(fields)
		return m.focusAuthField()
	case "shift+tab", "up":
		m.field = (m.field + len(fields) - 1) % len(fields)
		return m.focusAuthField()
	case "enter":
		return m.submitAuth()
	}
	return m.forward(msg)
}

func (m *modelState) submitAuth() tea.Cmd {
	user := m.auth[fieldUsername].Value()
	email := m.auth[fieldEmail].Value()
	pass := m.auth[fieldPassword].Value()

	var (
		res session.Result
		err error
	)
	if m.state.AuthMode == session.AuthRegister {
		res, err = m.handlers.Register(m.ctx, m.state, user, email, pass)
	} else {
		res, err = m.handlers.Login(m.ctx, m.state, user, pass)
	}
	if err != nil {
		m.formErr = fieldMessage(err)
		return nil
	}
	for i := range m.auth {
		m.auth[i].SetValue("")
	}
	cmd := m.apply(res.State)
	m.acknowledge(res)
	return cmd
}

// fieldMessage turns a blocked submission into the short hint shown under
// the form.
func fieldMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrBlankField):
		fields := strings.TrimPrefix(err.Error(), session.ErrBlankField.Error()+": ")
		return "Please fill out this field: " + fields
	case errors.Is(err, session.ErrTooLong):
		return "Message is too long"
	}
	return err.Error()
}

// acknowledge shows the outcome of an accepted action.
func (m *modelState) acknowledge(res session.Result) {
	m.formErr = ""
	if res.SinkErr != nil {
		m.notice = "Could not deliver action: " + res.SinkErr.Error()
		return
	}
	if res.Notice != "" {
		m.notice = res.Notice
	}
}

func (m *modelState) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusShout:
		switch msg.String() {
		case "esc":
			m.blurAll()
			return nil
		case "enter":
			res, err := m.handlers.SendShout(m.ctx, m.state, m.shout.Value())
			if err != nil {
				m.formErr = fieldMessage(err)
				return nil
			}
			m.shout.SetValue("")
			m.acknowledge(res)
			return nil
		}

	case focusReply:
		switch msg.String() {
		case "esc":
			m.replyOpen = false
			m.reply.Reset()
			m.blurAll()
			return nil
		case "ctrl+s":
			res, err := m.handlers.Reply(m.ctx, m.state, m.reply.Value())
			if err != nil {
				m.formErr = fieldMessage(err)
				return nil
			}
			m.replyOpen = false
			m.reply.Reset()
			m.blurAll()
			m.acknowledge(res)
			return nil
		}

	case focusCompose:
		switch msg.String() {
		case "esc":
			return m.apply(m.handlers.CancelCompose(m.state))
		case "tab":
			m.field = (m.field + 1) % (len(m.compose) + 1)
			return m.focusComposeField()
		case "shift+tab":
			m.field = (m.field + len(m.compose)) % (len(m.compose) + 1)
			return m.focusComposeField()
		case "enter":
			if m.field < len(m.compose) {
				m.field++
				return m.focusComposeField()
			}
		case "ctrl+s":
			res, err := m.handlers.SendMessage(m.ctx, m.state,
				m.compose[0].Value(), m.compose[1].Value(), m.body.Value())
			if err != nil {
				m.formErr = fieldMessage(err)
				return nil
			}
			cmd := m.apply(res.State)
			m.acknowledge(res)
			return cmd
		}
	}
	return m.forward(msg)
}

func (m *modelState) listLen() int {
	switch m.route().Screen {
	case session.ScreenHome, session.ScreenForum:
		return len(m.ds.Categories)
	case session.ScreenCategory:
		return len(session.CategoryThreads(m.ds, m.state))
	case session.ScreenThread:
		return len(session.ThreadPosts(m.ds, m.state))
	case session.ScreenInbox:
		return len(m.ds.Messages)
	}
	return 0
}

func (m *modelState) updateKeys(msg tea.KeyMsg) tea.Cmd {
	r := m.route()

	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "h":
		return m.apply(m.handlers.Navigate(m.state, session.PageHome))
	case "f":
		return m.apply(m.handlers.Navigate(m.state, session.PageForum))
	case "m":
		return m.apply(m.handlers.Navigate(m.state, session.PageMessages))
	case "p":
		return m.apply(m.handlers.Navigate(m.state, session.PageProfile))
	case "o":
		return m.apply(m.handlers.Logout(m.state))
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case "s":
		if r.Shoutbox() && m.shoutOpen {
			m.blurAll()
			m.focus = focusShout
			return m.shout.Focus()
		}
		return nil
	case "x":
		if r.Shoutbox() {
			m.shoutOpen = !m.shoutOpen
		}
		return nil
	case "b", "backspace":
		return m.back()
	}

	if r.Blank {
		return nil
	}

	switch r.Screen {
	case session.ScreenHome, session.ScreenForum:
		if msg.String() == "enter" && m.cursor < len(m.ds.Categories) {
			return m.apply(m.handlers.CategoryClick(m.state, m.ds.Categories[m.cursor].ID))
		}

	case session.ScreenCategory:
		switch msg.String() {
		case "enter":
			threads := session.CategoryThreads(m.ds, m.state)
			if m.cursor < len(threads) {
				return m.apply(m.handlers.ThreadClick(m.state, threads[m.cursor].ID))
			}
		case "n":
			m.acknowledge(m.handlers.CreateThread(m.ctx, m.state))
		}

	case session.ScreenThread:
		return m.updateThreadKeys(msg)

	case session.ScreenInbox:
		if m.cursor >= len(m.ds.Messages) {
			if msg.String() == "c" {
				return m.apply(m.handlers.ComposeNew(m.state))
			}
			return nil
		}
		id := m.ds.Messages[m.cursor].ID
		switch msg.String() {
		case "enter":
			m.acknowledge(m.handlers.MessageClick(m.ctx, m.state, id))
			if m.openMsg == id {
				m.openMsg = ""
			} else {
				m.openMsg = id
			}
		case "d":
			m.acknowledge(m.handlers.DeleteMessage(m.ctx, m.state, id))
		case "c":
			return m.apply(m.handlers.ComposeNew(m.state))
		}
	}
	return nil
}

func (m *modelState) updateThreadKeys(msg tea.KeyMsg) tea.Cmd {
	thread, _ := session.SelectedThread(m.ds, m.state)
	posts := session.ThreadPosts(m.ds, m.state)
	k := msg.String()

	switch k {
	case "r":
		m.replyOpen = true
		m.blurAll()
		m.focus = focusReply
		return m.reply.Focus()
	case "l", "d":
		if m.cursor >= len(posts) {
			return nil
		}
		id := posts[m.cursor].ID
		if k == "l" {
			m.liked[id] = !m.liked[id]
			m.acknowledge(m.handlers.LikePost(m.ctx, m.state, id))
		} else {
			m.disliked[id] = !m.disliked[id]
			m.acknowledge(m.handlers.DislikePost(m.ctx, m.state, id))
		}
		return nil
	case "v":
		if thread.Poll == nil || m.voted || m.pollChoice < 0 {
			return nil
		}
		res, err := m.handlers.CastVote(m.ctx, m.state, thread.Poll.ID, thread.Poll.Options[m.pollChoice].ID)
		if err != nil {
			m.formErr = fieldMessage(err)
			return nil
		}
		m.voted = true
		m.acknowledge(res)
		return nil
	}

	if thread.Poll != nil && !m.voted && len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if i := int(k[0] - '1'); i < len(thread.Poll.Options) {
			m.pollChoice = i
		}
	}
	return nil
}

// back goes one level up the forum hierarchy.
func (m *modelState) back() tea.Cmd {
	switch m.route().Screen {
	case session.ScreenThread:
		if _, ok := session.SelectedCategory(m.ds, m.state); ok {
			return m.apply(m.handlers.CategoryClick(m.state, m.state.SelectedCategory))
		}
		return m.apply(m.handlers.Navigate(m.state, session.PageForum))
	case session.ScreenCategory:
		return m.apply(m.handlers.Navigate(m.state, session.PageForum))
	case session.ScreenCompose:
		return m.apply(m.handlers.CancelCompose(m.state))
	}
	return nil
}
