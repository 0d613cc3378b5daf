package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/puyokura/zethon/effects"
	"go.uber.org/zap"
)

// ErrBlankField is returned when a required form field is empty or only
// whitespace. Nothing is emitted and the state does not change.
var ErrBlankField = errors.New("required field is blank")

// ErrTooLong is returned when a shout exceeds the shoutbox limit.
var ErrTooLong = errors.New("field is too long")

// Notices acknowledge simulated actions the way the mockup's alerts did.
const (
	NoticeCreateThread = "Create thread functionality - ready for backend integration!"
	NoticeReply        = "Reply posted! (Mock functionality)"
	NoticeDelete       = "Message deleted! (Mock functionality)"
	NoticeSent         = "Message sent! (Mock functionality)"
)

type loginForm struct {
	Username string `validate:"present"`
	Password string `validate:"present"`
}

type registerForm struct {
	Username string `validate:"present"`
	Email    string `validate:"present"`
	Password string `validate:"present"`
}

type replyForm struct {
	Content string `validate:"present"`
}

type composeForm struct {
	Recipient string `validate:"present"`
	Subject   string `validate:"present"`
	Content   string `validate:"present"`
}

type shoutForm struct {
	Message string `validate:"present,max=200"`
}

func present(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

var formTags = map[string]validator.Func{"present": present}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q: %w", tag, err)
		}
	}
	return nil
}

// Result is the outcome of an accepted action. SinkErr is set when the
// effect could not be delivered; the action still counts as acknowledged.
type Result struct {
	State   State
	Notice  string
	SinkErr error
}

// Handlers are the callbacks views invoke. They never modify the dataset.
type Handlers struct {
	sink     effects.Sink
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewHandlers returns handlers emitting to sink. It panics if the form
// validators cannot be registered.
func NewHandlers(sink effects.Sink, logger *zap.Logger) *Handlers {
	v := validator.New()
	if err := registerTags(v, formTags); err != nil {
		panic(err)
	}
	return &Handlers{
		sink:     sink,
		logger:   logger.Named("session"),
		validate: v,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to stamp effects.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

func (h *Handlers) check(form interface{}) error {
	err := h.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				return fmt.Errorf("%w: %s over %s characters", ErrTooLong, strings.ToLower(fe.Field()), fe.Param())
			}
			names = append(names, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%w: %s", ErrBlankField, strings.Join(names, ", "))
	}
	return err
}

func (h *Handlers) emit(ctx context.Context, s State, notice string, kind effects.Kind, kv ...string) Result {
	e := effects.New(kind, h.now(), kv...)
	err := h.sink.Emit(ctx, e)
	if err != nil {
		h.logger.Error("Effect not delivered", zap.String("kind", string(kind)), zap.String("id", e.ID), zap.Error(err))
	}
	return Result{State: s, Notice: notice, SinkErr: err}
}

// Login acknowledges the credentials and enters the forum.
func (h *Handlers) Login(ctx context.Context, s State, username, password string) (Result, error) {
	if err := h.check(loginForm{Username: username, Password: password}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s.Login(), "", effects.KindLogin, "username", username, "password", password), nil
}

// Register acknowledges the new account and enters the forum.
func (h *Handlers) Register(ctx context.Context, s State, username, email, password string) (Result, error) {
	if err := h.check(registerForm{Username: username, Email: email, Password: password}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s.Login(), "", effects.KindRegister,
		"username", username, "email", email, "password", password), nil
}

func (h *Handlers) Logout(s State) State {
	return s.Logout()
}

func (h *Handlers) SwitchAuthMode(s State, m AuthMode) State {
	return s.SetAuthMode(m)
}

// Navigate is onNavigate.
func (h *Handlers) Navigate(s State, p Page) State {
	return s.Navigate(p)
}

// CategoryClick is onCategoryClick.
func (h *Handlers) CategoryClick(s State, categoryID string) State {
	return s.SelectCategory(categoryID)
}

// ThreadClick is onThreadClick.
func (h *Handlers) ThreadClick(s State, threadID string) State {
	return s.SelectThread(threadID)
}

func (h *Handlers) CreateThread(ctx context.Context, s State) Result {
	return h.emit(ctx, s, NoticeCreateThread, effects.KindCreateThread, "category_id", s.SelectedCategory)
}

// LikePost is onLikePost. Counters in the dataset are left alone.
func (h *Handlers) LikePost(ctx context.Context, s State, postID string) Result {
	return h.emit(ctx, s, "", effects.KindLikePost, "post_id", postID)
}

// DislikePost is onDislikePost.
func (h *Handlers) DislikePost(ctx context.Context, s State, postID string) Result {
	return h.emit(ctx, s, "", effects.KindDislikePost, "post_id", postID)
}

// Reply is onReply.
func (h *Handlers) Reply(ctx context.Context, s State, content string) (Result, error) {
	if err := h.check(replyForm{Content: content}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s, NoticeReply, effects.KindReply, "thread_id", s.SelectedThread, "content", content), nil
}

func (h *Handlers) MessageClick(ctx context.Context, s State, messageID string) Result {
	return h.emit(ctx, s, "", effects.KindMessageClick, "message_id", messageID)
}

func (h *Handlers) ComposeNew(s State) State {
	return s.Navigate(PageCompose)
}

func (h *Handlers) CancelCompose(s State) State {
	return s.Navigate(PageMessages)
}

// DeleteMessage is onDelete. The inbox keeps the message.
func (h *Handlers) DeleteMessage(ctx context.Context, s State, messageID string) Result {
	return h.emit(ctx, s, NoticeDelete, effects.KindDeleteMsg, "message_id", messageID)
}

// SendMessage is onSendMessage. On success the inbox is shown.
func (h *Handlers) SendMessage(ctx context.Context, s State, recipient, subject, content string) (Result, error) {
	if err := h.check(composeForm{Recipient: recipient, Subject: subject, Content: content}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s.Navigate(PageMessages), NoticeSent, effects.KindSendMessage,
		"recipient", recipient, "subject", subject, "content", content), nil
}

// SendShout is onSendShout. Messages longer than 200 characters are blocked.
func (h *Handlers) SendShout(ctx context.Context, s State, message string) (Result, error) {
	if err := h.check(shoutForm{Message: message}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s, "", effects.KindSendShout, "message", message), nil
}

// CastVote acknowledges a poll vote. Poll counters stay at their fixture
// values.
func (h *Handlers) CastVote(ctx context.Context, s State, pollID, optionID string) (Result, error) {
	if err := h.check(struct {
		OptionID string `validate:"present"`
	}{optionID}); err != nil {
		return Result{State: s}, err
	}
	return h.emit(ctx, s, "", effects.KindVote, "poll_id", pollID, "option_id", optionID), nil
}
