// Package effects carries the simulated side effects of user actions. A Sink
// acknowledges an action without changing any forum data; swapping the Log
// sink for the Remote one is how a real backend gets attached.
package effects

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind names the action an effect stands for.
type Kind string

const (
	KindLogin        Kind = "login"
	KindRegister     Kind = "register"
	KindCreateThread Kind = "create_thread"
	KindLikePost     Kind = "like_post"
	KindDislikePost  Kind = "dislike_post"
	KindReply        Kind = "reply"
	KindMessageClick Kind = "message_click"
	KindDeleteMsg    Kind = "delete_message"
	KindSendMessage  Kind = "send_message"
	KindSendShout    Kind = "send_shout"
	KindVote         Kind = "vote"
)

// Kinds lists every effect kind the handlers emit.
var Kinds = []Kind{
	KindLogin, KindRegister, KindCreateThread, KindLikePost, KindDislikePost, KindReply,
	KindMessageClick, KindDeleteMsg, KindSendMessage, KindSendShout, KindVote,
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Effect is one acknowledged action.
type Effect struct {
	ID     string            `json:"id"`
	Kind   Kind              `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
	At     time.Time         `json:"at"`
}

// New builds an effect with a fresh id. kv is read as key, value pairs; a
// trailing key without a value is dropped.
func New(kind Kind, at time.Time, kv ...string) Effect {
	e := Effect{ID: uuid.NewString(), Kind: kind, At: at}
	if len(kv) > 1 {
		e.Fields = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Fields[kv[i]] = kv[i+1]
		}
	}
	return e
}

// Sink receives effects.
type Sink interface {
	Emit(ctx context.Context, e Effect) error
	Close() error
}

// Noop discards every effect.
type Noop struct{}

func (Noop) Emit(context.Context, Effect) error { return nil }
func (Noop) Close() error                       { return nil }

// redacted lists field keys that are never written out.
var redacted = map[string]bool{"password": true}

// Redact returns a copy of fields with secret values masked.
func Redact(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if redacted[k] {
			v = "[redacted]"
		}
		out[k] = v
	}
	return out
}

// Log writes one structured entry per effect.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Log sink writing to logger.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger.Named("effects")}
}

func (l *Log) Emit(_ context.Context, e Effect) error {
	fields := Redact(e.Fields)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zf := make([]zap.Field, 0, len(keys)+2)
	zf = append(zf, zap.String("id", e.ID), zap.Time("at", e.At))
	for _, k := range keys {
		zf = append(zf, zap.String(k, fields[k]))
	}
	l.logger.Info(string(e.Kind), zf...)
	return nil
}

func (l *Log) Close() error { return nil }
