package model

import "time"

// Rank is the fixed privilege-tier label shown next to a username.
type Rank string

const (
	RankMember    Rank = "Member"
	RankVIP       Rank = "VIP"
	RankPremium   Rank = "Premium"
	RankModerator Rank = "Moderator"
	RankAdmin     Rank = "Admin"
)

// Ranks lists every valid rank, lowest tier first.
var Ranks = []Rank{RankMember, RankVIP, RankPremium, RankModerator, RankAdmin}

// Valid reports whether r is one of the five fixed ranks.
func (r Rank) Valid() bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

// Badge is a small decoration on a user profile.
type Badge struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

// User represents a forum member.
type User struct {
	ID         string    `json:"id" yaml:"id"`
	Username   string    `json:"username" yaml:"username"`
	Email      string    `json:"email" yaml:"email"`
	Avatar     string    `json:"avatar" yaml:"avatar"`
	Rank       Rank      `json:"rank" yaml:"rank"`
	Badges     []Badge   `json:"badges" yaml:"badges"`
	PostCount  int       `json:"post_count" yaml:"post_count"`
	Reputation int       `json:"reputation" yaml:"reputation"`
	JoinDate   time.Time `json:"join_date" yaml:"join_date"`
	LastSeen   time.Time `json:"last_seen" yaml:"last_seen"`
	Bio        string    `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// LastPost summarizes the most recent post in a category.
type LastPost struct {
	ThreadID    string    `json:"thread_id" yaml:"thread_id"`
	ThreadTitle string    `json:"thread_title" yaml:"thread_title"`
	Author      string    `json:"author" yaml:"author"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

// Category groups threads on the forum index.
type Category struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Icon        string    `json:"icon" yaml:"icon"`
	ThreadCount int       `json:"thread_count" yaml:"thread_count"`
	PostCount   int       `json:"post_count" yaml:"post_count"`
	LastPost    *LastPost `json:"last_post,omitempty" yaml:"last_post,omitempty"`
}

// LastReply summarizes the most recent reply in a thread.
type LastReply struct {
	Author    string    `json:"author" yaml:"author"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// PollOption is one choice of a Poll. Percentage is display-only.
type PollOption struct {
	ID         string  `json:"id" yaml:"id"`
	Text       string  `json:"text" yaml:"text"`
	Votes      int     `json:"votes" yaml:"votes"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Poll is embedded in a thread.
type Poll struct {
	ID         string       `json:"id" yaml:"id"`
	Question   string       `json:"question" yaml:"question"`
	Options    []PollOption `json:"options" yaml:"options"`
	TotalVotes int          `json:"total_votes" yaml:"total_votes"`
	EndsAt     *time.Time   `json:"ends_at,omitempty" yaml:"ends_at,omitempty"`
}

// Thread is a discussion inside a category.
type Thread struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Author       User       `json:"author"`
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	IsPinned     bool       `json:"is_pinned"`
	IsLocked     bool       `json:"is_locked"`
	Views        int        `json:"views"`
	Replies      int        `json:"replies"`
	Likes        int        `json:"likes"`
	Dislikes     int        `json:"dislikes"`
	CreatedAt    time.Time  `json:"created_at"`
	LastReply    *LastReply `json:"last_reply,omitempty"`
	Poll         *Poll      `json:"poll,omitempty"`
}

// Post is a single reply inside a thread. IsLiked and IsDisliked reflect the
// viewing user's fixture state.
type Post struct {
	ID         string     `json:"id"`
	ThreadID   string     `json:"thread_id"`
	Author     User       `json:"author"`
	Content    string     `json:"content"`
	Likes      int        `json:"likes"`
	Dislikes   int        `json:"dislikes"`
	CreatedAt  time.Time  `json:"created_at"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	IsLiked    bool       `json:"is_liked,omitempty"`
	IsDisliked bool       `json:"is_disliked,omitempty"`
}

// PrivateMessage is an inbox entry.
type PrivateMessage struct {
	ID        string    `json:"id"`
	Sender    User      `json:"sender"`
	Recipient User      `json:"recipient"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxShoutLength is the longest message the shoutbox accepts.
const MaxShoutLength = 200

// ShoutboxMessage is a line in the shoutbox.
type ShoutboxMessage struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EventType represents the type of websocket event.
type EventType string

const (
	EventEffect EventType = "effect"
	EventAck    EventType = "ack"
	EventError  EventType = "error"
)

// Event is the wrapper for websocket messages.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}
