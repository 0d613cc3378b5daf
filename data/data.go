// Package data loads the sample dataset the client renders from.
package data

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/puyokura/zethon/model"
	"gopkg.in/yaml.v3"
)

//go:embed mock.yaml
var mockYAML []byte

// fixture mirrors the YAML layout. Entities reference users by id.
type fixture struct {
	CurrentUser string           `yaml:"current_user"`
	Users       []model.User     `yaml:"users"`
	Categories  []model.Category `yaml:"categories"`
	Threads     []threadRecord   `yaml:"threads"`
	Posts       []postRecord     `yaml:"posts"`
	Messages    []messageRecord  `yaml:"messages"`
	Shouts      []shoutRecord    `yaml:"shouts"`
}

type threadRecord struct {
	ID         string           `yaml:"id"`
	Title      string           `yaml:"title"`
	Author     string           `yaml:"author"`
	CategoryID string           `yaml:"category_id"`
	IsPinned   bool             `yaml:"pinned"`
	IsLocked   bool             `yaml:"locked"`
	Views      int              `yaml:"views"`
	Replies    int              `yaml:"replies"`
	Likes      int              `yaml:"likes"`
	Dislikes   int              `yaml:"dislikes"`
	CreatedAt  time.Time        `yaml:"created_at"`
	LastReply  *model.LastReply `yaml:"last_reply"`
	Poll       *model.Poll      `yaml:"poll"`
}

type postRecord struct {
	ID         string     `yaml:"id"`
	ThreadID   string     `yaml:"thread_id"`
	Author     string     `yaml:"author"`
	Content    string     `yaml:"content"`
	Likes      int        `yaml:"likes"`
	Dislikes   int        `yaml:"dislikes"`
	CreatedAt  time.Time  `yaml:"created_at"`
	EditedAt   *time.Time `yaml:"edited_at"`
	IsLiked    bool       `yaml:"liked"`
	IsDisliked bool       `yaml:"disliked"`
}

type messageRecord struct {
	ID        string    `yaml:"id"`
	Sender    string    `yaml:"sender"`
	Recipient string    `yaml:"recipient"`
	Subject   string    `yaml:"subject"`
	Content   string    `yaml:"content"`
	IsRead    bool      `yaml:"read"`
	CreatedAt time.Time `yaml:"created_at"`
}

type shoutRecord struct {
	ID        string    `yaml:"id"`
	User      string    `yaml:"user"`
	Message   string    `yaml:"message"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Default returns the embedded sample dataset.
func Default() (*model.Dataset, []string, error) {
	return Parse(mockYAML)
}

// LoadFile reads a dataset from path, or the embedded one when path is empty.
func LoadFile(path string) (*model.Dataset, []string, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a dataset from r.
func Load(r io.Reader) (*model.Dataset, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML dataset. The returned warnings name icon
// identifiers that will render with the fallback glyph.
func Parse(raw []byte) (*model.Dataset, []string, error) {
	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds, err := fx.resolve()
	if err != nil {
		return nil, nil, err
	}

	warnings, err := ds.Validate()
	if err != nil {
		return nil, warnings, err
	}
	return ds, warnings, nil
}

func (fx *fixture) resolve() (*model.Dataset, error) {
	users := make(map[string]model.User, len(fx.Users))
	for _, u := range fx.Users {
		if u.Badges == nil {
			u.Badges = []model.Badge{}
		}
		users[u.ID] = u
	}
	user := func(owner, id string) (model.User, error) {
		u, ok := users[id]
		if !ok {
			return model.User{}, fmt.Errorf("%s: user %q not found: %w", owner, id, model.ErrInvalidDataset)
		}
		return u, nil
	}

	current, err := user("current_user", fx.CurrentUser)
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{
		CurrentUser: current,
		Categories:  fx.Categories,
	}
	for _, u := range fx.Users {
		ds.Users = append(ds.Users, users[u.ID])
	}

	categoryNames := make(map[string]string, len(fx.Categories))
	for _, c := range fx.Categories {
		categoryNames[c.ID] = c.Name
	}

	for _, t := range fx.Threads {
		author, err := user("thread "+t.ID, t.Author)
		if err != nil {
			return nil, err
		}
		ds.Threads = append(ds.Threads, model.Thread{
			ID:           t.ID,
			Title:        t.Title,
			Author:       author,
			CategoryID:   t.CategoryID,
			CategoryName: categoryNames[t.CategoryID],
			IsPinned:     t.IsPinned,
			IsLocked:     t.IsLocked,
			Views:        t.Views,
			Replies:      t.Replies,
			Likes:        t.Likes,
			Dislikes:     t.Dislikes,
			CreatedAt:    t.CreatedAt,
			LastReply:    t.LastReply,
			Poll:         t.Poll,
		})
	}

	for _, p := range fx.Posts {
		author, err := user("post "+p.ID, p.Author)
		if err != nil {
			return nil, err
		}
		ds.Posts = append(ds.Posts, model.Post{
			ID:         p.ID,
			ThreadID:   p.ThreadID,
			Author:     author,
			Content:    p.Content,
			Likes:      p.Likes,
			Dislikes:   p.Dislikes,
			CreatedAt:  p.CreatedAt,
			EditedAt:   p.EditedAt,
			IsLiked:    p.IsLiked,
			IsDisliked: p.IsDisliked,
		})
	}

	for _, m := range fx.Messages {
		sender, err := user("message "+m.ID, m.Sender)
		if err != nil {
			return nil, err
		}
		recipient, err := user("message "+m.ID, m.Recipient)
		if err != nil {
			return nil, err
		}
		ds.Messages = append(ds.Messages, model.PrivateMessage{
			ID:        m.ID,
			Sender:    sender,
			Recipient: recipient,
			Subject:   m.Subject,
			Content:   m.Content,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt,
		})
	}

	for _, s := range fx.Shouts {
		u, err := user("shout "+s.ID, s.User)
		if err != nil {
			return nil, err
		}
		ds.Shouts = append(ds.Shouts, model.ShoutboxMessage{
			ID:        s.ID,
			User:      u,
			Message:   s.Message,
			Timestamp: s.Timestamp,
		})
	}

	return ds, nil
}
