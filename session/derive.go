package session

import (
	"fmt"
	"sort"

	"github.com/puyokura/zethon/model"
)

// SelectedCategory resolves the selected category id.
func SelectedCategory(ds *model.Dataset, s State) (model.Category, bool) {
	if s.SelectedCategory == "" {
		return model.Category{}, false
	}
	for _, c := range ds.Categories {
		if c.ID == s.SelectedCategory {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryThreads returns the threads of the selected category, pinned
// threads first. Threads with the same pinned flag keep dataset order.
func CategoryThreads(ds *model.Dataset, s State) []model.Thread {
	threads := []model.Thread{}
	if s.SelectedCategory == "" {
		return threads
	}
	for _, t := range ds.Threads {
		if t.CategoryID == s.SelectedCategory {
			threads = append(threads, t)
		}
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].IsPinned && !threads[j].IsPinned
	})
	return threads
}

// SelectedThread resolves the selected thread id.
func SelectedThread(ds *model.Dataset, s State) (model.Thread, bool) {
	if s.SelectedThread == "" {
		return model.Thread{}, false
	}
	for _, t := range ds.Threads {
		if t.ID == s.SelectedThread {
			return t, true
		}
	}
	return model.Thread{}, false
}

// ThreadPosts returns the posts of the selected thread in dataset order.
func ThreadPosts(ds *model.Dataset, s State) []model.Post {
	posts := []model.Post{}
	if s.SelectedThread == "" {
		return posts
	}
	for _, p := range ds.Posts {
		if p.ThreadID == s.SelectedThread {
			posts = append(posts, p)
		}
	}
	return posts
}

// UnreadMessageCount counts inbox messages not yet read. It is recomputed on
// every call.
func UnreadMessageCount(ds *model.Dataset) int {
	n := 0
	for _, m := range ds.Messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// Totals are the forum-wide counters shown under the category list.
type Totals struct {
	Threads int
	Posts   int
	Members int
	Newest  *model.User
}

// ForumTotals sums the category counters. Newest is the member with the
// latest join date.
func ForumTotals(ds *model.Dataset) Totals {
	var t Totals
	for _, c := range ds.Categories {
		t.Threads += c.ThreadCount
		t.Posts += c.PostCount
	}
	t.Members = len(ds.Users)
	for i := range ds.Users {
		if t.Newest == nil || ds.Users[i].JoinDate.After(t.Newest.JoinDate) {
			t.Newest = &ds.Users[i]
		}
	}
	return t
}

// InboxSummary is the line shown above the inbox.
func InboxSummary(unread int) string {
	switch unread {
	case 0:
		return "No unread messages"
	case 1:
		return "1 unread message"
	default:
		return fmt.Sprintf("%d unread messages", unread)
	}
}
