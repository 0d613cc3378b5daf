package session

import (
	"testing"
	"time"

	"github.com/puyokura/zethon/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *model.Dataset {
	alice := model.User{ID: "u1", Username: "alice", Rank: model.RankAdmin, JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	bob := model.User{ID: "u2", Username: "bob", Rank: model.RankMember, JoinDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return &model.Dataset{
		CurrentUser: alice,
		Users:       []model.User{alice, bob},
		Categories: []model.Category{
			{ID: "C1", Name: "General", ThreadCount: 10, PostCount: 100},
			{ID: "C2", Name: "Offtopic", ThreadCount: 5, PostCount: 1500},
		},
		Threads: []model.Thread{
			{ID: "T1", CategoryID: "C1", IsPinned: false},
			{ID: "T2", CategoryID: "C1", IsPinned: true},
			{ID: "T3", CategoryID: "C2", IsPinned: false},
			{ID: "T4", CategoryID: "C1", IsPinned: false},
			{ID: "T5", CategoryID: "C1", IsPinned: true},
		},
		Posts: []model.Post{
			{ID: "P1", ThreadID: "T1"},
			{ID: "P2", ThreadID: "T2"},
			{ID: "P3", ThreadID: "T1"},
		},
		Messages: []model.PrivateMessage{
			{ID: "M1", IsRead: false},
			{ID: "M2", IsRead: true},
			{ID: "M3", IsRead: false},
		},
	}
}

func TestNewState(t *testing.T) {
	s := New()
	assert.Equal(t, State{Page: PageLogin, AuthMode: AuthLogin}, s)
	assert.False(t, s.LoggedIn)
}

func TestLoginLogout(t *testing.T) {
	s := New().Login()
	assert.True(t, s.LoggedIn)
	assert.Equal(t, PageHome, s.Page)
	assert.Equal(t, AuthLogin, s.AuthMode)

	s = s.Logout()
	assert.False(t, s.LoggedIn)
	assert.Equal(t, PageLogin, s.Page)
}

func TestMutatorsReturnNewValue(t *testing.T) {
	s := New()
	next := s.Login().SelectCategory("C1")
	assert.Equal(t, New(), s)
	assert.Equal(t, "C1", next.SelectedCategory)
}

func TestNavigateIsUnconditional(t *testing.T) {
	for _, p := range Pages {
		s := New().Login().Navigate(p)
		assert.Equal(t, p, s.Page)
	}
	assert.Equal(t, Page("nowhere"), New().Navigate("nowhere").Page)
}

func TestSelectCategoryAlwaysShowsCategoryPage(t *testing.T) {
	ds := testDataset()
	for _, id := range []string{"C1", "missing", ""} {
		s := New().Login().SelectCategory(id)
		assert.Equal(t, PageCategory, s.Page, id)
		assert.Equal(t, id, s.SelectedCategory)
	}

	s := New().Login().SelectCategory("missing")
	_, ok := SelectedCategory(ds, s)
	assert.False(t, ok)
	assert.Empty(t, CategoryThreads(ds, s))
}

func TestSelectThreadKeepsCategory(t *testing.T) {
	s := New().Login().SelectCategory("C1").SelectThread("T2")
	assert.Equal(t, PageThread, s.Page)
	assert.Equal(t, "C1", s.SelectedCategory)
	assert.Equal(t, "T2", s.SelectedThread)
}

func TestSetAuthMode(t *testing.T) {
	s := New().SetAuthMode(AuthRegister)
	assert.Equal(t, AuthRegister, s.AuthMode)
	assert.Equal(t, PageLogin, s.Page)
}

func ids(threads []model.Thread) []string {
	out := make([]string, len(threads))
	for i, t := range threads {
		out[i] = t.ID
	}
	return out
}

func TestCategoryThreadsPinnedFirst(t *testing.T) {
	ds := &model.Dataset{
		Categories: []model.Category{{ID: "C1"}},
		Threads: []model.Thread{
			{ID: "T1", CategoryID: "C1", IsPinned: false},
			{ID: "T2", CategoryID: "C1", IsPinned: true},
		},
	}
	s := New().Login().SelectCategory("C1")
	assert.Equal(t, []string{"T2", "T1"}, ids(CategoryThreads(ds, s)))
}

func TestCategoryThreadsStable(t *testing.T) {
	ds := testDataset()
	s := New().Login().SelectCategory("C1")

	got := CategoryThreads(ds, s)
	assert.Equal(t, []string{"T2", "T5", "T1", "T4"}, ids(got))

	seenUnpinned := false
	for _, th := range got {
		if !th.IsPinned {
			seenUnpinned = true
		}
		assert.False(t, seenUnpinned && th.IsPinned, "pinned thread after an unpinned one")
	}

	assert.Equal(t, "T1", ds.Threads[0].ID, "dataset order must not change")
}

func TestCategoryThreadsNoSelection(t *testing.T) {
	got := CategoryThreads(testDataset(), New().Login())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectedThreadAndPosts(t *testing.T) {
	ds := testDataset()

	s := New().Login().SelectThread("T1")
	th, ok := SelectedThread(ds, s)
	require.True(t, ok)
	assert.Equal(t, "T1", th.ID)

	posts := ThreadPosts(ds, s)
	require.Len(t, posts, 2)
	assert.Equal(t, "P1", posts[0].ID)
	assert.Equal(t, "P3", posts[1].ID)
}

func TestSelectNonexistentThread(t *testing.T) {
	ds := testDataset()
	s := New().Login().SelectThread("nonexistent")

	_, ok := SelectedThread(ds, s)
	assert.False(t, ok)
	assert.Empty(t, ThreadPosts(ds, s))
	assert.Equal(t, Route{Screen: ScreenThread, Blank: true}, Resolve(s, ds))
}

func TestUnreadMessageCount(t *testing.T) {
	assert.Equal(t, 2, UnreadMessageCount(testDataset()))
	assert.Equal(t, 0, UnreadMessageCount(&model.Dataset{}))
}

func TestDerivationsAreIdempotent(t *testing.T) {
	ds := testDataset()
	s := New().Login().SelectCategory("C1").SelectThread("T1")

	type derived struct {
		cat      model.Category
		threads  []model.Thread
		thread   model.Thread
		posts    []model.Post
		unread   int
		totals   Totals
		route    Route
		catOK    bool
		threadOK bool
	}
	render := func() derived {
		var d derived
		d.cat, d.catOK = SelectedCategory(ds, s)
		d.threads = CategoryThreads(ds, s)
		d.thread, d.threadOK = SelectedThread(ds, s)
		d.posts = ThreadPosts(ds, s)
		d.unread = UnreadMessageCount(ds)
		d.totals = ForumTotals(ds)
		d.route = Resolve(s, ds)
		return d
	}

	assert.Equal(t, render(), render())
}

func TestForumTotals(t *testing.T) {
	totals := ForumTotals(testDataset())
	assert.Equal(t, 15, totals.Threads)
	assert.Equal(t, 1600, totals.Posts)
	assert.Equal(t, 2, totals.Members)
	require.NotNil(t, totals.Newest)
	assert.Equal(t, "bob", totals.Newest.Username)

	empty := ForumTotals(&model.Dataset{})
	assert.Nil(t, empty.Newest)
}

func TestInboxSummary(t *testing.T) {
	assert.Equal(t, "No unread messages", InboxSummary(0))
	assert.Equal(t, "1 unread message", InboxSummary(1))
	assert.Equal(t, "4 unread messages", InboxSummary(4))
}
