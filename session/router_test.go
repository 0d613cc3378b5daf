package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLoggedOutOnlyReachesAuth(t *testing.T) {
	ds := testDataset()
	for _, p := range append(Pages, "bogus") {
		s := New().Login().Logout().Navigate(p)
		assert.False(t, s.LoggedIn)
		assert.Equal(t, Route{Screen: ScreenLogin}, Resolve(s, ds), p)

		s = s.SetAuthMode(AuthRegister)
		assert.Equal(t, Route{Screen: ScreenRegister}, Resolve(s, ds), p)
	}
}

func TestResolveLoggedIn(t *testing.T) {
	ds := testDataset()
	base := New().Login()

	tests := []struct {
		name  string
		state State
		want  Route
	}{
		{"home", base, Route{Screen: ScreenHome}},
		{"forum", base.Navigate(PageForum), Route{Screen: ScreenForum}},
		{"category", base.SelectCategory("C1"), Route{Screen: ScreenCategory}},
		{"category missing", base.SelectCategory("nope"), Route{Screen: ScreenCategory, Blank: true}},
		{"category unselected", base.Navigate(PageCategory), Route{Screen: ScreenCategory, Blank: true}},
		{"thread", base.SelectThread("T1"), Route{Screen: ScreenThread}},
		{"thread unselected", base.Navigate(PageThread), Route{Screen: ScreenThread, Blank: true}},
		{"profile", base.Navigate(PageProfile), Route{Screen: ScreenProfile}},
		{"messages", base.Navigate(PageMessages), Route{Screen: ScreenInbox}},
		{"compose", base.Navigate(PageCompose), Route{Screen: ScreenCompose}},
		{"login page while logged in", base.Navigate(PageLogin), Route{Screen: ScreenHome, Blank: true}},
		{"register page while logged in", base.Navigate(PageRegister), Route{Screen: ScreenHome, Blank: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.state, ds))
		})
	}
}

func TestRouteChromeAndShoutbox(t *testing.T) {
	assert.False(t, Route{Screen: ScreenLogin}.Chrome())
	assert.False(t, Route{Screen: ScreenRegister}.Chrome())
	assert.True(t, Route{Screen: ScreenInbox}.Chrome())

	assert.True(t, Route{Screen: ScreenHome}.Shoutbox())
	assert.True(t, Route{Screen: ScreenThread}.Shoutbox())
	assert.False(t, Route{Screen: ScreenThread, Blank: true}.Shoutbox())
	assert.False(t, Route{Screen: ScreenProfile}.Shoutbox())
	assert.False(t, Route{Screen: ScreenCompose}.Shoutbox())
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "inbox", ScreenInbox.String())
	assert.Equal(t, "unknown", Screen(42).String())
}
