package session

import "github.com/puyokura/zethon/model"

// Screen is a renderable view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenHome
	ScreenForum
	ScreenCategory
	ScreenThread
	ScreenProfile
	ScreenInbox
	ScreenCompose
)

var screenNames = [...]string{
	ScreenLogin:    "login",
	ScreenRegister: "register",
	ScreenHome:     "home",
	ScreenForum:    "forum",
	ScreenCategory: "category",
	ScreenThread:   "thread",
	ScreenProfile:  "profile",
	ScreenInbox:    "inbox",
	ScreenCompose:  "compose",
}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return "unknown"
}

// Route is the router's decision. Blank means the screen's main area has
// nothing to show because its selection does not resolve.
type Route struct {
	Screen Screen
	Blank  bool
}

// Chrome reports whether the header and footer are drawn.
func (r Route) Chrome() bool {
	return r.Screen != ScreenLogin && r.Screen != ScreenRegister
}

// Shoutbox reports whether the shoutbox panel accompanies the screen.
func (r Route) Shoutbox() bool {
	switch r.Screen {
	case ScreenHome, ScreenForum, ScreenCategory, ScreenThread:
		return !r.Blank
	}
	return false
}

// Resolve picks the screen for s. Logged-out sessions only ever reach the
// auth forms.
func Resolve(s State, ds *model.Dataset) Route {
	if !s.LoggedIn {
		if s.AuthMode == AuthRegister {
			return Route{Screen: ScreenRegister}
		}
		return Route{Screen: ScreenLogin}
	}

	switch s.Page {
	case PageHome:
		return Route{Screen: ScreenHome}
	case PageForum:
		return Route{Screen: ScreenForum}
	case PageCategory:
		_, ok := SelectedCategory(ds, s)
		return Route{Screen: ScreenCategory, Blank: !ok}
	case PageThread:
		_, ok := SelectedThread(ds, s)
		return Route{Screen: ScreenThread, Blank: !ok}
	case PageProfile:
		return Route{Screen: ScreenProfile}
	case PageMessages:
		return Route{Screen: ScreenInbox}
	case PageCompose:
		return Route{Screen: ScreenCompose}
	}

	// login, register or an unknown page while logged in: nothing matches.
	return Route{Screen: ScreenHome, Blank: true}
}
