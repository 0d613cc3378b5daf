// Package session holds the navigation state of a client session, the
// derivations that turn the dataset into view-ready subsets, the view router
// and the action handlers invoked by views.
package session

// Page identifies one of the nine client pages.
type Page string

const (
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageHome     Page = "home"
	PageForum    Page = "forum"
	PageCategory Page = "category"
	PageThread   Page = "thread"
	PageProfile  Page = "profile"
	PageMessages Page = "messages"
	PageCompose  Page = "compose"
)

// Pages lists every page in header order.
var Pages = []Page{
	PageLogin, PageRegister, PageHome, PageForum, PageCategory,
	PageThread, PageProfile, PageMessages, PageCompose,
}

// AuthMode picks which auth form is shown while logged out.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// State is the navigation state of one session. It is a value: every
// mutator returns the next state and leaves the receiver untouched.
// Selections are empty strings when nothing is selected.
type State struct {
	Page             Page
	LoggedIn         bool
	SelectedCategory string
	SelectedThread   string
	AuthMode         AuthMode
}

// New returns the start-of-process state: logged out on the login form.
func New() State {
	return State{Page: PageLogin, AuthMode: AuthLogin}
}

func (s State) Login() State {
	s.LoggedIn = true
	s.Page = PageHome
	return s
}

func (s State) Logout() State {
	s.LoggedIn = false
	s.Page = PageLogin
	return s
}

// Navigate overwrites the current page. No reachability check is made.
func (s State) Navigate(p Page) State {
	s.Page = p
	return s
}

// SelectCategory records id and shows the category page, whether or not id
// names a category.
func (s State) SelectCategory(id string) State {
	s.SelectedCategory = id
	s.Page = PageCategory
	return s
}

// SelectThread records id and shows the thread page.
func (s State) SelectThread(id string) State {
	s.SelectedThread = id
	s.Page = PageThread
	return s
}

func (s State) SetAuthMode(m AuthMode) State {
	s.AuthMode = m
	return s
}
