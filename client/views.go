package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/puyokura/zethon/format"
	"github.com/puyokura/zethon/icons"
	"github.com/puyokura/zethon/model"
	"github.com/puyokura/zethon/session"
)

func (m modelState) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	r := m.route()
	if !r.Chrome() {
		return m.authView()
	}

	content := m.viewport.View()
	if r.Shoutbox() && m.width >= 90 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, vLine, m.shoutboxView(m.viewport.Height))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), content, m.footerView())
}

func (m modelState) headerView() string {
	nav := []struct {
		page  session.Page
		label string
		key   string
	}{
		{session.PageHome, "Home", "h"},
		{session.PageForum, "Forums", "f"},
		{session.PageMessages, "Messages", "m"},
		{session.PageProfile, "Profile", "p"},
	}
	items := make([]string, 0, len(nav))
	for _, n := range nav {
		label := n.label
		if n.page == session.PageMessages {
			if unread := session.UnreadMessageCount(m.ds); unread > 0 {
				label += " " + tagStyle.Render(fmt.Sprint(unread))
			}
		}
		if m.state.Page == n.page {
			items = append(items, selectedStyle.Render("["+n.key+"] ")+selectedStyle.Render(label))
		} else {
			items = append(items, key(n.key, label))
		}
	}

	left := brandStyle.Render(m.brand.Name) + "  " + strings.Join(items, "  ")
	right := username(m.ds.CurrentUser) + " " + rankTag(m.ds.CurrentUser.Rank) + "  " + key("o", "Logout")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	rule := mutedStyle.Render(strings.Repeat("─", max(m.width, 1)))

	status := ""
	switch {
	case m.formErr != "":
		status = errorStyle.Render(m.formErr)
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, status, rule)
}

func (m modelState) footerView() string {
	r := m.route()
	var keys []string
	switch r.Screen {
	case session.ScreenHome, session.ScreenForum:
		keys = []string{key("j/k", "move"), key("enter", "open")}
	case session.ScreenCategory:
		keys = []string{key("j/k", "move"), key("enter", "open"), key("n", "new thread"), key("b", "back")}
	case session.ScreenThread:
		keys = []string{key("j/k", "post"), key("l/d", "like/dislike"), key("r", "reply"), key("b", "back")}
		if t, ok := session.SelectedThread(m.ds, m.state); ok && t.Poll != nil {
			keys = append(keys, key("1-9", "choose"), key("v", "vote"))
		}
	case session.ScreenInbox:
		keys = []string{key("j/k", "move"), key("enter", "read"), key("d", "delete"), key("c", "compose")}
	case session.ScreenCompose:
		keys = []string{key("tab", "next field"), key("ctrl+s", "send"), key("esc", "cancel")}
	}
	if r.Shoutbox() {
		keys = append(keys, key("s", "shout"), key("x", "shoutbox"))
	}
	keys = append(keys, key("q", "quit"))
	if m.focus == focusReply {
		keys = []string{key("ctrl+s", "post reply"), key("esc", "cancel")}
	}
	rule := mutedStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, rule,
		mutedStyle.Render("© 2026 "+m.brand.Name+"  ")+strings.Join(keys, "  "))
}

// mainView renders the content column for the current route.
func (m modelState) mainView() string {
	r := m.route()
	if r.Blank {
		return ""
	}
	switch r.Screen {
	case session.ScreenHome:
		return m.homeView()
	case session.ScreenForum:
		return m.forumView()
	case session.ScreenCategory:
		return m.categoryView()
	case session.ScreenThread:
		return m.threadView()
	case session.ScreenProfile:
		return m.profileView()
	case session.ScreenInbox:
		return m.inboxView()
	case session.ScreenCompose:
		return m.composeView()
	}
	return ""
}

func (m modelState) contentWidth(pad int) int {
	if w := m.mainWidth() - pad; w > 10 {
		return w
	}
	return 10
}

func truncate(s string, w int) string {
	return runewidth.Truncate(strings.ReplaceAll(s, "\n", " "), w, "…")
}

func (m modelState) homeView() string {
	banner := bannerStyle.Width(m.contentWidth(4)).Render(
		titleStyle.Render("Welcome to "+m.brand.Name) + "\n" + subtleStyle.Render(m.brand.Tagline))
	return lipgloss.JoinVertical(lipgloss.Left, banner, "", m.forumView())
}

func (m modelState) forumView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Forum Categories") + "\n\n")
	now := m.now()
	w := m.contentWidth(4)
	for i, c := range m.ds.Categories {
		cursor := "  "
		name := titleStyle.Render(c.Name)
		if i == m.cursor {
			cursor = selectedStyle.Render("▶ ")
			name = selectedStyle.Render(c.Name)
		}
		b.WriteString(cursor + icons.Lookup(c.Icon).Render() + " " + name + "\n")
		b.WriteString("    " + subtleStyle.Render(truncate(c.Description, w)) + "\n")
		stats := fmt.Sprintf("%s threads · %s posts", format.Count(c.ThreadCount), format.Count(c.PostCount))
		if c.LastPost != nil {
			stats += " · " + truncate(c.LastPost.ThreadTitle, 30) + " by " + c.LastPost.Author +
				", " + format.Ago(c.LastPost.Timestamp, now, format.ListingCutoff)
		}
		b.WriteString("    " + mutedStyle.Render(stats) + "\n\n")
	}

	t := session.ForumTotals(m.ds)
	newest := "-"
	if t.Newest != nil {
		newest = username(*t.Newest)
	}
	stats := fmt.Sprintf("%s  %s threads   %s  %s posts   %s  %s members   Newest: %s",
		icons.Lookup("MessageSquare").Render(), format.Count(t.Threads),
		icons.Lookup("Zap").Render(), format.Count(t.Posts),
		icons.Lookup("Users").Render(), format.Count(t.Members), newest)
	b.WriteString(panelStyle.Width(w).Render(titleStyle.Render("Forum Statistics") + "\n" + stats))
	return b.String()
}

func (m modelState) categoryView() string {
	c, _ := session.SelectedCategory(m.ds, m.state)
	threads := session.CategoryThreads(m.ds, m.state)
	now := m.now()
	w := m.contentWidth(6)

	var b strings.Builder
	b.WriteString(mutedStyle.Render("Forums › ") + titleStyle.Render(c.Name) + "\n")
	b.WriteString(subtleStyle.Render(c.Description) + "\n\n")
	if len(threads) == 0 {
		b.WriteString(mutedStyle.Render("No threads yet.") + "\n")
		return b.String()
	}
	for i, t := range threads {
		cursor := "  "
		var title string
		if i == m.cursor {
			cursor = selectedStyle.Render("▶ ")
			title = selectedStyle.Render(truncate(t.Title, w))
		} else {
			title = titleStyle.Render(truncate(t.Title, w))
		}
		var marks []string
		if t.IsPinned {
			marks = append(marks, icons.Lookup("Pin").Render())
		}
		if t.IsLocked {
			marks = append(marks, icons.Lookup("Lock").Render())
		}
		if t.Poll != nil {
			marks = append(marks, tagStyle.Render("Poll"))
		}
		prefix := ""
		if len(marks) > 0 {
			prefix = strings.Join(marks, " ") + " "
		}
		b.WriteString(cursor + prefix + title + "\n")
		meta := "by " + username(t.Author) + mutedStyle.Render(fmt.Sprintf(" · %s · %s replies · %s views",
			format.Ago(t.CreatedAt, now, format.ListingCutoff), format.Count(t.Replies), format.Count(t.Views)))
		if t.LastReply != nil {
			meta += mutedStyle.Render(" · last " + t.LastReply.Author + " " +
				format.Ago(t.LastReply.Timestamp, now, format.ListingCutoff))
		}
		b.WriteString("    " + meta + "\n\n")
	}
	return b.String()
}

func (m modelState) threadView() string {
	t, _ := session.SelectedThread(m.ds, m.state)
	posts := session.ThreadPosts(m.ds, m.state)
	now := m.now()
	w := m.contentWidth(8)

	var b strings.Builder
	b.WriteString(mutedStyle.Render("Forums › "+t.CategoryName+" › ") + titleStyle.Render(t.Title) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s views · %s replies · started %s",
		format.Count(t.Views), format.Count(t.Replies), format.Since(t.CreatedAt, now))) + "\n\n")

	if t.Poll != nil {
		b.WriteString(m.pollView(*t.Poll, w) + "\n\n")
	}

	for i, p := range posts {
		b.WriteString(m.postView(i, p, w) + "\n")
	}

	switch {
	case t.IsLocked:
		b.WriteString(mutedStyle.Render(icons.Lookup("Lock").Symbol + " This thread is locked."))
	case m.replyOpen:
		b.WriteString(formStyle.Render(titleStyle.Render("Post a Reply") + "\n" + m.reply.View()))
	default:
		b.WriteString(key("r", "Reply"))
	}
	return b.String()
}

func (m modelState) pollView(p model.Poll, w int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Question) + "\n")
	bar := w - 30
	if bar < 10 {
		bar = 10
	}
	for i, o := range p.Options {
		mark := fmt.Sprintf("%d.", i+1)
		if i == m.pollChoice {
			mark = selectedStyle.Render("●")
		}
		filled := int(o.Percentage / 100 * float64(bar))
		if filled > bar {
			filled = bar
		} else if filled < 0 {
			filled = 0
		}
		line := fmt.Sprintf("%s %s\n   %s%s %s (%s votes)", mark, o.Text,
			keyStyle.Render(strings.Repeat("█", filled)), mutedStyle.Render(strings.Repeat("░", bar-filled)),
			format.Percent(o.Percentage), format.Count(o.Votes))
		b.WriteString(line + "\n")
	}
	footer := format.Count(p.TotalVotes) + " votes"
	if p.EndsAt != nil {
		footer += " · Ends " + format.LongDate(*p.EndsAt)
	}
	if m.voted {
		footer += " · " + lipgloss.NewStyle().Foreground(good).Render("Vote recorded")
	}
	b.WriteString(mutedStyle.Render(footer))
	return panelStyle.Width(w).Render(b.String())
}

func (m modelState) postView(i int, p model.Post, w int) string {
	liked := p.IsLiked != m.liked[p.ID]
	disliked := p.IsDisliked != m.disliked[p.ID]

	head := username(p.Author) + " " + rankTag(p.Author.Rank) + mutedStyle.Render(" · "+format.Stamp(p.CreatedAt))
	if p.EditedAt != nil {
		head += mutedStyle.Render(" (edited)")
	}
	up := fmt.Sprintf("▲ %d", p.Likes)
	down := fmt.Sprintf("▼ %d", p.Dislikes)
	if liked {
		up = lipgloss.NewStyle().Foreground(good).Bold(true).Render(up)
	}
	if disliked {
		down = lipgloss.NewStyle().Foreground(bad).Bold(true).Render(down)
	}
	body := lipgloss.NewStyle().Width(w - 2).Render(p.Content)
	style := panelStyle.Width(w)
	if i == m.cursor {
		style = style.BorderForeground(accent)
	}
	return style.Render(head + "\n\n" + body + "\n\n" + up + "  " + down)
}

// recentActivity is the fixed activity feed shown on every profile.
var recentActivity = []struct {
	icon string
	text string
	when string
}{
	{"MessageSquare", "Posted in General Discussion", "2 hours ago"},
	{"Award", "Received 15 reputation points", "5 hours ago"},
	{"MessageSquare", "Created thread: Looking for teammates", "1 day ago"},
}

func (m modelState) profileView() string {
	return m.profileFor(m.ds.CurrentUser)
}

func (m modelState) profileFor(u model.User) string {
	w := m.contentWidth(4)
	var head strings.Builder
	head.WriteString(titleStyle.Render(u.Username) + " " + rankTag(u.Rank) + "\n")
	if len(u.Badges) > 0 {
		badges := make([]string, 0, len(u.Badges))
		for _, badge := range u.Badges {
			badges = append(badges, icons.Lookup(badge.Icon).RenderAs(badge.Color)+" "+badge.Name)
		}
		head.WriteString(strings.Join(badges, "  ") + "\n")
	}
	if u.ID != m.ds.CurrentUser.ID {
		head.WriteString("\n" + key("c", "Send Message") + "\n")
	}

	var stats strings.Builder
	rows := [][2]string{
		{"Total Posts", format.Count(u.PostCount)},
		{"Reputation", format.Count(u.Reputation)},
		{"Member Since", format.LongDate(u.JoinDate)},
	}
	for _, r := range rows {
		stats.WriteString(mutedStyle.Render(fmt.Sprintf("%-14s", r[0])) + r[1] + "\n")
	}

	bio := u.Bio
	if bio == "" {
		bio = "This user has not added a bio yet."
	}
	about := titleStyle.Render("About") + "\n" + subtleStyle.Render(bio)
	activity := titleStyle.Render("Activity") + "\n" + subtleStyle.Render("Last seen: "+format.Since(u.LastSeen, m.now()))

	var recent strings.Builder
	recent.WriteString(titleStyle.Render("Recent Activity"))
	for _, a := range recentActivity {
		recent.WriteString("\n" + icons.Lookup(a.icon).Render() + " " + a.text + "  " + mutedStyle.Render(a.when))
	}

	panel := panelStyle.Width(w)
	return lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(strings.TrimSuffix(head.String(), "\n")),
		panel.Render(strings.TrimSuffix(stats.String(), "\n")),
		panel.Render(about),
		panel.Render(activity),
		panel.Render(recent.String()),
	)
}

func (m modelState) inboxView() string {
	unread := session.UnreadMessageCount(m.ds)
	now := m.now()
	w := m.contentWidth(6)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Private Messages") + "  " + mutedStyle.Render(session.InboxSummary(unread)) + "\n")
	b.WriteString(selectedStyle.Render(fmt.Sprintf("Inbox (%d)", unread)) + "  " + mutedStyle.Render("Sent (0)") + "\n\n")

	for i, msg := range m.ds.Messages {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("▶ ")
		}
		dot := "  "
		subject := subtleStyle.Render(truncate(msg.Subject, w-30))
		if !msg.IsRead {
			dot = keyStyle.Render("● ")
			subject = titleStyle.Render(truncate(msg.Subject, w-30))
		}
		b.WriteString(cursor + dot + username(msg.Sender) + "  " + subject + "  " +
			mutedStyle.Render(format.Ago(msg.CreatedAt, now, format.InboxCutoff)) + "\n")
		if m.openMsg == msg.ID {
			b.WriteString(panelStyle.Width(w).Render(msg.Content) + "\n")
		}
	}
	if len(m.ds.Messages) == 0 {
		b.WriteString(mutedStyle.Render("Your inbox is empty.") + "\n")
	}
	return b.String()
}

func (m modelState) composeView() string {
	labels := []string{"To", "Subject"}
	var b strings.Builder
	b.WriteString(titleStyle.Render("New Message") + "\n\n")
	for i, in := range m.compose {
		label := mutedStyle.Render(labels[i])
		if m.focus == focusCompose && m.field == i {
			label = selectedStyle.Render(labels[i])
		}
		b.WriteString(label + "\n" + in.View() + "\n\n")
	}
	label := mutedStyle.Render("Message")
	if m.focus == focusCompose && m.field == len(m.compose) {
		label = selectedStyle.Render("Message")
	}
	b.WriteString(label + "\n" + m.body.View())
	return formStyle.Render(b.String())
}

func (m modelState) authView() string {
	title := "Welcome Back"
	sub := "Sign in to " + m.brand.Name
	submit := "Sign In"
	swap := key("ctrl+r", "Don't have an account? Sign up")
	if m.state.AuthMode == session.AuthRegister {
		title = "Create Account"
		sub = "Join the " + m.brand.Name + " community"
		submit = "Create Account"
		swap = key("ctrl+r", "Already have an account? Sign in")
	}
	labels := map[int]string{fieldUsername: "Username", fieldEmail: "Email", fieldPassword: "Password"}

	var b strings.Builder
	b.WriteString(brandStyle.Render(title) + "\n" + subtleStyle.Render(sub) + "\n\n")
	for i, f := range m.authFields() {
		label := mutedStyle.Render(labels[f])
		if m.field == i {
			label = selectedStyle.Render(labels[f])
		}
		b.WriteString(label + "\n" + m.auth[f].View() + "\n\n")
	}
	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr) + "\n\n")
	}
	b.WriteString(key("enter", submit) + "\n" + swap + "\n" + key("esc", "Quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, formStyle.Render(b.String()))
}
