package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	likedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("204"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))
)

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	body := m.renderContent()

	if t := m.renderToasts(); t != "" {
		return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, t, footer)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

func (m model) renderContent() string {
	bodyHeight := m.height - 4

	switch m.mode {
	case loadingView:
		return LoadingOverlay(m.width, bodyHeight, m.spinner, "Checking session...")
	case feedView, myPostsView:
		if m.loading {
			return LoadingOverlay(m.width, bodyHeight, m.spinner, "Fetching posts...")
		}
		return m.renderFeed()
	case detailView:
		if m.loading || m.current == nil {
			return LoadingOverlay(m.width, bodyHeight, m.spinner, "Fetching post...")
		}
		return m.renderDetail()
	case loginView:
		return m.loginForm.view("enter: log in • ctrl+s: sign up instead • esc: back")
	case signupView:
		return m.signupForm.view("enter: create account • esc: back to login")
	case createView:
		return m.postForm.view("enter: publish • tab: next field • esc: cancel")
	case editView:
		return m.postForm.view("enter: save changes • tab: next field • esc: cancel")
	case contactView:
		return m.contactForm.view("enter: send • tab: next field • esc: back")
	}
	return ""
}

func (m model) renderFeed() string {
	if len(m.feed) == 0 {
		if m.feedMine {
			return dimStyle.Render("\n  You have no posts yet. Press n to create one.")
		}
		return dimStyle.Render("\n  No posts yet.")
	}

	me := m.sess.Current()
	var s strings.Builder
	for i, post := range m.feed {
		cursor := "  "
		title := titleStyle.Render(truncate(post.Title, 40))
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			title = selectedStyle.Render(truncate(post.Title, 40))
		}
		counts := dimStyle.Render(fmt.Sprintf("♥ %d  %d comments", len(post.Likes), len(post.Comments)))
		line := title + "  " + counts
		if me.User != nil && post.LikedBy(me.User.ID) {
			line += likedStyle.Render(" ♥")
		}
		s.WriteString(cursor + line + "\n")

		byline := "unknown"
		if post.CreatedBy != nil {
			byline = post.CreatedBy.Name
		}
		s.WriteString(dimStyle.Render(fmt.Sprintf("    by %s on %s", byline, post.CreatedAt.Format("Jan 2, 2006"))) + "\n")
	}
	return s.String()
}

func (m model) renderDetail() string {
	post := m.current
	var s strings.Builder

	s.WriteString(titleStyle.Render(post.Title) + "\n")
	byline := "unknown"
	if post.CreatedBy != nil {
		byline = post.CreatedBy.Name
	}
	s.WriteString(dimStyle.Render(fmt.Sprintf("by %s on %s", byline, post.CreatedAt.Format("Jan 2, 2006"))) + "\n\n")

	if post.Description != "" {
		s.WriteString(post.Description + "\n\n")
	}
	s.WriteString(dimStyle.Render("image: "+post.ImageURL) + "\n")
	s.WriteString(likedStyle.Render(fmt.Sprintf("♥ %d", len(post.Likes))))
	s.WriteString(dimStyle.Render(fmt.Sprintf("  %d comments", len(post.Comments))) + "\n\n")

	if m.confirmPostDelete {
		s.WriteString(selectedStyle.Render("Delete this post? (y/n)") + "\n\n")
	}
	if m.confirmCommentDelete != "" {
		s.WriteString(selectedStyle.Render("Delete this comment? (y/n)") + "\n\n")
	}

	s.WriteString(titleStyle.Render("Comments") + "\n")
	if len(m.comments) == 0 {
		s.WriteString(dimStyle.Render("  No comments yet.") + "\n")
	}
	for i, c := range m.comments {
		cursor := "  "
		author := "unknown"
		if c.User != nil {
			author = c.User.Name
		}
		line := fmt.Sprintf("%s: %s", author, truncate(c.Text, 60))
		if i == m.commentSel {
			cursor = selectedStyle.Render("> ")
			line = selectedStyle.Render(line)
		}
		s.WriteString(cursor + line + "\n")
	}

	if m.commenting {
		label := "Add a comment"
		if m.editingCommentID != "" {
			label = "Edit comment"
		}
		s.WriteString("\n" + formLabelStyle.Render(label) + "\n")
		s.WriteString(m.commentInput.View() + "\n")
	}

	return s.String()
}

func (m model) renderHeader() string {
	title := "PixelHive"
	switch m.mode {
	case myPostsView:
		title = "PixelHive - My Posts"
	case detailView:
		if m.current != nil {
			title = fmt.Sprintf("PixelHive - %s", truncate(m.current.Title, 30))
		}
	case loginView:
		title = "PixelHive - Log in"
	case signupView:
		title = "PixelHive - Sign up"
	case createView:
		title = "PixelHive - New post"
	case editView:
		title = "PixelHive - Edit post"
	case contactView:
		title = "PixelHive - Contact"
	}

	if u := m.sess.Current().User; u != nil {
		title += fmt.Sprintf("  (%s)", u.Name)
	}
	return headerStyle.Render(title)
}

func (m model) renderFooter() string {
	var info string
	switch m.mode {
	case feedView:
		info = "↑/↓: navigate • enter: open • l: like • n: new • m: my posts • c: contact"
		if m.sess.Current().IsAuthenticated {
			info += " • o: log out"
		} else {
			info += " • i: log in • s: sign up"
		}
		info += " • q: quit"
	case myPostsView:
		info = "↑/↓: navigate • enter: open • e: edit • n: new • esc: all posts • q: quit"
	case detailView:
		info = "l: like • a: comment • e/x: edit/delete comment"
		if m.ownsCurrentPost() {
			info += " • E: edit post • d: delete post"
		}
		info += " • esc: back • q: quit"
	default:
		info = "esc: back"
	}
	return footerStyle.Render(info)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
