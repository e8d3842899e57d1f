package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelhive/pixelhive-cli/internal/notify"
	"github.com/pixelhive/pixelhive-cli/internal/session"
	"github.com/pixelhive/pixelhive-cli/internal/validate"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

type viewMode int

const (
	loadingView viewMode = iota
	feedView
	myPostsView
	detailView
	loginView
	signupView
	createView
	editView
	contactView
)

type model struct {
	ctx    context.Context
	sess   *session.Manager
	posts  PostsService
	events *notify.Bus

	mode        viewMode
	pendingMode viewMode // requested screen, held while the session resolves

	feed       []models.Post
	feedMine   bool
	cursor     int
	loading    bool
	current    *models.Post
	comments   []models.Comment
	commentSel int

	loginForm   form
	signupForm  form
	postForm    form
	contactForm form
	editingID   string // post being edited, empty on create

	commentInput     textinput.Model
	commenting       bool
	editingCommentID string

	confirmPostDelete    bool
	confirmCommentDelete string // comment ID pending deletion

	busy bool // a mutation is in flight; submit keys are ignored

	spinner *Spinner
	toasts  []toast
	ready   bool
	width   int
	height  int
}

func initialModel(ctx context.Context, sess *session.Manager, posts PostsService, events *notify.Bus) model {
	ci := textinput.New()
	ci.Placeholder = "Write a comment"
	ci.CharLimit = 500
	ci.Width = 50

	return model{
		ctx:          ctx,
		sess:         sess,
		posts:        posts,
		events:       events,
		mode:         loadingView,
		pendingMode:  feedView,
		loginForm:    newLoginForm(),
		signupForm:   newSignupForm(),
		postForm:     newPostForm("New post"),
		contactForm:  newContactForm(),
		commentInput: ci,
		spinner:      NewSpinner(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		resolveSessionCmd(m.ctx, m.sess),
		toastTickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case ToastTickMsg:
		m.spinner.Next()
		m.collectToasts()
		m.expireToasts(time.Time(msg))
		return m, toastTickCmd()

	case SessionResolvedMsg:
		target, _ := m.guard(m.pendingMode)
		return m.enter(target)

	case FeedLoadedMsg:
		m.loading = false
		if msg.Err != "" {
			m.events.Error(msg.Err)
			return m, nil
		}
		m.feed = msg.Posts
		m.feedMine = msg.Mine
		if m.cursor >= len(m.feed) {
			m.cursor = max(0, len(m.feed)-1)
		}
		return m, nil

	case PostLoadedMsg:
		m.loading = false
		if msg.Err != "" {
			m.events.Error(msg.Err)
			m.mode = feedView
			return m, nil
		}
		m.current = msg.Post
		return m, nil

	case CommentsLoadedMsg:
		if msg.Err != "" {
			m.events.Error(msg.Err)
			return m, nil
		}
		if m.current != nil && m.current.ID == msg.PostID {
			m.comments = msg.Comments
			if m.commentSel >= len(m.comments) {
				m.commentSel = max(0, len(m.comments)-1)
			}
		}
		return m, nil

	case AuthDoneMsg:
		return m.handleAuthDone(msg)

	case MutationDoneMsg:
		return m.handleMutationDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// enter switches to a view and kicks off whatever loads it needs. The guard
// has already approved the transition.
func (m model) enter(v viewMode) (tea.Model, tea.Cmd) {
	m.mode = v
	switch v {
	case feedView:
		m.loading = true
		m.cursor = 0
		return m, loadFeedCmd(m.ctx, m.posts, false)
	case myPostsView:
		m.loading = true
		m.cursor = 0
		return m, loadFeedCmd(m.ctx, m.posts, true)
	case detailView:
		if m.current == nil {
			return m.enter(feedView)
		}
		m.loading = true
		m.commentSel = 0
		m.commenting = false
		m.confirmPostDelete = false
		m.confirmCommentDelete = ""
		return m, refreshDetailCmd(m.ctx, m.posts, m.current.ID)
	case createView:
		m.postForm = newPostForm("New post")
		m.editingID = ""
	case editView:
		if m.current == nil {
			return m.enter(feedView)
		}
		m.postForm = newPostForm("Edit post")
		m.postForm.setValue(postTitle, m.current.Title)
		m.postForm.setBody(m.current.Description)
		m.editingID = m.current.ID
	case loginView:
		m.loginForm.reset()
	case signupView:
		m.signupForm.reset()
	case contactView:
		m.contactForm.reset()
	}
	return m, nil
}

func (m model) handleAuthDone(msg AuthDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	switch msg.Op {
	case "login":
		if !msg.Result.Success {
			return m, nil
		}
		// Resume whatever screen the guard parked, or land on the feed.
		target := m.pendingMode
		if !protectedView(target) {
			target = feedView
		}
		m.pendingMode = feedView
		return m.enter(target)
	case "signup":
		if !msg.Result.Success {
			return m, nil
		}
		return m.enter(loginView)
	case "logout":
		m.current = nil
		m.comments = nil
		return m.enter(feedView)
	}
	return m, nil
}

func (m model) handleMutationDone(msg MutationDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != "" {
		m.events.Error(msg.Err)
		return m, nil
	}

	switch msg.Op {
	case "create":
		m.events.Success("Post created")
		return m.enter(myPostsView)
	case "edit":
		m.events.Success("Post updated")
		return m.enter(detailView)
	case "delete":
		m.events.Success("Post deleted")
		m.current = nil
		m.comments = nil
		return m.enter(myPostsView)
	case "like":
		return m, m.afterDetailMutation(msg.PostID)
	case "comment":
		m.events.Success("Comment added")
		m.commentInput.SetValue("")
		m.commenting = false
		return m, m.afterDetailMutation(msg.PostID)
	case "comment-edit":
		m.events.Success("Comment updated")
		m.commentInput.SetValue("")
		m.commenting = false
		m.editingCommentID = ""
		return m, m.afterDetailMutation(msg.PostID)
	case "comment-delete":
		m.events.Success("Comment deleted")
		return m, m.afterDetailMutation(msg.PostID)
	case "contact":
		m.events.Success("Message sent. We will get back to you soon")
		m.contactForm.reset()
		return m, nil
	}
	return m, nil
}

// afterDetailMutation re-reads the post and its comments so counts and lists
// never drift apart. Like toggles from the feed refresh the feed instead.
func (m *model) afterDetailMutation(postID string) tea.Cmd {
	if m.mode == detailView && m.current != nil && m.current.ID == postID {
		return refreshDetailCmd(m.ctx, m.posts, postID)
	}
	return loadFeedCmd(m.ctx, m.posts, m.feedMine)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case loadingView:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case feedView, myPostsView:
		return m.handleListKey(msg)
	case detailView:
		return m.handleDetailKey(msg)
	case loginView:
		return m.handleLoginKey(msg)
	case signupView:
		return m.handleSignupKey(msg)
	case createView, editView:
		return m.handlePostFormKey(msg)
	case contactView:
		return m.handleContactKey(msg)
	}
	return m, nil
}

func (m model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.feed)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.feed) == 0 {
			return m, nil
		}
		post := m.feed[m.cursor]
		m.current = &post
		target, ok := m.guard(detailView)
		if !ok {
			return m.enter(target)
		}
		return m.enter(detailView)

	case "r":
		m.loading = true
		return m, loadFeedCmd(m.ctx, m.posts, m.feedMine)

	case "l":
		if len(m.feed) == 0 || m.busy {
			return m, nil
		}
		if !m.sess.Current().IsAuthenticated {
			m.events.Info("Please log in to like posts")
			return m.enter(loginView)
		}
		m.busy = true
		return m, toggleLikeCmd(m.ctx, m.posts, m.feed[m.cursor].ID)

	case "n":
		target, _ := m.guard(createView)
		return m.enter(target)

	case "m":
		target, _ := m.guard(myPostsView)
		return m.enter(target)

	case "e":
		if m.mode != myPostsView || len(m.feed) == 0 {
			return m, nil
		}
		post := m.feed[m.cursor]
		m.current = &post
		target, _ := m.guard(editView)
		return m.enter(target)

	case "c":
		return m.enter(contactView)

	case "i":
		if !m.sess.Current().IsAuthenticated {
			return m.enter(loginView)
		}

	case "s":
		if !m.sess.Current().IsAuthenticated {
			return m.enter(signupView)
		}

	case "o":
		if m.sess.Current().IsAuthenticated && !m.busy {
			m.busy = true
			return m, logoutCmd(m.ctx, m.sess)
		}

	case "esc":
		if m.mode == myPostsView {
			return m.enter(feedView)
		}
	}
	return m, nil
}

func (m model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m.enter(feedView)
	}

	// Confirmation prompts swallow every key except the answer.
	if m.confirmPostDelete {
		switch msg.String() {
		case "y":
			m.confirmPostDelete = false
			m.busy = true
			return m, deletePostCmd(m.ctx, m.posts, m.current.ID)
		default:
			m.confirmPostDelete = false
		}
		return m, nil
	}
	if m.confirmCommentDelete != "" {
		id := m.confirmCommentDelete
		m.confirmCommentDelete = ""
		if msg.String() == "y" {
			m.busy = true
			return m, deleteCommentCmd(m.ctx, m.posts, m.current.ID, id)
		}
		return m, nil
	}

	if m.commenting {
		switch msg.String() {
		case "esc":
			m.commenting = false
			m.editingCommentID = ""
			m.commentInput.SetValue("")
			m.commentInput.Blur()
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			text := m.commentInput.Value()
			if err := validate.Comment(text); err != nil {
				m.events.Error(err.Error())
				return m, nil
			}
			m.busy = true
			if m.editingCommentID != "" {
				return m, editCommentCmd(m.ctx, m.posts, m.current.ID, m.editingCommentID, text)
			}
			return m, addCommentCmd(m.ctx, m.posts, m.current.ID, text)
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	owns := m.ownsCurrentPost()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.current = nil
		m.comments = nil
		if m.feedMine {
			return m.enter(myPostsView)
		}
		return m.enter(feedView)

	case "up", "k":
		if m.commentSel > 0 {
			m.commentSel--
		}

	case "down", "j":
		if m.commentSel < len(m.comments)-1 {
			m.commentSel++
		}

	case "l":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, toggleLikeCmd(m.ctx, m.posts, m.current.ID)

	case "a":
		m.commenting = true
		m.editingCommentID = ""
		m.commentInput.SetValue("")
		m.commentInput.Focus()
		return m, textinput.Blink

	case "e":
		c, ok := m.selectedComment()
		if ok && m.ownsComment(c) {
			m.commenting = true
			m.editingCommentID = c.ID
			m.commentInput.SetValue(c.Text)
			m.commentInput.Focus()
			return m, textinput.Blink
		}

	case "x":
		c, ok := m.selectedComment()
		if ok && m.ownsComment(c) {
			m.confirmCommentDelete = c.ID
		}

	case "E":
		if owns {
			return m.enter(editView)
		}

	case "d":
		if owns {
			m.confirmPostDelete = true
		}

	case "r":
		m.loading = true
		return m, refreshDetailCmd(m.ctx, m.posts, m.current.ID)
	}
	return m, nil
}

func (m model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.enter(feedView)
	case "tab", "down":
		m.loginForm.next()
		return m, nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return m, nil
	case "ctrl+s":
		return m.enter(signupView)
	case "enter":
		if m.busy {
			return m, nil
		}
		creds := m.loginForm.credentials()
		if err := validate.Login(creds); err != nil {
			m.events.Error(err.Error())
			return m, nil
		}
		m.busy = true
		return m, loginCmd(m.ctx, m.sess, creds)
	}
	var cmd tea.Cmd
	m.loginForm, cmd = m.loginForm.update(msg)
	return m, cmd
}

func (m model) handleSignupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.enter(loginView)
	case "tab", "down":
		m.signupForm.next()
		return m, nil
	case "shift+tab", "up":
		m.signupForm.prev()
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		data, confirm := m.signupForm.signupData()
		if err := validate.Signup(data, confirm); err != nil {
			m.events.Error(err.Error())
			return m, nil
		}
		m.busy = true
		return m, signupCmd(m.ctx, m.sess, data)
	}
	var cmd tea.Cmd
	m.signupForm, cmd = m.signupForm.update(msg)
	return m, cmd
}

func (m model) handlePostFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.editingID != "" {
			return m.enter(detailView)
		}
		return m.enter(feedView)
	case "tab":
		m.postForm.next()
		return m, nil
	case "shift+tab":
		m.postForm.prev()
		return m, nil
	case "enter":
		if m.postForm.bodyFocused() {
			break // newline in the description
		}
		if m.busy {
			return m, nil
		}
		upload := m.postForm.postUpload()
		creating := m.editingID == ""
		if err := validate.PostUpload(upload, creating); err != nil {
			m.events.Error(err.Error())
			return m, nil
		}
		m.busy = true
		if creating {
			return m, createPostCmd(m.ctx, m.posts, upload)
		}
		return m, editPostCmd(m.ctx, m.posts, m.editingID, upload)
	}
	var cmd tea.Cmd
	m.postForm, cmd = m.postForm.update(msg)
	return m, cmd
}

func (m model) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.enter(feedView)
	case "tab":
		m.contactForm.next()
		return m, nil
	case "shift+tab":
		m.contactForm.prev()
		return m, nil
	case "enter":
		if m.contactForm.bodyFocused() {
			break
		}
		if m.busy {
			return m, nil
		}
		cm := m.contactForm.contactMessage()
		if err := validate.Contact(cm); err != nil {
			m.events.Error(err.Error())
			return m, nil
		}
		m.busy = true
		return m, contactCmd(m.ctx, m.posts, cm)
	}
	var cmd tea.Cmd
	m.contactForm, cmd = m.contactForm.update(msg)
	return m, cmd
}

func (m model) ownsCurrentPost() bool {
	snap := m.sess.Current()
	return m.current != nil && m.current.CreatedBy != nil &&
		snap.User != nil && m.current.CreatedBy.ID == snap.User.ID
}

func (m model) ownsComment(c models.Comment) bool {
	snap := m.sess.Current()
	return c.User != nil && snap.User != nil && c.User.ID == snap.User.ID
}

func (m model) selectedComment() (models.Comment, bool) {
	if m.commentSel < 0 || m.commentSel >= len(m.comments) {
		return models.Comment{}, false
	}
	return m.comments[m.commentSel], true
}

// Run starts the interactive terminal client and blocks until it exits.
func Run(ctx context.Context, sess *session.Manager, posts PostsService, events *notify.Bus) error {
	p := tea.NewProgram(
		initialModel(ctx, sess, posts, events),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
