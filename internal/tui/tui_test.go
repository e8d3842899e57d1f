package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/notify"
	"github.com/pixelhive/pixelhive-cli/internal/session"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// fakePosts counts every backend call and returns canned successes.
type fakePosts struct {
	calls map[string]int
	post  models.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{
		calls: map[string]int{},
		post: models.Post{
			ID:    "p1",
			Title: "Sunset",
			CreatedBy: &models.UserProfile{
				ID: "u1", Name: "Ada", Email: "ada@example.com",
			},
		},
	}
}

func (f *fakePosts) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func okEnvelope() api.Envelope {
	return api.Envelope{Success: true, Message: "ok"}
}

func (f *fakePosts) AllPosts(ctx context.Context) api.Result[api.FeedData] {
	f.calls["AllPosts"]++
	return api.Result[api.FeedData]{Success: true, Status: 200,
		Data: api.FeedData{Envelope: okEnvelope(), AllPosts: []models.Post{f.post}}}
}

func (f *fakePosts) MyPosts(ctx context.Context) api.Result[api.FeedData] {
	f.calls["MyPosts"]++
	return api.Result[api.FeedData]{Success: true, Status: 200,
		Data: api.FeedData{Envelope: okEnvelope(), Posts: []models.Post{f.post}}}
}

func (f *fakePosts) GetPost(ctx context.Context, id string) api.Result[api.PostData] {
	f.calls["GetPost"]++
	p := f.post
	return api.Result[api.PostData]{Success: true, Status: 200,
		Data: api.PostData{Envelope: okEnvelope(), Post: &p}}
}

func (f *fakePosts) CreatePost(ctx context.Context, upload models.PostUpload) api.Result[api.PostData] {
	f.calls["CreatePost"]++
	p := f.post
	return api.Result[api.PostData]{Success: true, Status: 201,
		Data: api.PostData{Envelope: okEnvelope(), Post: &p}}
}

func (f *fakePosts) EditPost(ctx context.Context, id string, upload models.PostUpload) api.Result[api.PostData] {
	f.calls["EditPost"]++
	p := f.post
	return api.Result[api.PostData]{Success: true, Status: 200,
		Data: api.PostData{Envelope: okEnvelope(), Post: &p}}
}

func (f *fakePosts) DeletePost(ctx context.Context, id string) api.Result[api.Envelope] {
	f.calls["DeletePost"]++
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

func (f *fakePosts) ToggleLike(ctx context.Context, id string) api.Result[api.PostData] {
	f.calls["ToggleLike"]++
	p := f.post
	return api.Result[api.PostData]{Success: true, Status: 200,
		Data: api.PostData{Envelope: okEnvelope(), Post: &p}}
}

func (f *fakePosts) AddComment(ctx context.Context, postID, text string) api.Result[api.Envelope] {
	f.calls["AddComment"]++
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

func (f *fakePosts) EditComment(ctx context.Context, postID, commentID, text string) api.Result[api.Envelope] {
	f.calls["EditComment"]++
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

func (f *fakePosts) DeleteComment(ctx context.Context, postID, commentID string) api.Result[api.Envelope] {
	f.calls["DeleteComment"]++
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

func (f *fakePosts) GetComments(ctx context.Context, postID string) api.Result[api.CommentsData] {
	f.calls["GetComments"]++
	return api.Result[api.CommentsData]{Success: true, Status: 200,
		Data: api.CommentsData{Envelope: okEnvelope()}}
}

func (f *fakePosts) Contact(ctx context.Context, msg models.ContactMessage) api.Result[api.Envelope] {
	f.calls["Contact"]++
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

// fakeAuth answers with the configured profile; nil means signed out.
type fakeAuth struct {
	user *models.UserProfile
}

func (f *fakeAuth) Profile(ctx context.Context) api.Result[api.AuthData] {
	if f.user == nil {
		return api.Result[api.AuthData]{Success: false, Status: 401,
			Data: api.AuthData{Envelope: api.Envelope{Message: "Unauthorized"}}}
	}
	return api.Result[api.AuthData]{Success: true, Status: 200,
		Data: api.AuthData{Envelope: okEnvelope(), User: f.user}}
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) api.Result[api.AuthData] {
	return f.Profile(ctx)
}

func (f *fakeAuth) Logout(ctx context.Context) api.Result[api.Envelope] {
	return api.Result[api.Envelope]{Success: true, Status: 200, Data: okEnvelope()}
}

func (f *fakeAuth) Signup(ctx context.Context, data models.SignupData) api.Result[api.Envelope] {
	return api.Result[api.Envelope]{Success: true, Status: 201, Data: okEnvelope()}
}

func newTestModel(t *testing.T, user *models.UserProfile, posts PostsService) model {
	t.Helper()
	events := notify.NewBus(0)
	sess := session.NewManager(&fakeAuth{user: user}, events, nil)
	sess.Resolve(context.Background())
	events.Drain()
	m := initialModel(context.Background(), sess, posts, events)
	m.ready = true
	m.width = 80
	m.height = 24
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a command tree synchronously, following batches.
func runCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(c)
		}
	}
}

// TestGuardAllowsPublicViews tests that the feed needs no session
func TestGuardAllowsPublicViews(t *testing.T) {
	m := newTestModel(t, nil, newFakePosts())
	target, ok := m.guard(feedView)
	if !ok || target != feedView {
		t.Errorf("Expected feed to be reachable anonymously, got view %d ok=%v", target, ok)
	}
}

// TestGuardRedirectsUnauthenticated tests that protected screens bounce to login
func TestGuardRedirectsUnauthenticated(t *testing.T) {
	m := newTestModel(t, nil, newFakePosts())
	for _, v := range []viewMode{myPostsView, createView, editView, detailView} {
		target, ok := m.guard(v)
		if ok || target != loginView {
			t.Errorf("View %d: expected redirect to login, got view %d ok=%v", v, target, ok)
		}
	}
}

// TestGuardHoldsRequestsWhileResolving tests that nothing protected renders early
func TestGuardHoldsRequestsWhileResolving(t *testing.T) {
	events := notify.NewBus(0)
	sess := session.NewManager(&fakeAuth{}, events, nil)
	// No Resolve call, so the session is still loading.
	m := initialModel(context.Background(), sess, newFakePosts(), events)

	target, ok := m.guard(myPostsView)
	if ok || target != loadingView {
		t.Errorf("Expected loading view while resolving, got view %d ok=%v", target, ok)
	}
	if m.pendingMode != myPostsView {
		t.Error("Requested view should be parked until resolution completes")
	}
}

// TestGuardAdmitsAuthenticated tests that a signed-in user passes through
func TestGuardAdmitsAuthenticated(t *testing.T) {
	user := &models.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	m := newTestModel(t, user, newFakePosts())
	target, ok := m.guard(myPostsView)
	if !ok || target != myPostsView {
		t.Errorf("Expected access, got view %d ok=%v", target, ok)
	}
}

// TestInvalidUploadNeverReachesTheNetwork tests that a non-image file is
// rejected before any backend call happens
func TestInvalidUploadNeverReachesTheNetwork(t *testing.T) {
	user := &models.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	posts := newFakePosts()
	m := newTestModel(t, user, posts)

	bogus := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(bogus, []byte("definitely not pixels"), 0o600); err != nil {
		t.Fatal(err)
	}

	m.mode = createView
	m.postForm = newPostForm("New post")
	m.postForm.setValue(postTitle, "My picture")
	m.postForm.setValue(postImagePath, bogus)
	m.postForm.setBody("a description")

	updated, cmd := m.handlePostFormKey(key("enter"))
	if cmd != nil {
		t.Error("Expected no command for an invalid upload")
	}
	if posts.total() != 0 {
		t.Errorf("Expected zero backend calls, got %d", posts.total())
	}
	if um := updated.(model); um.busy {
		t.Error("Model should not be marked busy after rejected submit")
	}

	events := m.events.Drain()
	if len(events) == 0 || events[0].Kind != notify.KindError {
		t.Error("Expected a validation error notification")
	}
}

// TestEmptyLoginNeverReachesTheNetwork tests that the login form validates
// before calling out
func TestEmptyLoginNeverReachesTheNetwork(t *testing.T) {
	posts := newFakePosts()
	m := newTestModel(t, nil, posts)
	m.mode = loginView

	_, cmd := m.handleLoginKey(key("enter"))
	if cmd != nil {
		t.Error("Expected no command for empty credentials")
	}
	if posts.total() != 0 {
		t.Errorf("Expected zero backend calls, got %d", posts.total())
	}
}

// TestCommentMutationRefreshesPostAndComments tests that a finished comment
// mutation re-reads both the post document and the comment list
func TestCommentMutationRefreshesPostAndComments(t *testing.T) {
	user := &models.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	posts := newFakePosts()
	m := newTestModel(t, user, posts)

	p := posts.post
	m.mode = detailView
	m.current = &p

	updated, cmd := m.Update(MutationDoneMsg{Op: "comment", PostID: p.ID, Success: true})
	if cmd == nil {
		t.Fatal("Expected a refresh command after a comment mutation")
	}
	runCmd(cmd)

	if posts.calls["GetPost"] != 1 {
		t.Errorf("Expected 1 GetPost call, got %d", posts.calls["GetPost"])
	}
	if posts.calls["GetComments"] != 1 {
		t.Errorf("Expected 1 GetComments call, got %d", posts.calls["GetComments"])
	}
	if updated.(model).busy {
		t.Error("Busy flag should clear when the mutation completed")
	}
}

// TestLikeFromDetailRefreshesBothReads tests that like toggles refresh the
// detail screen the same way comments do
func TestLikeFromDetailRefreshesBothReads(t *testing.T) {
	user := &models.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	posts := newFakePosts()
	m := newTestModel(t, user, posts)

	p := posts.post
	m.mode = detailView
	m.current = &p

	_, cmd := m.Update(MutationDoneMsg{Op: "like", PostID: p.ID, Success: true})
	if cmd == nil {
		t.Fatal("Expected a refresh command after a like toggle")
	}
	runCmd(cmd)

	if posts.calls["GetPost"] != 1 || posts.calls["GetComments"] != 1 {
		t.Errorf("Expected both reads to run, got GetPost=%d GetComments=%d",
			posts.calls["GetPost"], posts.calls["GetComments"])
	}
}

// TestAnonymousLikeRedirectsToLogin tests that liking from the feed without
// a session lands on the login screen instead of the backend
func TestAnonymousLikeRedirectsToLogin(t *testing.T) {
	posts := newFakePosts()
	m := newTestModel(t, nil, posts)
	m.mode = feedView
	m.feed = []models.Post{posts.post}

	updated, _ := m.handleListKey(key("l"))
	if um := updated.(model); um.mode != loginView {
		t.Errorf("Expected login view, got %d", um.mode)
	}
	if posts.calls["ToggleLike"] != 0 {
		t.Error("Anonymous like must not reach the backend")
	}
}

// TestDeleteRequiresConfirmation tests that d arms the prompt and only y
// fires the deletion
func TestDeleteRequiresConfirmation(t *testing.T) {
	user := &models.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	posts := newFakePosts()
	m := newTestModel(t, user, posts)

	p := posts.post
	m.mode = detailView
	m.current = &p

	updated, _ := m.handleDetailKey(key("d"))
	um := updated.(model)
	if !um.confirmPostDelete {
		t.Fatal("Expected delete confirmation to arm")
	}

	// Any key except y cancels.
	updated, cmd := um.handleDetailKey(key("n"))
	um = updated.(model)
	if um.confirmPostDelete || cmd != nil {
		t.Error("Expected cancellation without a backend call")
	}
	if posts.calls["DeletePost"] != 0 {
		t.Error("DeletePost should not run before confirmation")
	}

	updated, _ = um.handleDetailKey(key("d"))
	um = updated.(model)
	_, cmd = um.handleDetailKey(key("y"))
	if cmd == nil {
		t.Fatal("Expected delete command after confirmation")
	}
	runCmd(cmd)
	if posts.calls["DeletePost"] != 1 {
		t.Errorf("Expected 1 DeletePost call, got %d", posts.calls["DeletePost"])
	}
}

// TestSignupSuccessLandsOnLogin tests that a fresh account is not signed in
// automatically
func TestSignupSuccessLandsOnLogin(t *testing.T) {
	m := newTestModel(t, nil, newFakePosts())
	m.mode = signupView

	updated, _ := m.Update(AuthDoneMsg{Op: "signup", Result: session.OpResult{Success: true}})
	if um := updated.(model); um.mode != loginView {
		t.Errorf("Expected login view after signup, got %d", um.mode)
	}
}
