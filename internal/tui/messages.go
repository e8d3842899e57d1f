package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/session"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// PostsService is the backend surface the TUI consumes. *api.PostsAPI
// satisfies it; tests substitute fakes.
type PostsService interface {
	AllPosts(ctx context.Context) api.Result[api.FeedData]
	MyPosts(ctx context.Context) api.Result[api.FeedData]
	GetPost(ctx context.Context, id string) api.Result[api.PostData]
	CreatePost(ctx context.Context, upload models.PostUpload) api.Result[api.PostData]
	EditPost(ctx context.Context, id string, upload models.PostUpload) api.Result[api.PostData]
	DeletePost(ctx context.Context, id string) api.Result[api.Envelope]
	ToggleLike(ctx context.Context, id string) api.Result[api.PostData]
	AddComment(ctx context.Context, postID, text string) api.Result[api.Envelope]
	EditComment(ctx context.Context, postID, commentID, text string) api.Result[api.Envelope]
	DeleteComment(ctx context.Context, postID, commentID string) api.Result[api.Envelope]
	GetComments(ctx context.Context, postID string) api.Result[api.CommentsData]
	Contact(ctx context.Context, msg models.ContactMessage) api.Result[api.Envelope]
}

// Message types for async operations. Every network call runs inside a
// tea.Cmd; the Update loop stays single-threaded and consumes these results.
type (
	// SessionResolvedMsg delivers the settled session after startup
	// resolution.
	SessionResolvedMsg struct {
		Snapshot session.Snapshot
	}

	// FeedLoadedMsg contains a loaded post list.
	FeedLoadedMsg struct {
		Posts []models.Post
		Mine  bool
		Err   string
	}

	// PostLoadedMsg contains a loaded post document.
	PostLoadedMsg struct {
		Post *models.Post
		Err  string
	}

	// CommentsLoadedMsg contains a loaded comment list.
	CommentsLoadedMsg struct {
		PostID   string
		Comments []models.Comment
		Err      string
	}

	// AuthDoneMsg reports a finished login/signup/logout.
	AuthDoneMsg struct {
		Op     string // "login", "signup", "logout"
		Result session.OpResult
	}

	// MutationDoneMsg reports a finished post/comment mutation. PostID is
	// set when the detail view must refresh, and Deleted when the mutated
	// post no longer exists.
	MutationDoneMsg struct {
		Op      string
		PostID  string
		Deleted bool
		Success bool
		Err     string
	}

	// ToastTickMsg expires visible toasts.
	ToastTickMsg time.Time
)

func resolveSessionCmd(ctx context.Context, sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return SessionResolvedMsg{Snapshot: sess.Resolve(ctx)}
	}
}

func loadFeedCmd(ctx context.Context, svc PostsService, mine bool) tea.Cmd {
	return func() tea.Msg {
		var res api.Result[api.FeedData]
		if mine {
			res = svc.MyPosts(ctx)
		} else {
			res = svc.AllPosts(ctx)
		}
		if !res.Success || !res.Data.OK() {
			return FeedLoadedMsg{Mine: mine, Err: failureMessage(res.Error, res.Data.Envelope, "Failed to fetch posts")}
		}
		return FeedLoadedMsg{Posts: res.Data.List(), Mine: mine}
	}
}

func loadPostCmd(ctx context.Context, svc PostsService, id string) tea.Cmd {
	return func() tea.Msg {
		res := svc.GetPost(ctx, id)
		if !res.Success || !res.Data.OK() || res.Data.Post == nil {
			return PostLoadedMsg{Err: failureMessage(res.Error, res.Data.Envelope, "Failed to fetch post")}
		}
		return PostLoadedMsg{Post: res.Data.Post}
	}
}

func loadCommentsCmd(ctx context.Context, svc PostsService, postID string) tea.Cmd {
	return func() tea.Msg {
		res := svc.GetComments(ctx, postID)
		if !res.Success || !res.Data.OK() {
			return CommentsLoadedMsg{PostID: postID, Err: failureMessage(res.Error, res.Data.Envelope, "Failed to fetch comments")}
		}
		return CommentsLoadedMsg{PostID: postID, Comments: res.Data.Comments}
	}
}

// refreshDetailCmd reloads the post document and its comment list together.
// Comment counts live on the post while comment bodies live behind a second
// endpoint, so every comment or like mutation must trigger both reads.
func refreshDetailCmd(ctx context.Context, svc PostsService, postID string) tea.Cmd {
	return tea.Batch(
		loadPostCmd(ctx, svc, postID),
		loadCommentsCmd(ctx, svc, postID),
	)
}

func loginCmd(ctx context.Context, sess *session.Manager, creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		return AuthDoneMsg{Op: "login", Result: sess.Login(ctx, creds)}
	}
}

func logoutCmd(ctx context.Context, sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		return AuthDoneMsg{Op: "logout", Result: sess.Logout(ctx)}
	}
}

func signupCmd(ctx context.Context, sess *session.Manager, data models.SignupData) tea.Cmd {
	return func() tea.Msg {
		return AuthDoneMsg{Op: "signup", Result: sess.Signup(ctx, data)}
	}
}

func createPostCmd(ctx context.Context, svc PostsService, upload models.PostUpload) tea.Cmd {
	return func() tea.Msg {
		res := svc.CreatePost(ctx, upload)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "create", Err: failureMessage(res.Error, res.Data.Envelope, "Failed to create post")}
		}
		return MutationDoneMsg{Op: "create", Success: true}
	}
}

func editPostCmd(ctx context.Context, svc PostsService, id string, upload models.PostUpload) tea.Cmd {
	return func() tea.Msg {
		res := svc.EditPost(ctx, id, upload)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "edit", PostID: id, Err: failureMessage(res.Error, res.Data.Envelope, "Failed to update post")}
		}
		return MutationDoneMsg{Op: "edit", PostID: id, Success: true}
	}
}

func deletePostCmd(ctx context.Context, svc PostsService, id string) tea.Cmd {
	return func() tea.Msg {
		res := svc.DeletePost(ctx, id)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "delete", PostID: id, Err: failureMessage(res.Error, res.Data, "Failed to delete post")}
		}
		return MutationDoneMsg{Op: "delete", PostID: id, Deleted: true, Success: true}
	}
}

func toggleLikeCmd(ctx context.Context, svc PostsService, id string) tea.Cmd {
	return func() tea.Msg {
		res := svc.ToggleLike(ctx, id)
		if !res.Success {
			return MutationDoneMsg{Op: "like", PostID: id, Err: failureMessage(res.Error, res.Data.Envelope, "Failed to toggle like")}
		}
		return MutationDoneMsg{Op: "like", PostID: id, Success: true}
	}
}

func addCommentCmd(ctx context.Context, svc PostsService, postID, text string) tea.Cmd {
	return func() tea.Msg {
		res := svc.AddComment(ctx, postID, text)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "comment", PostID: postID, Err: failureMessage(res.Error, res.Data, "Failed to add comment")}
		}
		return MutationDoneMsg{Op: "comment", PostID: postID, Success: true}
	}
}

func editCommentCmd(ctx context.Context, svc PostsService, postID, commentID, text string) tea.Cmd {
	return func() tea.Msg {
		res := svc.EditComment(ctx, postID, commentID, text)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "comment-edit", PostID: postID, Err: failureMessage(res.Error, res.Data, "Failed to update comment")}
		}
		return MutationDoneMsg{Op: "comment-edit", PostID: postID, Success: true}
	}
}

func deleteCommentCmd(ctx context.Context, svc PostsService, postID, commentID string) tea.Cmd {
	return func() tea.Msg {
		res := svc.DeleteComment(ctx, postID, commentID)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "comment-delete", PostID: postID, Err: failureMessage(res.Error, res.Data, "Failed to delete comment")}
		}
		return MutationDoneMsg{Op: "comment-delete", PostID: postID, Success: true}
	}
}

func contactCmd(ctx context.Context, svc PostsService, msg models.ContactMessage) tea.Cmd {
	return func() tea.Msg {
		res := svc.Contact(ctx, msg)
		if !res.Success || !res.Data.OK() {
			return MutationDoneMsg{Op: "contact", Err: failureMessage(res.Error, res.Data, "Failed to send message")}
		}
		return MutationDoneMsg{Op: "contact", Success: true}
	}
}

func toastTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg(t)
	})
}

// failureMessage picks the transport message, then the server's, then the
// fallback. Server messages are never assumed present.
func failureMessage(transportErr string, env api.Envelope, fallback string) string {
	if transportErr != "" {
		return "Network error. Please try again."
	}
	return env.ErrorMessage(fallback)
}
