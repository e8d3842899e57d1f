package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pixelhive/pixelhive-cli/internal/validate"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// FeedData wraps the post list endpoints. The backend names the list field
// differently per endpoint (allPosts vs posts), so both are mapped.
type FeedData struct {
	Envelope
	AllPosts []models.Post `json:"allPosts"`
	Posts    []models.Post `json:"posts"`
}

// List returns whichever list field the endpoint populated.
func (d FeedData) List() []models.Post {
	if d.AllPosts != nil {
		return d.AllPosts
	}
	return d.Posts
}

// PostData wraps the single-post endpoints.
type PostData struct {
	Envelope
	Post *models.Post `json:"post"`
}

// CommentsData wraps the comment list endpoint.
type CommentsData struct {
	Envelope
	Comments []models.Comment `json:"comments"`
}

// PostsAPI wraps the /posts and /contact endpoints.
type PostsAPI struct {
	client *Client
}

// NewPostsAPI creates the posts facade.
func NewPostsAPI(client *Client) *PostsAPI {
	return &PostsAPI{client: client}
}

// AllPosts fetches the global feed.
func (p *PostsAPI) AllPosts(ctx context.Context) Result[FeedData] {
	return doJSON[FeedData](ctx, p.client, http.MethodGet, "/posts/allPosts", nil)
}

// MyPosts fetches the authenticated user's posts.
func (p *PostsAPI) MyPosts(ctx context.Context) Result[FeedData] {
	return doJSON[FeedData](ctx, p.client, http.MethodGet, "/posts/myPosts", nil)
}

// GetPost fetches a single post document. Comments live behind GetComments;
// the two reads are independent.
func (p *PostsAPI) GetPost(ctx context.Context, id string) Result[PostData] {
	return doJSON[PostData](ctx, p.client, http.MethodGet, "/posts/getPost/"+url.PathEscape(id), nil)
}

// CreatePost uploads a new post as multipart form data.
func (p *PostsAPI) CreatePost(ctx context.Context, upload models.PostUpload) Result[PostData] {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return transportFailure[PostData](err.Error())
	}
	return doMultipart[PostData](ctx, p.client, http.MethodPost, "/posts/createPost", body, contentType)
}

// EditPost updates a post; the image part is optional.
func (p *PostsAPI) EditPost(ctx context.Context, id string, upload models.PostUpload) Result[PostData] {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return transportFailure[PostData](err.Error())
	}
	return doMultipart[PostData](ctx, p.client, http.MethodPut, "/posts/editPost/"+url.PathEscape(id), body, contentType)
}

// DeletePost removes a post.
func (p *PostsAPI) DeletePost(ctx context.Context, id string) Result[Envelope] {
	return doJSON[Envelope](ctx, p.client, http.MethodDelete, "/posts/deletePost/"+url.PathEscape(id), nil)
}

// ToggleLike flips the caller's like on a post.
func (p *PostsAPI) ToggleLike(ctx context.Context, id string) Result[PostData] {
	return doJSON[PostData](ctx, p.client, http.MethodPut, "/posts/likeToggle/"+url.PathEscape(id), nil)
}

type commentPayload struct {
	Comment string `json:"comment"`
}

// AddComment appends a comment to a post.
func (p *PostsAPI) AddComment(ctx context.Context, postID, text string) Result[Envelope] {
	return doJSON[Envelope](ctx, p.client, http.MethodPost, "/posts/comment/"+url.PathEscape(postID), commentPayload{Comment: text})
}

// EditComment rewrites an existing comment.
func (p *PostsAPI) EditComment(ctx context.Context, postID, commentID, text string) Result[Envelope] {
	path := "/posts/comment/" + url.PathEscape(postID) + "/edit/" + url.PathEscape(commentID)
	return doJSON[Envelope](ctx, p.client, http.MethodPut, path, commentPayload{Comment: text})
}

// DeleteComment removes a comment.
func (p *PostsAPI) DeleteComment(ctx context.Context, postID, commentID string) Result[Envelope] {
	path := "/posts/comment/" + url.PathEscape(postID) + "/delete/" + url.PathEscape(commentID)
	return doJSON[Envelope](ctx, p.client, http.MethodDelete, path, nil)
}

// GetComments fetches the comment list for a post.
func (p *PostsAPI) GetComments(ctx context.Context, postID string) Result[CommentsData] {
	return doJSON[CommentsData](ctx, p.client, http.MethodGet, "/posts/getUserComments/"+url.PathEscape(postID), nil)
}

// Contact submits the contact form.
func (p *PostsAPI) Contact(ctx context.Context, msg models.ContactMessage) Result[Envelope] {
	return doJSON[Envelope](ctx, p.client, http.MethodPost, "/contact", msg)
}

// DownloadImage streams a post's image to a local file. The image URL is an
// absolute URL served by the backend's media host, not an API path.
func (p *PostsAPI) DownloadImage(ctx context.Context, imageURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := p.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	f, err := os.Create(filepath.Clean(destPath))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}

// encodeUpload builds a multipart body with title, description and the
// optional imageFile part. The returned content type carries the boundary
// and is the only content type the request may use.
func encodeUpload(upload models.PostUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", upload.Title); err != nil {
		return nil, "", fmt.Errorf("failed to encode title: %w", err)
	}
	if err := w.WriteField("description", upload.Description); err != nil {
		return nil, "", fmt.Errorf("failed to encode description: %w", err)
	}

	if upload.ImagePath != "" {
		contentType, err := validate.ImageContentType(upload.ImagePath)
		if err != nil {
			return nil, "", fmt.Errorf("cannot read image file: %w", err)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, filepath.Base(upload.ImagePath)))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode image part: %w", err)
		}

		f, err := os.Open(filepath.Clean(upload.ImagePath))
		if err != nil {
			return nil, "", fmt.Errorf("cannot read image file: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("failed to encode image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
