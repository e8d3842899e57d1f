package models

import "time"

// UserProfile is the authenticated user's profile as returned by the backend.
// The session manager holds a read-only copy for the lifetime of the session.
type UserProfile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials carries a login attempt. Transient, never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupData carries a registration request. Transient, never persisted.
type SignupData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post is a user-submitted image with title, description, likes and comments.
type Post struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Likes       []string     `json:"likes"`    // user IDs that liked the post
	Comments    []string     `json:"comments"` // comment IDs, used as a count on the client
	CreatedBy   *UserProfile `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// LikedBy reports whether the given user has liked the post.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a single comment on a post. The post's comment list is fetched
// separately from the post document itself.
type Comment struct {
	ID        string       `json:"_id"`
	Text      string       `json:"text"`
	Status    string       `json:"status,omitempty"`
	User      *UserProfile `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// PostUpload is the payload for creating or editing a post. ImagePath points
// at a local file to send as multipart form data; it may be empty when
// editing a post without replacing the image.
type PostUpload struct {
	Title       string
	Description string
	ImagePath   string
}

// ContactMessage is the contact form payload.
type ContactMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	SendCopy bool   `json:"sendCopy"`
}
