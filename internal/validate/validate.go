// Package validate holds the client-side form checks that must run before
// any network call is made.
package validate

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// allowed image content types for uploads
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Email checks the address has a plausible user@host.tld shape.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("please enter a valid email address")
	}
	return nil
}

// Login checks a login form.
func Login(creds models.Credentials) error {
	if err := Email(creds.Email); err != nil {
		return err
	}
	if creds.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Signup checks a registration form, including the confirmation field that
// never leaves the client.
func Signup(data models.SignupData, confirmPassword string) error {
	if strings.TrimSpace(data.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(data.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters long")
	}
	if err := Email(data.Email); err != nil {
		return err
	}
	if data.Password == "" {
		return fmt.Errorf("password is required")
	}
	if len(data.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if data.Password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// PostUpload checks a create-post form. Edit forms pass requireImage=false
// since keeping the existing image is allowed.
func PostUpload(upload models.PostUpload, requireImage bool) error {
	if strings.TrimSpace(upload.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(upload.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if upload.ImagePath == "" {
		if requireImage {
			return fmt.Errorf("please select an image")
		}
		return nil
	}
	return ImageFile(upload.ImagePath)
}

// ImageFile rejects files that are not JPEG, PNG or WebP. The content type is
// sniffed from the file header rather than trusted from the extension.
func ImageFile(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("cannot read image file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return fmt.Errorf("cannot read image file: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	// DetectContentType reports the media type with optional parameters.
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !allowedImageTypes[contentType] {
		return fmt.Errorf("please select a valid image file (JPEG, PNG, WebP)")
	}
	return nil
}

// ImageContentType returns the sniffed content type for a local image file.
func ImageContentType(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	contentType := http.DetectContentType(head[:n])
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType, nil
}

// Contact checks the contact form.
func Contact(msg models.ContactMessage) error {
	if strings.TrimSpace(msg.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(msg.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters long")
	}
	if err := Email(msg.Email); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if len(msg.Message) < 10 {
		return fmt.Errorf("message must be at least 10 characters long")
	}
	return nil
}

// Comment checks a comment body.
func Comment(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	return nil
}
