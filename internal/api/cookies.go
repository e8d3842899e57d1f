package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileJar is a minimal http.CookieJar persisted to disk, the CLI's stand-in
// for the browser cookie store. The client talks to a single origin, so
// cookies are keyed by host without public-suffix handling. Session cookies
// (no expiry) are persisted deliberately: they ARE the session.
type FileJar struct {
	mu      sync.Mutex
	path    string
	cookies map[string][]*http.Cookie
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// NewFileJar loads the jar at path, creating an empty one when the file does
// not exist yet. A path of "" keeps the jar memory-only.
func NewFileJar(path string) (*FileJar, error) {
	jar := &FileJar{path: path, cookies: make(map[string][]*http.Cookie)}
	if path == "" {
		return jar, nil
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return jar, nil
	}
	if err != nil {
		return nil, err
	}

	var stored map[string][]storedCookie
	if err := json.Unmarshal(raw, &stored); err != nil {
		// A corrupt jar means a lost session, not a broken client.
		return jar, nil
	}

	now := time.Now()
	for host, list := range stored {
		for _, sc := range list {
			if !sc.Expires.IsZero() && sc.Expires.Before(now) {
				continue
			}
			jar.cookies[host] = append(jar.cookies[host], &http.Cookie{
				Name:    sc.Name,
				Value:   sc.Value,
				Path:    sc.Path,
				Expires: sc.Expires,
			})
		}
	}
	return jar, nil
}

// SetCookies merges the response cookies for u's host and persists the jar.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	host := u.Hostname()
	for _, c := range cookies {
		j.setLocked(host, c)
	}
	j.saveLocked()
}

func (j *FileJar) setLocked(host string, c *http.Cookie) {
	list := j.cookies[host]
	for i, existing := range list {
		if existing.Name == c.Name {
			if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
				j.cookies[host] = append(list[:i], list[i+1:]...)
			} else {
				list[i] = c
			}
			return
		}
	}
	if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
		return
	}
	j.cookies[host] = append(list, c)
}

// Cookies returns the unexpired cookies for u's host.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	var out []*http.Cookie
	for _, c := range j.cookies[u.Hostname()] {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Clear drops every cookie and removes the file. Used by logout.
func (j *FileJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = make(map[string][]*http.Cookie)
	if j.path != "" {
		_ = os.Remove(j.path)
	}
}

// saveLocked writes the jar to disk with owner-only permissions. Best
// effort: a failed write costs session persistence, not correctness.
func (j *FileJar) saveLocked() {
	if j.path == "" {
		return
	}

	stored := make(map[string][]storedCookie, len(j.cookies))
	for host, list := range j.cookies {
		for _, c := range list {
			stored[host] = append(stored[host], storedCookie{
				Name:    c.Name,
				Value:   c.Value,
				Path:    c.Path,
				Expires: c.Expires,
			})
		}
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(j.path, raw, 0o600)
}
