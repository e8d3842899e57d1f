package api

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileJarPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, _ := url.Parse("http://localhost:3000/api/v1")

	jar, err := NewFileJar(path)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "connect.sid", Value: "abc123", Path: "/"}})

	reloaded, err := NewFileJar(path)
	require.NoError(t, err)

	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "connect.sid", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
}

func TestFileJarDropsExpiredCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, _ := url.Parse("http://localhost:3000/api/v1")

	jar, err := NewFileJar(path)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{
		{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "fresh", Value: "y", Expires: time.Now().Add(time.Hour)},
	})

	cookies := jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "fresh", cookies[0].Name)
}

func TestFileJarClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	u, _ := url.Parse("http://localhost:3000/api/v1")

	jar, err := NewFileJar(path)
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "connect.sid", Value: "abc123"}})

	jar.Clear()
	assert.Empty(t, jar.Cookies(u))

	reloaded, err := NewFileJar(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Cookies(u), "clear must also remove the persisted file")
}

func TestFileJarToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	jar, err := NewFileJar(path)
	require.NoError(t, err, "a corrupt jar should mean a lost session, not an error")
	u, _ := url.Parse("http://localhost:3000/api/v1")
	assert.Empty(t, jar.Cookies(u))
}
