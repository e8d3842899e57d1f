package tui

// Access control for screens that require a logged-in user. While the session
// is still resolving nothing protected is rendered; once resolved, an
// unauthenticated user is redirected to the login screen instead.

func protectedView(v viewMode) bool {
	switch v {
	case myPostsView, createView, editView, detailView:
		return true
	default:
		return false
	}
}

// guard decides which screen actually gets shown for a requested screen.
// It returns the target view and whether the caller may proceed with the
// requested one. During session resolution the caller should keep the
// request pending and show the loading overlay.
func (m *model) guard(requested viewMode) (viewMode, bool) {
	if !protectedView(requested) {
		return requested, true
	}
	snap := m.sess.Current()
	if snap.Loading {
		m.pendingMode = requested
		return loadingView, false
	}
	if !snap.IsAuthenticated {
		m.events.Info("Please log in to continue")
		return loginView, false
	}
	return requested, true
}
