package viewmodels

type LayoutData struct {
	Title      string
	CSRFToken  string
	UserEmail  string
	UserRole   string
	IsAdmin    bool
	Toast      *ToastViewData
	ActivePath string
}

// SignedIn reports whether the page was rendered for a known principal.
func (l LayoutData) SignedIn() bool {
	return l.UserEmail != ""
}
