package session

// Navigator moves the operator's UI to another screen
type Navigator interface {
	Navigate(path string, query map[string]string)
}

// Screens the session layer redirects to
const (
	SignInPath = "/login"
	HomePath   = "/inicio"
)

// NopNavigator ignores navigation, for headless use
type NopNavigator struct{}

func (NopNavigator) Navigate(string, map[string]string) {}
