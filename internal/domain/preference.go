package domain

// Storage keys for persisted preferences.
const (
	ThemeKey = "dictionary-theme"
	FontKey  = "dictionary-font"
)

// Preferences holds a visitor's display choices.
type Preferences struct {
	Theme Theme
	Font  Font
}

// DefaultPreferences returns the preferences used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme: DefaultTheme,
		Font:  DefaultFont,
	}
}
