package domain

// Status is the lookup lifecycle stage; the sole discriminant used to pick a view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusSuccess, StatusError:
		return true
	}
	return false
}

// Theme is the persisted color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when nothing has been stored yet.
const DefaultTheme = ThemeLight

func (t Theme) String() string { return string(t) }

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	}
	return false
}

// Toggle returns the opposite theme. Anything that is not dark flips to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Font is the persisted font family preference.
type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

// DefaultFont is used when nothing has been stored yet.
const DefaultFont = FontSans

// Fonts lists the selectable fonts in menu order.
var Fonts = []Font{FontSans, FontSerif, FontMono}

func (f Font) String() string { return string(f) }

func (f Font) IsValid() bool {
	switch f {
	case FontSans, FontSerif, FontMono:
		return true
	}
	return false
}

// Label is the human-readable name shown in the font selector.
func (f Font) Label() string {
	switch f {
	case FontSerif:
		return "Serif"
	case FontMono:
		return "Mono"
	default:
		return "Sans Serif"
	}
}

// Family is the CSS font stack for the font.
func (f Font) Family() string {
	switch f {
	case FontSerif:
		return "'Lora', serif"
	case FontMono:
		return "'Inconsolata', monospace"
	default:
		return "'Inter', sans-serif"
	}
}

// ClassName is the root element class that applies the font.
func (f Font) ClassName() string { return "font-" + string(f) }
