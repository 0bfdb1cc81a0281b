package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordlens/internal/domain"
)

const terminalWidth = 78

type palette struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Error  lipgloss.Color
	Rule   lipgloss.Color
}

var palettes = map[domain.Theme]palette{
	domain.ThemeLight: {
		Text:   lipgloss.Color("#2D2D2D"),
		Muted:  lipgloss.Color("#757575"),
		Accent: lipgloss.Color("#8F19E8"),
		Error:  lipgloss.Color("#D32F2F"),
		Rule:   lipgloss.Color("#C4C4C4"),
	},
	domain.ThemeDark: {
		Text:   lipgloss.Color("#FFFFFF"),
		Muted:  lipgloss.Color("#9E9E9E"),
		Accent: lipgloss.Color("#A445ED"),
		Error:  lipgloss.Color("#FF5252"),
		Rule:   lipgloss.Color("#3A3A3A"),
	},
}

type terminalStyles struct {
	Word         lipgloss.Style
	Pronounce    lipgloss.Style
	PartOfSpeech lipgloss.Style
	Label        lipgloss.Style
	Definition   lipgloss.Style
	Example      lipgloss.Style
	Synonym      lipgloss.Style
	Rule         lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	Muted        lipgloss.Style
}

func newTerminalStyles(theme domain.Theme) terminalStyles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[domain.DefaultTheme]
	}

	return terminalStyles{
		Word:         lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Pronounce:    lipgloss.NewStyle().Foreground(p.Accent),
		PartOfSpeech: lipgloss.NewStyle().Bold(true).Italic(true).Foreground(p.Text),
		Label:        lipgloss.NewStyle().Foreground(p.Muted),
		Definition:   lipgloss.NewStyle().Foreground(p.Text).PaddingLeft(2).Width(terminalWidth),
		Example:      lipgloss.NewStyle().Foreground(p.Muted).PaddingLeft(4).Width(terminalWidth),
		Synonym:      lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Rule:         lipgloss.NewStyle().Foreground(p.Rule),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(0, 1).
			Width(terminalWidth),
		ErrorTitle: lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Muted:      lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// Terminal renders the snapshot as styled text for a terminal, using the
// palette of theme. Colors are dropped automatically when the output is not
// a color terminal.
func Terminal(snap domain.Snapshot, theme domain.Theme) string {
	st := newTerminalStyles(theme)
	snap = normalizeSnapshot(snap)

	switch snap.Status {
	case domain.StatusSuccess:
		return terminalWord(st, *snap.Word)
	case domain.StatusError:
		return terminalError(st, *snap.Error)
	case domain.StatusLoading:
		return st.Muted.Render("Loading...") + "\n"
	default:
		return st.Word.Render("Start Exploring") + "\n" +
			st.Muted.Render("Search for any word to see its definition, phonetic transcription, and more.") + "\n"
	}
}

func terminalWord(st terminalStyles, entry domain.WordEntry) string {
	var b strings.Builder

	b.WriteString(st.Word.Render(entry.Word))
	b.WriteString("  ")
	b.WriteString(st.Pronounce.Render(entry.PronunciationText()))
	b.WriteString("\n")
	if audio := entry.AudioURL(); audio != "" {
		b.WriteString(st.Label.Render("audio: " + audio))
		b.WriteString("\n")
	}

	for _, m := range entry.Meanings {
		b.WriteString("\n")
		b.WriteString(st.PartOfSpeech.Render(m.PartOfSpeech))
		b.WriteString(" ")
		b.WriteString(st.Rule.Render(strings.Repeat("─", max(0, terminalWidth-len(m.PartOfSpeech)-1))))
		b.WriteString("\n")
		b.WriteString(st.Label.Render("Meaning"))
		b.WriteString("\n")

		for _, d := range m.Definitions {
			b.WriteString(st.Definition.Render("• " + d.Definition))
			b.WriteString("\n")
			if d.Example != "" {
				b.WriteString(st.Example.Render(`"` + d.Example + `"`))
				b.WriteString("\n")
			}
		}

		if len(m.Synonyms) > 0 {
			syns := make([]string, 0, len(m.Synonyms))
			for _, s := range m.Synonyms {
				syns = append(syns, st.Synonym.Render(s))
			}
			b.WriteString(st.Label.Render("Synonyms "))
			b.WriteString(strings.Join(syns, ", "))
			b.WriteString("\n")
		}
	}

	if len(entry.SourceURLs) > 0 {
		b.WriteString("\n")
		b.WriteString(st.Label.Render("Source"))
		b.WriteString("\n")
		for _, u := range entry.SourceURLs {
			b.WriteString("  " + u + "\n")
		}
	}

	return b.String()
}

func terminalError(st terminalStyles, info domain.ErrorInfo) string {
	lines := []string{st.ErrorTitle.Render(info.Title)}
	if info.SearchedWord != "" {
		lines = append(lines, `The word "`+info.SearchedWord+`" is not in our dictionary.`)
	}
	lines = append(lines, st.Muted.Render(info.Message+" "+info.Resolution))

	return st.ErrorBox.Render(strings.Join(lines, "\n")) + "\n"
}
