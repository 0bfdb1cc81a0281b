// Package render turns lookup state and preferences into HTML.
//
// All external text goes through html/template, so words, definitions,
// synonyms and URLs from the dictionary API are escaped for the context they
// land in.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/heartmarshall/wordlens/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("render: static assets: %v", err))
	}
	return sub
}

// FontOption is one entry of the font menu.
type FontOption struct {
	Value    domain.Font
	Label    string
	Family   template.CSS
	Selected bool
}

// PageView is everything the full page needs.
type PageView struct {
	Theme        domain.Theme
	Font         domain.Font
	FontMenuOpen bool
	FormError    bool
	Query        string
	Results      domain.Snapshot
}

// Renderer executes the parsed templates. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New that panics on error. The templates are embedded, so a
// failure is a build defect.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// EmptyState renders the "start exploring" prompt shown while idle.
func (r *Renderer) EmptyState() (string, error) {
	return r.execute("empty", nil)
}

// LoadingState renders the spinner.
func (r *Renderer) LoadingState() (string, error) {
	return r.execute("loading", nil)
}

// WordDefinition renders an entry's header, meanings and sources.
func (r *Renderer) WordDefinition(entry domain.WordEntry) (string, error) {
	return r.execute("word", entry)
}

// ErrorState renders a failed lookup.
func (r *Renderer) ErrorState(info domain.ErrorInfo) (string, error) {
	return r.execute("error", info)
}

// Results renders the view matching the snapshot's status.
func (r *Renderer) Results(snap domain.Snapshot) (string, error) {
	return r.execute("results", normalizeSnapshot(snap))
}

// WriteResults writes the results fragment to w.
func (r *Renderer) WriteResults(w io.Writer, snap domain.Snapshot) error {
	out, err := r.Results(snap)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// WritePage writes the full document to w. The page is rendered into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) WritePage(w io.Writer, view PageView) error {
	out, err := r.execute("page", pageData{
		PageView:    view,
		Results:     normalizeSnapshot(view.Results),
		Dark:        view.Theme == domain.ThemeDark,
		FontFamily:  template.CSS(view.Font.Family()),
		FontOptions: fontOptions(view.Font),
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

type pageData struct {
	PageView
	Results     domain.Snapshot
	Dark        bool
	FontFamily  template.CSS
	FontOptions []FontOption
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", name, err)
	}
	return buf.String(), nil
}

// normalizeSnapshot falls back to the empty view when the snapshot does not
// carry the payload its status promises.
func normalizeSnapshot(snap domain.Snapshot) domain.Snapshot {
	switch snap.Status {
	case domain.StatusSuccess:
		if snap.Word == nil {
			return domain.Snapshot{Status: domain.StatusIdle}
		}
	case domain.StatusError:
		if snap.Error == nil {
			return domain.Snapshot{Status: domain.StatusIdle}
		}
	case domain.StatusLoading, domain.StatusIdle:
	default:
		return domain.Snapshot{Status: domain.StatusIdle}
	}
	return snap
}

func fontOptions(selected domain.Font) []FontOption {
	out := make([]FontOption, 0, len(domain.Fonts))
	for _, f := range domain.Fonts {
		out = append(out, FontOption{
			Value:    f,
			Label:    f.Label(),
			Family:   template.CSS(f.Family()),
			Selected: f == selected,
		})
	}
	return out
}
