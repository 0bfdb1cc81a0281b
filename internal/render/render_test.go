package render

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlens/internal/domain"
)

func helloEntry() domain.WordEntry {
	return domain.WordEntry{
		Word:     "hello",
		Phonetic: "/həˈloʊ/",
		Phonetics: []domain.Phonetic{
			{Text: "/həˈləʊ/", Audio: "https://api.dictionaryapi.dev/media/pronunciations/en/hello-uk.mp3"},
		},
		Meanings: []domain.Meaning{
			{
				PartOfSpeech: "noun",
				Definitions: []domain.Definition{
					{Definition: "\"Hello!\" or an equivalent greeting.", Example: "She gave a cheerful hello."},
				},
				Synonyms: []string{"greeting", "hi there"},
			},
			{
				PartOfSpeech: "interjection",
				Definitions:  []domain.Definition{{Definition: "A greeting."}},
			},
		},
		SourceURLs: []string{"https://en.wiktionary.org/wiki/hello"},
	}
}

// ---------------------------------------------------------------------------
// Fragments
// ---------------------------------------------------------------------------

func TestWordDefinition_IsPure(t *testing.T) {
	t.Parallel()
	r := MustNew()
	entry := helloEntry()

	first, err := r.WordDefinition(entry)
	require.NoError(t, err)
	second, err := r.WordDefinition(entry)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, helloEntry(), entry, "rendering must not modify its input")
}

func TestWordDefinition_Content(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.WordDefinition(helloEntry())
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 class="word">hello</h1>`)
	assert.Contains(t, out, "/həˈləʊ/", "first phonetic variant wins over the entry-level phonetic")
	assert.Contains(t, out, `<audio id="wordAudio" src="https://api.dictionaryapi.dev/media/pronunciations/en/hello-uk.mp3">`)
	assert.Contains(t, out, `<h2 class="meaningTitle">noun</h2>`)
	assert.Contains(t, out, `<h2 class="meaningTitle">interjection</h2>`)
	assert.Equal(t, 2, strings.Count(out, ">Meaning</h3>"))
	assert.Contains(t, out, `<p class="definition-example">"She gave a cheerful hello."</p>`)
	assert.Contains(t, out, `<a href="/search?word=greeting" class="synonym-link">greeting</a>`)
	assert.Contains(t, out, `<a href="/search?word=hi%20there" class="synonym-link">hi there</a>`)
	assert.Contains(t, out, `href="https://en.wiktionary.org/wiki/hello"`)
	assert.NotContains(t, out, "undefined")
	assert.NotContains(t, out, "<no value>")
}

func TestWordDefinition_NoPhoneticsFallback(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.WordDefinition(domain.WordEntry{
		Word:     "zzz",
		Meanings: []domain.Meaning{{PartOfSpeech: "noun", Definitions: []domain.Definition{{Definition: "Sleep."}}}},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "pronounciation cannot be found")
	assert.NotContains(t, out, "<audio")
	assert.NotContains(t, out, "playBtn")
	assert.NotContains(t, out, "synonyms-container")
	assert.NotContains(t, out, "sourceContainer")
	assert.NotContains(t, out, "definition-example")
}

func TestWordDefinition_PhoneticWithoutAudio(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.WordDefinition(domain.WordEntry{
		Word:      "quiet",
		Phonetics: []domain.Phonetic{{Text: "/ˈkwaɪ.ət/"}},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "/ˈkwaɪ.ət/")
	assert.NotContains(t, out, "<audio")
}

func TestWordDefinition_EscapesExternalText(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.WordDefinition(domain.WordEntry{
		Word:      `<script>alert("w")</script>`,
		Phonetics: []domain.Phonetic{{Text: "<b>x</b>", Audio: "javascript:alert(1)"}},
		Meanings: []domain.Meaning{{
			PartOfSpeech: "<i>noun</i>",
			Definitions:  []domain.Definition{{Definition: `<img src=x onerror="alert(1)">`, Example: "</p><p>"}},
			Synonyms:     []string{`"><script>alert(2)</script>`},
		}},
		SourceURLs: []string{"javascript:alert(3)"},
	})
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<b>x</b>")
	assert.NotContains(t, out, "<i>noun</i>")
	assert.NotContains(t, out, `href="javascript:`)
	assert.NotContains(t, out, `src="javascript:`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "#ZgotmplZ", "unsafe URLs are replaced")
}

func TestErrorState_WithSearchedWord(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.ErrorState(domain.ErrorInfo{
		Title:        "No Definitions Found",
		Message:      "Sorry pal, we couldn't find definitions for the word you were looking for.",
		Resolution:   "You can try the search again at later time or head to the web instead.",
		SearchedWord: "xyzzyunknownword",
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 class="errorState-title">No Definitions Found</h1>`)
	assert.Contains(t, out, `The word "<strong>xyzzyunknownword</strong>" is not in our dictionary.`)
	assert.Contains(t, out, "Sorry pal, we couldn&#39;t find definitions for the word you were looking for. You can try the search again at later time or head to the web instead.")
}

func TestErrorState_WithoutSearchedWord(t *testing.T) {
	t.Parallel()
	r := MustNew()

	out, err := r.ErrorState(domain.ErrorInfo{Title: "T", Message: "M", Resolution: "R"})
	require.NoError(t, err)

	assert.NotContains(t, out, "not in our dictionary")
	assert.Contains(t, out, "M R")
}

func TestStaticStates(t *testing.T) {
	t.Parallel()
	r := MustNew()

	empty, err := r.EmptyState()
	require.NoError(t, err)
	assert.Contains(t, empty, "Start Exploring")

	loading, err := r.LoadingState()
	require.NoError(t, err)
	assert.Contains(t, loading, `class="spinner"`)
	assert.Contains(t, loading, "Loading...")
}

func TestResults_DispatchesOnStatus(t *testing.T) {
	t.Parallel()
	r := MustNew()
	entry := helloEntry()
	info := domain.ErrorInfo{Title: "Oops", Message: "M", Resolution: "R"}

	tests := []struct {
		name string
		snap domain.Snapshot
		want string
	}{
		{"idle", domain.Snapshot{Status: domain.StatusIdle}, "Start Exploring"},
		{"loading", domain.Snapshot{Status: domain.StatusLoading}, "Loading..."},
		{"success", domain.Snapshot{Status: domain.StatusSuccess, Word: &entry}, `<h1 class="word">hello</h1>`},
		{"error", domain.Snapshot{Status: domain.StatusError, Error: &info}, "Oops"},
		{"success without word", domain.Snapshot{Status: domain.StatusSuccess}, "Start Exploring"},
		{"unknown status", domain.Snapshot{Status: "weird"}, "Start Exploring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := r.Results(tt.snap)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Page
// ---------------------------------------------------------------------------

func TestWritePage_Surface(t *testing.T) {
	t.Parallel()
	r := MustNew()

	var buf bytes.Buffer
	err := r.WritePage(&buf, PageView{
		Theme:   domain.ThemeDark,
		Font:    domain.FontSerif,
		Results: domain.Snapshot{Status: domain.StatusIdle},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `<html lang="en" class="dark font-serif">`)
	for _, id := range []string{"results", "searchContainer", "searchForm", "searchInput", "toggle", "fontTrigger", "fontLabel", "fontMenu"} {
		assert.Contains(t, out, `id="`+id+`"`, "missing element id %q", id)
	}
	assert.Contains(t, out, `<ul id="fontMenu" class="header__fontMenu" role="listbox" hidden>`)
	assert.Contains(t, out, `>Serif</span>`)
	assert.Contains(t, out, `font-family: &#39;Lora&#39;, serif`)
	assert.Equal(t, 3, strings.Count(out, `class="header__fontOption`))
	assert.Contains(t, out, `data-font="mono"`)
	assert.Contains(t, out, `aria-checked="true"`)
	assert.NotContains(t, out, `class="search-form form-error"`)
	assert.Contains(t, out, "Start Exploring")
}

func TestWritePage_FlagsAndQuery(t *testing.T) {
	t.Parallel()
	r := MustNew()
	info := domain.ErrorInfo{Title: "No Definitions Found", Message: "M", Resolution: "R", SearchedWord: `a"b`}

	var buf bytes.Buffer
	err := r.WritePage(&buf, PageView{
		Theme:        domain.ThemeLight,
		Font:         domain.FontSans,
		FontMenuOpen: true,
		FormError:    true,
		Query:        `a"b`,
		Results:      domain.Snapshot{Status: domain.StatusError, Error: &info},
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, `class="light font-sans"`)
	assert.Contains(t, out, `class="search-form form-error"`)
	assert.Contains(t, out, `<ul id="fontMenu" class="header__fontMenu" role="listbox">`)
	assert.Contains(t, out, `value="a&#34;b"`)
	assert.Contains(t, out, "not in our dictionary")
}

func TestStatic_ServesStylesheet(t *testing.T) {
	t.Parallel()

	css, err := fs.ReadFile(Static(), "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), "html.dark")
	assert.Contains(t, string(css), ".form-error")
}
