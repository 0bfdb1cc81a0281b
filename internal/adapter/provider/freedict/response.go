package freedict

import "github.com/heartmarshall/wordlens/internal/domain"

// apiEntry represents a single entry from the FreeDictionary API response.
// The API returns an array of entries (one per etymology).
type apiEntry struct {
	Word       string        `json:"word"`
	Phonetic   string        `json:"phonetic"`
	Phonetics  []apiPhonetic `json:"phonetics"`
	Meanings   []apiMeaning  `json:"meanings"`
	SourceURLs []string      `json:"sourceUrls"`
}

// apiPhonetic represents phonetic/pronunciation data from the API.
type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// apiMeaning represents a group of definitions sharing a part of speech.
type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
}

// apiDefinition represents a single definition with an optional example.
type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// apiError is the body the API sends with non-2xx responses.
type apiError struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Resolution string `json:"resolution"`
}

// toDomain converts an API entry into a domain.WordEntry, preserving order.
func (e apiEntry) toDomain() domain.WordEntry {
	entry := domain.WordEntry{
		Word:       e.Word,
		Phonetic:   e.Phonetic,
		Phonetics:  make([]domain.Phonetic, 0, len(e.Phonetics)),
		Meanings:   make([]domain.Meaning, 0, len(e.Meanings)),
		SourceURLs: e.SourceURLs,
	}

	for _, ph := range e.Phonetics {
		entry.Phonetics = append(entry.Phonetics, domain.Phonetic{Text: ph.Text, Audio: ph.Audio})
	}

	for _, m := range e.Meanings {
		meaning := domain.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]domain.Definition, 0, len(m.Definitions)),
			Synonyms:     m.Synonyms,
		}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, domain.Definition{
				Definition: d.Definition,
				Example:    d.Example,
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}

	return entry
}
