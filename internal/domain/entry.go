package domain

// PronunciationFallback is shown when an entry carries no phonetic text at all.
const PronunciationFallback = "pronounciation cannot be found"

// WordEntry is a single dictionary API result. It is read-only once decoded.
type WordEntry struct {
	Word       string     `json:"word"`
	Phonetic   string     `json:"phonetic,omitempty"`
	Phonetics  []Phonetic `json:"phonetics"`
	Meanings   []Meaning  `json:"meanings"`
	SourceURLs []string   `json:"sourceUrls,omitempty"`
}

// Phonetic is one transcription variant, optionally with a recording.
type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// Meaning groups definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
}

// Definition is a single sense with an optional usage example.
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// PronunciationText returns the first phonetic variant's text, then the
// entry-level phonetic, then PronunciationFallback.
func (e WordEntry) PronunciationText() string {
	if len(e.Phonetics) > 0 && e.Phonetics[0].Text != "" {
		return e.Phonetics[0].Text
	}
	if e.Phonetic != "" {
		return e.Phonetic
	}
	return PronunciationFallback
}

// AudioURL returns the first phonetic variant's recording, or "".
func (e WordEntry) AudioURL() string {
	if len(e.Phonetics) == 0 {
		return ""
	}
	return e.Phonetics[0].Audio
}
