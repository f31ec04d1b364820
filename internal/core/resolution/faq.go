package resolution

import (
	"strings"
	"unicode/utf8"
)

// =============================================================================
// FAQ Parser
// =============================================================================

// maxSentenceSplit bounds how far into an FAQ string a period may appear and
// still be treated as the end of the question.
const maxSentenceSplit = 120

// QA is a question/answer pair. Both fields are always non-empty.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ParseFAQ splits a free-form FAQ string into a question and an answer.
//
// The split point is the first '?' (kept with the question). Without one,
// the first '.' is used when it occurs within the first 120 characters.
// Otherwise the whole string becomes the answer to a generic question.
// Empty halves fall back to "Question" and the raw string respectively.
func ParseFAQ(raw string) QA {
	if q := strings.IndexByte(raw, '?'); q >= 0 {
		return splitAt(raw, q)
	}
	if p := strings.IndexByte(raw, '.'); p >= 0 && utf8.RuneCountInString(raw[:p]) < maxSentenceSplit {
		return splitAt(raw, p)
	}
	return QA{Question: "Frequently asked question", Answer: raw}
}

func splitAt(raw string, i int) QA {
	qa := QA{
		Question: strings.TrimSpace(raw[:i+1]),
		Answer:   strings.TrimSpace(raw[i+1:]),
	}
	if qa.Question == "" {
		qa.Question = "Question"
	}
	if qa.Answer == "" {
		qa.Answer = raw
	}
	return qa
}
