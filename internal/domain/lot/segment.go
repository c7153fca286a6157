package lot

import (
	"errors"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrNoLotToken reports a page with no usable lot token after the label.
var ErrNoLotToken = errors.New("no lot token in text")

// stopWords are the field labels that follow the lot value on a
// certificate. They act as the right boundary of the lot segment: the
// layouts carry no reliable delimiter, so the next label is the only
// signal the lot field ended. "packge" is a recurring OCR misread.
var stopWords = []string{
	"kg", "weight", "variety", "phone", "fax",
	"total", "sample", "analysis", "package", "packge",
	"size", "number", "date", "protocol", "customer", "address",
}

// anchorPattern matches the label that introduces the lot value:
// "lot number:", "lot no:", "lot:", "lot#". Case-insensitive, tolerates
// the fullwidth colon OCR sometimes produces.
var anchorPattern = regexp.MustCompile(`(?i)\blot\s*(?:(?:number|no\.?)\s*)?[:：#]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Extractor locates the lot token inside a full OCR page and leaves the
// classification to the Parser.
type Extractor struct {
	parser     *Parser
	stops      *ahocorasick.Matcher
	stopBounds []*regexp.Regexp
	stopSet    map[string]struct{}
	tokenSplit *regexp.Regexp
}

// NewExtractor builds an extractor bound to the given parser's digit
// bounds. The stop-word dictionary is compiled once into an Aho-Corasick
// matcher so each page is scanned in a single pass.
func NewExtractor(parser *Parser) *Extractor {
	e := &Extractor{
		parser:     parser,
		stops:      ahocorasick.NewStringMatcher(stopWords),
		stopBounds: make([]*regexp.Regexp, len(stopWords)),
		stopSet:    make(map[string]struct{}, len(stopWords)),
		tokenSplit: regexp.MustCompile(`[^\w/\-]+`),
	}
	for i, w := range stopWords {
		e.stopBounds[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
		e.stopSet[w] = struct{}{}
	}
	return e
}

// ExtractToken finds the raw lot token on an OCR page: locate the "lot
// number" label, take the text up to the next field label, and return the
// first token shaped like a lot value. The token still has to go through
// Parser.Parse; ok is false when the page has no recognizable lot field.
func (e *Extractor) ExtractToken(pageText string) (token string, ok bool) {
	text := whitespaceRun.ReplaceAllString(pageText, " ")

	segment, ok := e.segmentAfterAnchor(text)
	if !ok {
		return "", false
	}
	segment = e.cutAtStopWord(segment)

	for _, tok := range e.tokenSplit.Split(segment, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, stop := e.stopSet[strings.ToLower(tok)]; stop {
			break
		}
		if e.looksLikeLotValue(tok) {
			return tok, true
		}
	}
	return "", false
}

// segmentAfterAnchor returns the text following the lot label. When the
// exact label is absent it retries with a Levenshtein tolerance of one
// edit per word, which recovers OCR misreads like "1ot number".
func (e *Extractor) segmentAfterAnchor(text string) (string, bool) {
	if loc := anchorPattern.FindStringIndex(text); loc != nil {
		return text[loc[1]:], true
	}

	words := strings.Split(text, " ")
	offset := 0
	for i := 0; i < len(words)-1; i++ {
		w1 := strings.ToLower(strings.Trim(words[i], ":：#."))
		w2 := strings.ToLower(strings.Trim(words[i+1], ":：#."))
		if fuzzy.LevenshteinDistance(w1, "lot") <= 1 &&
			fuzzy.LevenshteinDistance(w2, "number") <= 1 {
			end := offset + len(words[i]) + 1 + len(words[i+1])
			if end > len(text) {
				end = len(text)
			}
			return text[end:], true
		}
		offset += len(words[i]) + 1
	}
	return "", false
}

// cutAtStopWord trims the segment at the earliest field label. The
// matcher reports which labels occur at all; only those are located.
func (e *Extractor) cutAtStopWord(segment string) string {
	lower := strings.ToLower(segment)
	cut := len(segment)
	for _, hit := range e.stops.Match([]byte(lower)) {
		if loc := e.stopBounds[hit].FindStringIndex(lower); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return segment[:cut]
}

// looksLikeLotValue applies the lot-value shape check: alphanumeric,
// at least three characters, and for purely numeric tokens a digit count
// inside the configured bounds so page numbers and dates do not pass.
func (e *Extractor) looksLikeLotValue(tok string) bool {
	if len(tok) < 3 || !e.parser.alnum.MatchString(tok) {
		return false
	}
	cfg := e.parser.cfg
	if allDigits(tok) {
		return len(tok) >= cfg.MinLotDigits && len(tok) <= cfg.MaxSegmentDigits
	}
	for _, run := range e.parser.digitRun.FindAllString(tok, -1) {
		if len(run) > cfg.MaxSegmentDigits {
			return false
		}
	}
	// Mixed tokens pass on shape alone: alphanumeric formats without a
	// lot-sized digit run ("AB-12C") are still valid lot values.
	return true
}
