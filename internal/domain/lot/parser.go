package lot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnrecognizedLot reports a token that matches no lot-format rule.
var ErrUnrecognizedLot = errors.New("unrecognized lot token")

// Config bounds what a numeric lot code looks like. Certificate formats
// vary between issuers, so the digit bounds are configurable rather than
// hard-baked; short digit runs (page counts, dates) fall outside them.
type Config struct {
	MinLotDigits     int // shortest numeric lot code
	MaxLotDigits     int // longest numeric lot code
	MaxSegmentDigits int // longest digit run the page scanner still accepts
}

// DefaultConfig matches the lot codes seen on current certificates.
func DefaultConfig() Config {
	return Config{MinLotDigits: 5, MaxLotDigits: 6, MaxSegmentDigits: 7}
}

// Parser turns raw lot tokens into Descriptors by walking an ordered rule
// cascade. The first matching rule wins; later rules are never consulted
// even when they would also match.
type Parser struct {
	cfg      Config
	rules    []rule
	digitRun *regexp.Regexp
	alnum    *regexp.Regexp
}

type rule struct {
	name  string
	parse func(token string) (*Descriptor, bool)
}

// NewParser builds a parser. Zero config fields fall back to defaults.
func NewParser(cfg Config) *Parser {
	def := DefaultConfig()
	if cfg.MinLotDigits <= 0 {
		cfg.MinLotDigits = def.MinLotDigits
	}
	if cfg.MaxLotDigits < cfg.MinLotDigits {
		cfg.MaxLotDigits = def.MaxLotDigits
	}
	if cfg.MaxSegmentDigits < cfg.MaxLotDigits {
		cfg.MaxSegmentDigits = def.MaxSegmentDigits
	}

	p := &Parser{
		cfg:      cfg,
		digitRun: regexp.MustCompile(`\d+`),
		alnum:    regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/\-]{2,}$`),
	}
	p.rules = []rule{
		{"slash_pair", p.parseSlashPair},
		{"slash_repeat", p.parseSlashRepeat},
		{"dash_range", p.parseDashRange},
		{"embedded_number", p.parseEmbeddedNumber},
		{"alphanumeric", p.parseAlphanumeric},
	}
	return p
}

// Config returns the digit bounds the parser was built with.
func (p *Parser) Config() Config { return p.cfg }

// Parse classifies one raw lot token. The token is trimmed and stripped
// of stray quote characters before the cascade runs. A token no rule
// recognizes yields ErrUnrecognizedLot; callers processing a batch record
// the failure against that certificate and continue.
func (p *Parser) Parse(raw string) (*Descriptor, error) {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`':
			return -1
		}
		return r
	}, raw)
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", ErrUnrecognizedLot)
	}

	for _, r := range p.rules {
		if d, ok := r.parse(token); ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", token, ErrUnrecognizedLot)
}

// lotSizedNumber reports whether s is purely numeric and within the
// configured lot-code length bounds.
func (p *Parser) lotSizedNumber(s string) bool {
	return allDigits(s) && len(s) >= p.cfg.MinLotDigits && len(s) <= p.cfg.MaxLotDigits
}

// "139912/139913": two full lot codes sharing one certificate.
func (p *Parser) parseSlashPair(token string) (*Descriptor, bool) {
	parts := strings.Split(token, "/")
	if len(parts) != 2 || !p.lotSizedNumber(parts[0]) || !p.lotSizedNumber(parts[1]) {
		return nil, false
	}
	return &Descriptor{
		Raw:     token,
		Kind:    KindExplicitMulti,
		Members: []string{parts[0], parts[1]},
		Count:   2,
	}, true
}

// "139865/2": one lot printed N times under the same internal code. The
// suffix must be a small count, not a second lot code.
func (p *Parser) parseSlashRepeat(token string) (*Descriptor, bool) {
	parts := strings.Split(token, "/")
	if len(parts) != 2 || !p.lotSizedNumber(parts[0]) {
		return nil, false
	}
	suffix := parts[1]
	if !allDigits(suffix) || len(suffix) > 2 {
		return nil, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 || n > 10 {
		return nil, false
	}
	return &Descriptor{
		Raw:            token,
		Kind:           KindImplicitMulti,
		Members:        []string{parts[0]},
		Base:           parts[0],
		Count:          n,
		AnnotationHint: "+" + strconv.Itoa(n-1),
	}, true
}

// "139859-139860": dash-separated list of full lot codes.
func (p *Parser) parseDashRange(token string) (*Descriptor, bool) {
	if !strings.Contains(token, "-") {
		return nil, false
	}
	parts := strings.Split(token, "-")
	if len(parts) < 2 {
		return nil, false
	}
	for _, part := range parts {
		if !p.lotSizedNumber(part) {
			return nil, false
		}
	}
	return &Descriptor{
		Raw:     token,
		Kind:    KindExplicitMulti,
		Members: parts,
		Count:   len(parts),
	}, true
}

// A single lot-sized digit run embedded anywhere in the token.
func (p *Parser) parseEmbeddedNumber(token string) (*Descriptor, bool) {
	for _, run := range p.digitRun.FindAllString(token, -1) {
		if len(run) >= p.cfg.MinLotDigits && len(run) <= p.cfg.MaxLotDigits {
			return &Descriptor{
				Raw:     token,
				Kind:    KindSingle,
				Members: []string{run},
				Count:   1,
			}, true
		}
	}
	return nil, false
}

// Fallback: letters, digits, dash and slash only.
func (p *Parser) parseAlphanumeric(token string) (*Descriptor, bool) {
	if !p.alnum.MatchString(token) {
		return nil, false
	}
	return &Descriptor{
		Raw:     token,
		Kind:    KindAlphanumeric,
		Members: []string{token},
		Count:   1,
	}, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
