package sanitizer

import "strings"

// Sanitizer strips terminal control content from text that originates
// outside the UI (session titles, descriptions, avatars) before it is drawn.
type Sanitizer struct {
	keepNewlines bool
	maxRunes     int
	patterns     []*EscapePattern
}

type Option func(*Sanitizer)

// WithNewlines keeps line breaks instead of folding them into spaces.
func WithNewlines() Option {
	return func(s *Sanitizer) {
		s.keepNewlines = true
	}
}

func WithMaxRunes(n int) Option {
	return func(s *Sanitizer) {
		if n > 0 {
			s.maxRunes = n
		}
	}
}

func WithPatterns(patterns ...*EscapePattern) Option {
	return func(s *Sanitizer) {
		s.patterns = append(s.patterns, patterns...)
	}
}

func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		patterns: append([]*EscapePattern(nil), AllEscapePatterns...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Sanitizer) Sanitize(input string) string {
	if input == "" {
		return input
	}
	for _, p := range s.patterns {
		input = p.Pattern.ReplaceAllString(input, "")
	}

	var b strings.Builder
	b.Grow(len(input))
	count := 0
	for _, r := range input {
		if s.maxRunes > 0 && count >= s.maxRunes {
			break
		}
		switch {
		case r == '\n' && s.keepNewlines:
			b.WriteRune(r)
		case r == '\n', r == '\t':
			b.WriteRune(' ')
		case r == '\r', r < 32, r == 127:
			continue
		default:
			b.WriteRune(r)
		}
		count++
	}
	return b.String()
}

var singleLine = New()

// Line folds input into one printable line.
func Line(input string) string {
	return singleLine.Sanitize(input)
}
