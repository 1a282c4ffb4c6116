package summarizer

import "strings"

type Format string

const (
	FormatStructured   Format = "structured"
	FormatBulletPoints Format = "bullet_points"
	FormatParagraph    Format = "paragraph"
	FormatActionItems  Format = "action_items"
)

type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailMedium   DetailLevel = "medium"
	DetailDetailed DetailLevel = "detailed"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

// Options are the user-selected generation parameters.
type Options struct {
	Format            Format
	Language          Language
	DetailLevel       DetailLevel
	IncludeTimestamps bool
}

// DefaultOptions matches the defaults a new user starts with.
func DefaultOptions() Options {
	return Options{
		Format:            FormatStructured,
		Language:          LanguageEnglish,
		DetailLevel:       DetailMedium,
		IncludeTimestamps: true,
	}
}

// Normalize maps every unrecognized value to its default (structured, en, medium).
// It never fails.
func (o Options) Normalize() Options {
	o.Format = ParseFormat(string(o.Format))
	o.Language = ParseLanguage(string(o.Language))
	o.DetailLevel = ParseDetailLevel(string(o.DetailLevel))
	return o
}

func ParseFormat(s string) Format {
	switch f := Format(clean(s)); f {
	case FormatStructured, FormatBulletPoints, FormatParagraph, FormatActionItems:
		return f
	default:
		return FormatStructured
	}
}

func ParseDetailLevel(s string) DetailLevel {
	switch d := DetailLevel(clean(s)); d {
	case DetailBrief, DetailMedium, DetailDetailed:
		return d
	default:
		return DetailMedium
	}
}

func ParseLanguage(s string) Language {
	switch l := Language(clean(s)); l {
	case LanguageEnglish, LanguageFrench:
		return l
	default:
		return LanguageEnglish
	}
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
