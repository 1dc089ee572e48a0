package title

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoMatch is returned when a listing title matches none of the
// parser's patterns. Callers drop the listing; this is not an error
// condition worth logging.
var ErrNoMatch = errors.New("title matched no pattern")

// qualityRegex extracts a resolution label independently of the rule that
// matched the title.
var qualityRegex = regexp.MustCompile(`(\d{3,4})p`)

// Rule is one pattern tried against a listing title. Rules are evaluated
// in order, so their position encodes priority among ambiguous formats
// (e.g. S01E01 numbering before date-based numbering).
//
// Movie patterns capture (title)(year), show patterns capture
// (title)(season)(episode); date-based show patterns capture the year as
// the season and the leading day-of-year digits as the episode.
type Rule struct {
	Pattern   *regexp.Regexp
	DateBased bool

	// Quality forces the quality bucket for listings matched by this
	// rule (e.g. a 3D release pattern, or a UHD-only source). When
	// empty the quality is extracted from the title itself.
	Quality Quality
}

// Parser extracts structured identifiers from listings of one
// (source, content type) pair.
type Parser struct {
	source string
	typ    ContentType
	rules  []Rule
}

// NewParser creates a parser for one source. The rule order is preserved.
func NewParser(source string, typ ContentType, rules []Rule) *Parser {
	return &Parser{source: source, typ: typ, rules: rules}
}

// Parse tries each rule against name, falling back to altName when the
// primary field does not match. The first matching rule wins. Returns
// ErrNoMatch when no rule matches either field.
func (p *Parser) Parse(name, altName string) (*ID, error) {
	for _, rule := range p.rules {
		matched := name
		m := rule.Pattern.FindStringSubmatch(name)
		if m == nil && altName != "" {
			matched = altName
			m = rule.Pattern.FindStringSubmatch(altName)
		}
		if m == nil {
			continue
		}
		return p.extract(matched, m, rule)
	}
	return nil, ErrNoMatch
}

func (p *Parser) extract(matched string, m []string, rule Rule) (*ID, error) {
	id := &ID{
		Source:   p.source,
		RawTitle: matched,
		Title:    cleanTitle(m[1]),
		Type:     p.typ,
		Quality:  rule.Quality,
	}
	if id.Quality == "" {
		id.Quality = ExtractQuality(matched)
	}

	switch p.typ {
	case ContentTypeMovie:
		if len(m) > 2 {
			id.Year = leadingInt(m[2])
		}
		// The year disambiguates identically-titled works.
		slug := Slugify(id.Title)
		if id.Year > 0 {
			slug += "-" + strconv.Itoa(id.Year)
		}
		id.Slug = Alias(slug, p.typ)
	case ContentTypeShow:
		if len(m) > 3 {
			id.Season = leadingInt(m[2])
			id.Episode = leadingInt(m[3])
		} else if len(m) > 2 {
			id.Season = 1
			id.Episode = leadingInt(m[2])
		}
		if rule.DateBased && (id.Season == 0 || id.Episode == 0) {
			return nil, ErrNoMatch
		}
		id.Slug = Alias(Slugify(id.Title), p.typ)
	}

	if id.Slug == "" || id.Slug == "-" {
		return nil, ErrNoMatch
	}
	return id, nil
}

// ExtractQuality pulls a resolution label out of a listing title. Labels
// outside the known bucket set map to QualityUnknown; a title with no
// label at all defaults to 480p, matching the common labeling convention
// of SD-era sources.
func ExtractQuality(name string) Quality {
	m := qualityRegex.FindStringSubmatch(name)
	if m == nil {
		return Quality480p
	}
	switch m[1] {
	case "480":
		return Quality480p
	case "720":
		return Quality720p
	case "1080":
		return Quality1080p
	case "2160":
		return Quality2160p
	default:
		return QualityUnknown
	}
}

// cleanTitle turns a dotted release title fragment into display form.
func cleanTitle(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, " - ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// leadingInt parses the leading digit run of s, so "01.16" yields 1.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
