package emotes

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/onnwee/emote-tender/telemetry"
)

// DefaultPattern matches emote codes delimited by colons, e.g. :Kappa:.
var DefaultPattern = regexp.MustCompile(`:(\w+):`)

// PatternWithDelimiter builds a match pattern using marker on both sides of
// the candidate code.
func PatternWithDelimiter(marker string) *regexp.Regexp {
	m := regexp.QuoteMeta(marker)
	return regexp.MustCompile(m + `(\w+)` + m)
}

// Template renders one matched emote into its textual replacement.
type Template func(name, link string, size int) string

// TemplateString builds a Template from a layout with {name}, {link} and
// {size} placeholders.
func TemplateString(layout string) Template {
	return func(name, link string, size int) string {
		r := strings.NewReplacer("{name}", name, "{link}", link, "{size}", strconv.Itoa(size))
		return r.Replace(layout)
	}
}

var (
	MarkdownTemplate = TemplateString(`![{name}]({link} "{name}")`)
	HTMLTemplate     = TemplateString(`<img class="emote emote-{size}" alt="{name}" src="{link}">`)
	BBCodeTemplate   = TemplateString(`[img]{link}[/img]`)
	PlainTemplate    = TemplateString(`{link}`)
)

// TemplateByName maps a config-friendly name to a builtin template.
func TemplateByName(name string) (Template, bool) {
	switch strings.ToLower(name) {
	case "markdown", "":
		return MarkdownTemplate, true
	case "html":
		return HTMLTemplate, true
	case "bbcode":
		return BBCodeTemplate, true
	case "plain":
		return PlainTemplate, true
	}
	return nil, false
}

// Parser rewrites free-form text by substituting recognized emote codes with
// rendered references, resolving codes against a fetcher's global index.
// A nil Pattern falls back to DefaultPattern, a nil Template to
// MarkdownTemplate, and Size defaults to 0. A nil Fetcher resolves no codes,
// so text passes through unchanged.
type Parser struct {
	Fetcher  *Fetcher
	Pattern  *regexp.Regexp
	Template Template
	Size     int
}

// Parse scans text left to right for non-overlapping pattern matches and
// replaces each whose candidate code resolves in the cache. Unknown codes and
// unmatched text pass through unchanged, delimiters included. Parse performs
// read-only cache lookups and is safe to call concurrently with fetches.
func (p *Parser) Parse(text string) string {
	re := p.Pattern
	if re == nil {
		re = DefaultPattern
	}
	tmpl := p.Template
	if tmpl == nil {
		tmpl = MarkdownTemplate
	}
	telemetry.Inc(telemetry.MessagesParsed)
	if p.Fetcher == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		code := match
		if sub := re.FindStringSubmatch(match); len(sub) > 1 {
			code = sub[1]
		}
		e, ok := p.Fetcher.Emote(code)
		if !ok {
			return match
		}
		telemetry.Inc(telemetry.EmotesReplaced)
		return tmpl(e.Code(), e.ToLink(p.Size), p.Size)
	})
}
