// Package format turns assistant text written in a small markdown subset
// into an HTML fragment for the chat and history views.
//
// The output is not escaped. Only backend assistant responses are passed
// through here; user-typed text is rendered escaped by the templates.
package format

import (
	"strconv"
	"strings"
)

// HTML runs the formatting stages in their fixed order:
//
//	headers, bold, italic, fenced code, inline code,
//	bullet items, numbered items, list wrapping, tables,
//	line breaks, keyword highlighting.
//
// It is pure and never fails; markers without a closing partner are kept
// as literal characters.
func HTML(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	// The placeholder runes are reserved for fenced code.
	text = placeholderStripper.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = header(line)
		line = wrapPairs(line, "**", "<strong>", "</strong>")
		line = wrapSingles(line, '*', "<em>", "</em>")
		lines[i] = line
	}

	fenced, codes := extractFences(strings.Join(lines, "\n"))

	lines = strings.Split(fenced, "\n")
	for i, line := range lines {
		lines[i] = wrapSingles(line, '`', `<code class="inline-code">`, "</code>")
	}

	blocks := classifyItems(lines)
	blocks = wrapListRuns(blocks)
	blocks = wrapOrphanItems(blocks)
	blocks = wrapTables(blocks)

	out := restoreFences(joinBlocks(blocks), codes)
	out = lineBreaks(out)
	return highlightKeywords(out)
}

var headerRules = []struct {
	prefix string
	open   string
	close  string
}{
	// Most specific marker first.
	{"### ", `<h3 class="content-header-h3">`, "</h3>"},
	{"## ", `<h2 class="content-header-h2">`, "</h2>"},
	{"# ", `<h1 class="content-header-h1">`, "</h1>"},
}

func header(line string) string {
	for _, r := range headerRules {
		if strings.HasPrefix(line, r.prefix) {
			return r.open + line[len(r.prefix):] + r.close
		}
	}
	return line
}

// wrapPairs replaces delim…delim spans with non-empty content, leftmost
// first, scanning left to right.
func wrapPairs(line, delim, open, close string) string {
	var b strings.Builder
	for {
		i := strings.Index(line, delim)
		if i < 0 || i+len(delim)+1 > len(line) {
			break
		}
		j := strings.Index(line[i+len(delim)+1:], delim)
		if j < 0 {
			break
		}
		end := i + len(delim) + 1 + j
		b.WriteString(line[:i])
		b.WriteString(open)
		b.WriteString(line[i+len(delim) : end])
		b.WriteString(close)
		line = line[end+len(delim):]
	}
	b.WriteString(line)
	return b.String()
}

// wrapSingles replaces m…m spans whose content is non-empty and free of m.
// Adjacent markers (an unmatched "**" or "``") stay literal.
func wrapSingles(line string, m byte, open, close string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(line, m)
		if i < 0 {
			break
		}
		j := strings.IndexByte(line[i+1:], m)
		if j < 0 {
			break
		}
		if j == 0 {
			b.WriteString(line[:i+1])
			line = line[i+1:]
			continue
		}
		b.WriteString(line[:i])
		b.WriteString(open)
		b.WriteString(line[i+1 : i+1+j])
		b.WriteString(close)
		line = line[i+2+j:]
	}
	b.WriteString(line)
	return b.String()
}

var placeholderStripper = strings.NewReplacer(placeholderOn, "", placeholderOff, "")

const (
	fence          = "```"
	placeholderOn  = "\uE000"
	placeholderOff = "\uE001"
)

// extractFences renders every closed ``` block and swaps it for a
// newline-free placeholder so the line stages treat it as opaque.
func extractFences(text string) (string, []string) {
	var (
		b     strings.Builder
		codes []string
	)
	for {
		i := strings.Index(text, fence)
		if i < 0 {
			break
		}
		j := strings.Index(text[i+len(fence):], fence)
		if j < 0 {
			break
		}
		body := text[i+len(fence) : i+len(fence)+j]
		b.WriteString(text[:i])
		b.WriteString(placeholderOn)
		b.WriteString(strconv.Itoa(len(codes)))
		b.WriteString(placeholderOff)
		codes = append(codes, `<pre class="code-block"><code>`+body+"</code></pre>")
		text = text[i+2*len(fence)+j:]
	}
	b.WriteString(text)
	return b.String(), codes
}

func restoreFences(text string, codes []string) string {
	if len(codes) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(codes))
	for i, code := range codes {
		pairs = append(pairs, placeholderOn+strconv.Itoa(i)+placeholderOff, code)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// lineBreaks turns newlines into <br> and caps any run at two.
func lineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\n\n", "<br><br>")
	text = strings.ReplaceAll(text, "\n", "<br>")

	const br = "<br>"
	var b strings.Builder
	run := 0
	for len(text) > 0 {
		if strings.HasPrefix(text, br) {
			if run < 2 {
				b.WriteString(br)
			}
			run++
			text = text[len(br):]
			continue
		}
		run = 0
		b.WriteByte(text[0])
		text = text[1:]
	}
	return b.String()
}

var keywordReplacer = strings.NewReplacer(
	"ERROR:", `<span class="error-text">ERROR:</span>`,
	"WARNING:", `<span class="warning-text">WARNING:</span>`,
	"Note:", `<span class="note-text">Note:</span>`,
)

func highlightKeywords(text string) string {
	return keywordReplacer.Replace(text)
}
