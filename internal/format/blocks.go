package format

import "strings"

type blockKind int

const (
	blockText blockKind = iota
	blockBullet
	blockNumbered
	blockList
	blockTable
)

// block is one output line, or a wrapped group of lines, between the
// line-oriented stages. html is the rendered form.
type block struct {
	kind blockKind
	html string
}

func classifyItems(lines []string) []block {
	blocks := make([]block, len(lines))
	for i, line := range lines {
		if content, ok := bulletItem(line); ok {
			blocks[i] = block{blockBullet, `<li class="bullet-item">` + content + "</li>"}
			continue
		}
		if num, content, ok := numberedItem(line); ok {
			blocks[i] = block{blockNumbered, `<li class="numbered-item"><strong>` + num + "</strong> " + content + "</li>"}
			continue
		}
		blocks[i] = block{blockText, line}
	}
	return blocks
}

// bulletItem matches a line starting, after indentation, with "-" or "•".
func bulletItem(line string) (string, bool) {
	rest := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(rest, "-"):
		rest = rest[1:]
	case strings.HasPrefix(rest, "•"):
		rest = rest[len("•"):]
	default:
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	if strings.TrimSpace(rest) == "" {
		return "", false
	}
	return rest, true
}

// numberedItem matches "N." after indentation and returns "N." and the rest.
func numberedItem(line string) (string, string, bool) {
	rest := strings.TrimLeft(line, " \t")
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(rest) || rest[n] != '.' {
		return "", "", false
	}
	num := rest[:n+1]
	content := strings.TrimLeft(rest[n+1:], " \t")
	if strings.TrimSpace(content) == "" {
		return "", "", false
	}
	return num, content, true
}

var listTags = map[blockKind][2]string{
	blockBullet:   {`<ul class="bullet-list">`, "</ul>"},
	blockNumbered: {`<ol class="numbered-list">`, "</ol>"},
}

// wrapListRuns wraps every run of two or more items of the same kind.
func wrapListRuns(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	for i := 0; i < len(blocks); {
		kind := blocks[i].kind
		tags, isItem := listTags[kind]
		j := i + 1
		for isItem && j < len(blocks) && blocks[j].kind == kind {
			j++
		}
		if !isItem || j-i < 2 {
			out = append(out, blocks[i])
			i++
			continue
		}
		out = append(out, block{blockList, tags[0] + joinHTML(blocks[i:j], "") + tags[1]})
		i = j
	}
	return out
}

// wrapOrphanItems wraps the items the run pass left bare, one list each,
// so no <li> reaches the output outside a list.
func wrapOrphanItems(blocks []block) []block {
	for i, b := range blocks {
		if tags, ok := listTags[b.kind]; ok {
			blocks[i] = block{blockList, tags[0] + b.html + tags[1]}
		}
	}
	return blocks
}

// wrapTables turns pipe-delimited lines into rows and wraps consecutive
// rows in one table.
func wrapTables(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	var rows []string
	flush := func() {
		if len(rows) > 0 {
			out = append(out, block{blockTable, `<table class="content-table">` + strings.Join(rows, "") + "</table>"})
			rows = nil
		}
	}
	for _, b := range blocks {
		if b.kind == blockText {
			if row, ok := tableRow(b.html); ok {
				rows = append(rows, row)
				continue
			}
		}
		flush()
		out = append(out, b)
	}
	flush()
	return out
}

func tableRow(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 3 || t[0] != '|' || t[len(t)-1] != '|' {
		return "", false
	}
	var b strings.Builder
	b.WriteString(`<tr class="table-row">`)
	for _, cell := range strings.Split(t[1:len(t)-1], "|") {
		b.WriteString(`<td class="table-cell">`)
		b.WriteString(strings.TrimSpace(cell))
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
	return b.String(), true
}

func joinBlocks(blocks []block) string {
	return joinHTML(blocks, "\n")
}

func joinHTML(blocks []block, sep string) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.html
	}
	return strings.Join(parts, sep)
}
