// Package markdown reads and writes vault notes: optional YAML frontmatter
// followed by a body that may hold generated blocks fenced by HTML comments.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// fence is all body. CRLF line endings are normalized.
func Parse(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence)+1:]

	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case rest == fence:
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		switch {
		case idx >= 0:
			raw, body = rest[:idx], rest[idx+len(fence)+2:]
		case strings.HasSuffix(rest, "\n"+fence):
			raw = strings.TrimSuffix(rest, "\n"+fence)
		default:
			return Note{}, fmt.Errorf("parse note: frontmatter is not closed")
		}
	}

	meta := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
			return Note{}, fmt.Errorf("parse note frontmatter: %w", err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}
	return Note{Meta: meta, Body: body}, nil
}

// Merge overwrites the given keys and keeps every other frontmatter key.
func (n *Note) Merge(meta map[string]any) {
	if n.Meta == nil {
		n.Meta = make(map[string]any, len(meta))
	}
	for k, v := range meta {
		n.Meta[k] = v
	}
}

// Render writes the frontmatter (keys sorted) and the body. A note with no
// frontmatter keys renders as body only.
func (n Note) Render() (string, error) {
	if len(n.Meta) == 0 {
		return n.Body, nil
	}
	raw, err := yaml.Marshal(n.Meta)
	if err != nil {
		return "", fmt.Errorf("render note frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(fence + "\n")
	buf.Write(raw)
	buf.WriteString(fence + "\n")
	if n.Body != "" && !strings.HasPrefix(n.Body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// Markers returns the comment pair fencing a generated block, e.g.
// "<!-- ritual:summary:start -->".
func Markers(owner, name string) (string, string) {
	prefix := "<!-- " + owner + ":" + name + ":"
	return prefix + "start -->", prefix + "end -->"
}

// SetBlock replaces the generated block in place, or appends it after the
// existing body. Text outside the markers is never touched.
func (n *Note) SetBlock(owner, name, content string) {
	start, end := Markers(owner, name)
	block := start + "\n" + strings.TrimRight(content, "\n") + "\n" + end

	if from, to, ok := blockSpan(n.Body, start, end); ok {
		n.Body = n.Body[:from] + block + n.Body[to:]
		return
	}
	switch {
	case strings.TrimSpace(n.Body) == "":
		n.Body = block + "\n"
	case strings.HasSuffix(n.Body, "\n"):
		n.Body += "\n" + block + "\n"
	default:
		n.Body += "\n\n" + block + "\n"
	}
}

// Block returns the content between the markers.
func (n Note) Block(owner, name string) (string, bool) {
	start, end := Markers(owner, name)
	from, to, ok := blockSpan(n.Body, start, end)
	if !ok {
		return "", false
	}
	inner := n.Body[from+len(start) : to-len(end)]
	return strings.Trim(inner, "\n"), true
}

func blockSpan(body, start, end string) (int, int, bool) {
	from := strings.Index(body, start)
	if from < 0 {
		return 0, 0, false
	}
	rel := strings.Index(body[from+len(start):], end)
	if rel < 0 {
		return 0, 0, false
	}
	to := from + len(start) + rel + len(end)
	return from, to, true
}
