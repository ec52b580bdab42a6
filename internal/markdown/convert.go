// Package markdown converts post HTML into Markdown text. The walk is
// tolerant: unrecognized tags are unwrapped and their text kept, so
// arbitrary fragments degrade to readable output instead of failing.
package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Convert renders an HTML fragment as Markdown. It is pure and
// deterministic: `*` bullets, fenced code blocks, `**` strong.
func Convert(fragment string) string {
	body, err := parseBody(fragment)
	if err != nil || body == nil {
		return strings.TrimSpace(fragment)
	}
	var c converter
	c.container(body)
	return strings.Join(c.blocks, "\n\n")
}

type converter struct {
	blocks []string
}

var blockTags = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
	atom.P: true, atom.Ul: true, atom.Ol: true,
	atom.Pre: true, atom.Blockquote: true, atom.Hr: true,
	atom.Table: true, atom.Div: true, atom.Section: true,
	atom.Article: true, atom.Figure: true, atom.Figcaption: true,
	atom.Header: true, atom.Footer: true, atom.Aside: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags[n.DataAtom]
}

// container walks mixed content: inline runs accumulate into one
// paragraph, block children flush it and render on their own.
func (c *converter) container(n *html.Node) {
	var run strings.Builder
	flush := func() {
		if s := collapse(run.String()); s != "" {
			c.blocks = append(c.blocks, s)
		}
		run.Reset()
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if isBlock(child) {
			flush()
			c.block(child)
		} else {
			c.inline(child, &run)
		}
	}
	flush()
}

func (c *converter) block(n *html.Node) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		if text := collapse(c.inlineContent(n)); text != "" {
			c.blocks = append(c.blocks, strings.Repeat("#", level)+" "+text)
		}
	case atom.P, atom.Figcaption:
		if text := collapse(c.inlineContent(n)); text != "" {
			c.blocks = append(c.blocks, text)
		}
	case atom.Ul:
		c.list(n, false)
	case atom.Ol:
		c.list(n, true)
	case atom.Pre:
		c.fenced(n)
	case atom.Blockquote:
		c.quote(n)
	case atom.Hr:
		c.blocks = append(c.blocks, "---")
	case atom.Table:
		c.table(n)
	default:
		// div, section and friends only group; recurse.
		c.container(n)
	}
}

func (c *converter) inline(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		if inner := strings.TrimSpace(c.inlineContent(n)); inner != "" {
			b.WriteString("**" + inner + "**")
		}
	case atom.Em, atom.I:
		if inner := strings.TrimSpace(c.inlineContent(n)); inner != "" {
			b.WriteString("*" + inner + "*")
		}
	case atom.Code:
		if inner := strings.TrimSpace(textContent(n)); inner != "" {
			b.WriteString("`" + inner + "`")
		}
	case atom.A:
		inner := strings.TrimSpace(c.inlineContent(n))
		href := attr(n, "href")
		switch {
		case inner == "":
		case href == "":
			b.WriteString(inner)
		default:
			b.WriteString("[" + inner + "](" + href + ")")
		}
	case atom.Img:
		src := attr(n, "src")
		if src != "" {
			b.WriteString("![" + attr(n, "alt") + "](" + src + ")")
		}
	case atom.Br:
		b.WriteString("\n")
	default:
		// Unknown inline tag: unwrap, keep the content.
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			c.inline(child, b)
		}
	}
}

func (c *converter) inlineContent(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.inline(child, &b)
	}
	return b.String()
}

func (c *converter) list(n *html.Node, ordered bool) {
	var lines []string
	i := 0
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.DataAtom != atom.Li {
			continue
		}
		i++
		marker := "* "
		if ordered {
			marker = fmt.Sprintf("%d. ", i)
		}

		var sub converter
		sub.container(child)
		item := strings.Join(sub.blocks, "\n")
		for j, line := range strings.Split(item, "\n") {
			if j == 0 {
				lines = append(lines, marker+line)
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}
	if len(lines) > 0 {
		c.blocks = append(c.blocks, strings.Join(lines, "\n"))
	}
}

// fenced renders a pre block with backtick fences, never indentation.
func (c *converter) fenced(n *html.Node) {
	lang := ""
	if code := firstChildElement(n, atom.Code); code != nil {
		for _, cls := range strings.Fields(attr(code, "class")) {
			if rest, ok := strings.CutPrefix(cls, "language-"); ok {
				lang = rest
				break
			}
		}
	}
	text := strings.Trim(textContent(n), "\n")
	c.blocks = append(c.blocks, "```"+lang+"\n"+text+"\n```")
}

func (c *converter) quote(n *html.Node) {
	var sub converter
	sub.container(n)
	if len(sub.blocks) == 0 {
		return
	}
	var lines []string
	for _, line := range strings.Split(strings.Join(sub.blocks, "\n\n"), "\n") {
		if line == "" {
			lines = append(lines, ">")
		} else {
			lines = append(lines, "> "+line)
		}
	}
	c.blocks = append(c.blocks, strings.Join(lines, "\n"))
}

func (c *converter) table(n *html.Node) {
	var rows [][]string
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if child.DataAtom == atom.Tr {
				var cells []string
				for cell := child.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.DataAtom == atom.Td || cell.DataAtom == atom.Th) {
						cells = append(cells, collapse(c.inlineContent(cell)))
					}
				}
				if len(cells) > 0 {
					rows = append(rows, cells)
				}
				continue
			}
			walkRows(child)
		}
	}
	walkRows(n)
	if len(rows) == 0 {
		return
	}

	var lines []string
	for i, row := range rows {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
		if i == 0 {
			seps := make([]string, len(row))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	c.blocks = append(c.blocks, strings.Join(lines, "\n"))
}

// collapse normalizes whitespace runs to single spaces, line by line
// so <br> breaks survive.
func collapse(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	out := strings.Join(lines, "\n")
	return strings.Trim(out, "\n")
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func firstChildElement(n *html.Node, a atom.Atom) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.DataAtom == a {
			return child
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
