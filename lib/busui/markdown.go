// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// The parser configuration never changes and goldmark parsers are safe
// to share, so one instance serves every render.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderMarkdown parses markdown and renders it as styled terminal
// text. Soft line breaks become spaces so hard-wrapped source reflows
// at the requested width. It covers the structures the static pages
// use: headings, paragraphs, emphasis, code spans, and flat lists.
func renderMarkdown(input string, theme Theme, width int) string {
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	renderer := &markdownRenderer{
		source:  source,
		width:   width,
		heading: lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		code:    lipgloss.NewStyle().Foreground(theme.FaintText),
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n") + "\n"
}

type markdownRenderer struct {
	source  []byte
	width   int
	heading lipgloss.Style
	code    lipgloss.Style
	output  strings.Builder
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		if _, ok := node.(*ast.List); ok {
			renderer.output.WriteString("\n")
		}
		return ast.WalkContinue, nil
	}

	switch node := node.(type) {
	case *ast.Heading:
		renderer.output.WriteString(renderer.heading.Render(renderer.inlineText(node)) + "\n\n")
		return ast.WalkSkipChildren, nil

	case *ast.Paragraph:
		if _, inList := node.Parent().(*ast.ListItem); inList {
			return ast.WalkContinue, nil
		}
		renderer.output.WriteString(ansi.Wordwrap(renderer.inlineText(node), renderer.width, " ") + "\n\n")
		return ast.WalkSkipChildren, nil

	case *ast.ListItem:
		renderer.writeListItem(node)
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		renderer.output.WriteString(strings.Repeat("-", renderer.width) + "\n\n")
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) writeListItem(item *ast.ListItem) {
	marker := "- "
	if list, ok := item.Parent().(*ast.List); ok && list.IsOrdered() {
		index := list.Start
		for sibling := list.FirstChild(); sibling != nil && sibling != item; sibling = sibling.NextSibling() {
			index++
		}
		marker = fmt.Sprintf("%d. ", index)
	}

	var parts []string
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		parts = append(parts, renderer.inlineText(child))
	}
	content := strings.Join(parts, " ")

	wrapped := ansi.Wordwrap(content, renderer.width-len(marker)-2, " ")
	indent := strings.Repeat(" ", len(marker)+2)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if i == 0 {
			renderer.output.WriteString("  " + marker + line + "\n")
		} else {
			renderer.output.WriteString(indent + line + "\n")
		}
	}
}

// inlineText flattens a block's inline children into one styled string.
func (renderer *markdownRenderer) inlineText(node ast.Node) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			builder.Write(child.Segment.Value(renderer.source))
			if child.SoftLineBreak() {
				builder.WriteString(" ")
			}
			if child.HardLineBreak() {
				builder.WriteString("\n")
			}
		case *ast.Emphasis:
			style := lipgloss.NewStyle().Italic(true)
			if child.Level >= 2 {
				style = lipgloss.NewStyle().Bold(true)
			}
			builder.WriteString(style.Render(renderer.inlineText(child)))
		case *ast.CodeSpan:
			builder.WriteString(renderer.code.Render(renderer.inlineText(child)))
		default:
			builder.WriteString(renderer.inlineText(child))
		}
	}
	return builder.String()
}
