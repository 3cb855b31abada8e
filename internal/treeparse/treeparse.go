// Package treeparse provides lightweight per-language syntax parsers that
// produce generic syntax trees for quality analysis. The trees are
// structural approximations: good enough for line classification, function
// and class discovery and branch counting, with no ambition to be full
// grammars.
package treeparse

import (
	"path"
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// Registry resolves a parser per file extension. The language set is
// closed; unknown extensions resolve to nothing rather than failing.
type Registry struct {
	parsers map[schema.Language]contract.SyntaxParser
}

// Compile-time check.
var _ contract.ParserResolver = &Registry{}

// NewRegistry builds the registry with every supported language bound.
func NewRegistry() *Registry {
	parsers := map[schema.Language]contract.SyntaxParser{
		schema.LangPython: &pythonParser{},
		schema.LangRuby:   &rubyParser{},
	}
	for _, lang := range []schema.Language{
		schema.LangGo,
		schema.LangJavaScript,
		schema.LangTypeScript,
		schema.LangJava,
		schema.LangC,
		schema.LangCPP,
	} {
		parsers[lang] = &clikeParser{lang: lang}
	}
	return &Registry{parsers: parsers}
}

// ResolveParser maps a file path to its language parser. The second return
// is false for unsupported extensions.
func (r *Registry) ResolveParser(filePath string) (contract.SyntaxParser, bool) {
	lang := schema.LanguageForExtension(path.Ext(filePath))
	if lang == schema.LangUnknown {
		return nil, false
	}
	parser, ok := r.parsers[lang]
	return parser, ok
}

// splitLines splits source bytes into lines without a trailing phantom
// line for newline-terminated files.
func splitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}
	lines := strings.Split(string(src), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineNode builds a node spanning a single row.
func lineNode(nodeType string, row int) *contract.SyntaxNode {
	return &contract.SyntaxNode{Type: nodeType, StartRow: row, EndRow: row}
}

// attach appends child to parent.
func attach(parent, child *contract.SyntaxNode) {
	parent.Children = append(parent.Children, child)
}

// parameterListNode builds a parameters node from raw parameter texts.
func parameterListNode(row int, params []string) *contract.SyntaxNode {
	node := lineNode("parameters", row)
	for _, p := range params {
		param := lineNode("parameter", row)
		param.Text = p
		attach(node, param)
	}
	return node
}

// splitParams splits a raw parameter list on top-level commas, dropping
// empties and bare Python positional markers.
func splitParams(raw string) []string {
	var params []string
	depth := 0
	start := 0
	flush := func(end int) {
		p := strings.TrimSpace(raw[start:end])
		if p != "" && p != "*" && p != "/" {
			params = append(params, p)
		}
	}
	for i, r := range raw {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(raw))
	return params
}
