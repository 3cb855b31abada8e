package treeparse

import (
	"strings"
	"unicode"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/contract"
	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// clikeParser approximates a syntax tree for brace-delimited languages.
// One parser covers Go, JavaScript, TypeScript, Java, C and C++; the
// language only changes how functions and type definitions are spotted.
type clikeParser struct {
	lang schema.Language
}

// Compile-time check.
var _ contract.SyntaxParser = &clikeParser{}

// Language implements contract.SyntaxParser.
func (p *clikeParser) Language() schema.Language { return p.lang }

// clikeFrame is one open function or class body.
type clikeFrame struct {
	node      *contract.SyntaxNode
	openDepth int
	pending   bool // Waiting for the opening brace on a later line
}

// Parse implements contract.SyntaxParser.
func (p *clikeParser) Parse(src []byte) (*contract.SyntaxTree, error) {
	lines := splitLines(src)
	root := &contract.SyntaxNode{Type: "module", StartRow: 0, EndRow: max(0, len(lines)-1)}
	tree := &contract.SyntaxTree{Root: root}

	var stack []clikeFrame
	depth := 0
	inBlockComment := false
	blockStart := 0
	lastContent := 0

	parent := func() *contract.SyntaxNode {
		if len(stack) > 0 {
			return stack[len(stack)-1].node
		}
		return root
	}

	for i, raw := range lines {
		line := raw
		if inBlockComment {
			lastContent = i
			if idx := strings.Index(line, "*/"); idx >= 0 {
				attach(parent(), &contract.SyntaxNode{Type: "block_comment", StartRow: blockStart, EndRow: i})
				inBlockComment = false
				line = line[idx+2:]
			} else {
				continue
			}
		}

		code, opensBlockComment, wholeLineComment := stripLineNoise(line)
		trimmed := strings.TrimSpace(code)
		if wholeLineComment {
			attach(parent(), lineNode("comment", i))
		}
		if opensBlockComment {
			inBlockComment = true
			blockStart = i
		}
		if trimmed == "" {
			if wholeLineComment || opensBlockComment {
				lastContent = i
			}
			continue
		}
		lastContent = i

		// Structural classification happens on the cleaned code text before
		// brace accounting so a node's open brace can be its own.
		if fn, ok := p.matchFunction(trimmed, i); ok {
			attach(parent(), fn)
			stack = append(stack, clikeFrame{node: fn, openDepth: depth, pending: true})
		} else if cls, ok := p.matchClass(trimmed, i); ok {
			attach(parent(), cls)
			stack = append(stack, clikeFrame{node: cls, openDepth: depth, pending: true})
		} else if branch := clikeBranchType(trimmed); branch != "" {
			attach(parent(), lineNode(branch, i))
		} else if isClikeTernary(trimmed) {
			attach(parent(), lineNode("conditional_expression", i))
		}

		// Brace accounting closes frames when their body depth unwinds.
		for _, r := range code {
			switch r {
			case '{':
				if len(stack) > 0 && stack[len(stack)-1].pending {
					stack[len(stack)-1].openDepth = depth
					stack[len(stack)-1].pending = false
				}
				depth++
			case '}':
				depth--
				if len(stack) > 0 && !stack[len(stack)-1].pending && depth <= stack[len(stack)-1].openDepth {
					stack[len(stack)-1].node.EndRow = i
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	if depth != 0 || inBlockComment {
		tree.HasError = true
	}
	if inBlockComment {
		attach(root, &contract.SyntaxNode{Type: "block_comment", StartRow: blockStart, EndRow: max(0, len(lines)-1)})
	}
	for len(stack) > 0 {
		stack[len(stack)-1].node.EndRow = lastContent
		stack = stack[:len(stack)-1]
	}
	if len(lines) > 0 {
		root.EndRow = len(lines) - 1
	}
	return tree, nil
}

// stripLineNoise removes string literals, a trailing line comment and any
// inline block comments from a line. It reports whether a block comment
// stays open past the line and whether the line holds only comment text.
func stripLineNoise(line string) (code string, opensBlockComment, wholeLineComment bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "//") {
		return "", false, true
	}
	if strings.HasPrefix(trimmed, "/*") {
		rest, closed := cutBlockComment(trimmed)
		if !closed {
			return "", true, true
		}
		if strings.TrimSpace(rest) == "" {
			return "", false, true
		}
		code, opens, _ := stripLineNoise(rest)
		return code, opens, false
	}

	var out strings.Builder
	var quote rune
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			if r == '\\' {
				i++
			} else if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '/':
			if i+1 < len(runes) && runes[i+1] == '/' {
				return out.String(), false, false
			}
			if i+1 < len(runes) && runes[i+1] == '*' {
				rest, closed := cutBlockComment(string(runes[i:]))
				if !closed {
					return out.String(), true, false
				}
				tail, opens, _ := stripLineNoise(rest)
				return out.String() + tail, opens, false
			}
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String(), false, false
}

// cutBlockComment drops a leading "/* ... */" and returns the remainder.
// The second return is false when the comment never closes on this line.
func cutBlockComment(s string) (string, bool) {
	end := strings.Index(s[2:], "*/")
	if end < 0 {
		return "", false
	}
	return s[2+end+2:], true
}

// matchFunction spots a function definition line for the parser's language.
func (p *clikeParser) matchFunction(trimmed string, row int) (*contract.SyntaxNode, bool) {
	switch p.lang {
	case schema.LangGo:
		if !strings.HasPrefix(trimmed, "func ") && !strings.HasPrefix(trimmed, "func(") {
			return nil, false
		}
		return functionFromSignature(goFunctionName(trimmed), trimmed, row), true
	case schema.LangJavaScript, schema.LangTypeScript:
		if name, ok := jsFunctionName(trimmed); ok {
			return functionFromSignature(name, trimmed, row), true
		}
		return nil, false
	default: // Java, C, C++
		if name, ok := cFunctionName(trimmed); ok {
			return functionFromSignature(name, trimmed, row), true
		}
		return nil, false
	}
}

// functionFromSignature builds a function node with identifier and
// parameter children taken from the signature line.
func functionFromSignature(name, trimmed string, row int) *contract.SyntaxNode {
	fn := &contract.SyntaxNode{Type: "function_definition", StartRow: row, EndRow: row}
	ident := lineNode("identifier", row)
	ident.Text = name
	attach(fn, ident)
	attach(fn, parameterListNode(row, splitParams(signatureParams(trimmed, name))))
	return fn
}

// signatureParams extracts the raw parameter list following the function name.
func signatureParams(trimmed, name string) string {
	search := trimmed
	if name != "" && name != "<anonymous>" {
		if idx := strings.Index(trimmed, name); idx >= 0 {
			search = trimmed[idx+len(name):]
		}
	}
	open := strings.IndexByte(search, '(')
	if open < 0 {
		return ""
	}
	depth := 0
	for i := open; i < len(search); i++ {
		switch search[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return search[open+1 : i]
			}
		}
	}
	return search[open+1:]
}

// goFunctionName extracts the name from a Go func line, skipping any
// receiver.
func goFunctionName(trimmed string) string {
	rest := strings.TrimPrefix(trimmed, "func")
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			rest = strings.TrimSpace(rest[end+1:])
		}
	}
	end := strings.IndexByte(rest, '(')
	if end <= 0 {
		return "<anonymous>"
	}
	name := strings.TrimSpace(rest[:end])
	// Drop type parameter lists.
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		name = name[:idx]
	}
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// jsFunctionName spots function declarations, assigned function
// expressions and braced arrow functions.
func jsFunctionName(trimmed string) (string, bool) {
	if idx := strings.Index(trimmed, "function"); idx >= 0 && isWordBoundary(trimmed, idx, len("function")) {
		rest := strings.TrimSpace(trimmed[idx+len("function"):])
		rest = strings.TrimPrefix(rest, "*")
		rest = strings.TrimSpace(rest)
		if open := strings.IndexByte(rest, '('); open > 0 {
			return strings.TrimSpace(rest[:open]), true
		}
		return "<anonymous>", true
	}
	if strings.Contains(trimmed, "=>") && strings.HasSuffix(trimmed, "{") {
		name := "<anonymous>"
		if eq := strings.Index(trimmed, "="); eq > 0 {
			lhs := strings.TrimSpace(trimmed[:eq])
			fields := strings.Fields(lhs)
			if len(fields) > 0 {
				name = fields[len(fields)-1]
			}
		}
		return name, true
	}
	return "", false
}

// cFunctionName applies the classic heuristic: an identifier directly
// before a parenthesis on a line opening a brace, not led by a control
// keyword and not a call statement.
func cFunctionName(trimmed string) (string, bool) {
	if !strings.HasSuffix(trimmed, "{") {
		return "", false
	}
	open := strings.IndexByte(trimmed, '(')
	if open <= 0 {
		return "", false
	}
	head := strings.TrimSpace(trimmed[:open])
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return "", false
	}
	name := fields[len(fields)-1]
	if idx := strings.LastIndexAny(name, "*&"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" || !isIdentifier(name) {
		return "", false
	}
	switch fields[0] {
	case "if", "else", "for", "while", "switch", "catch", "return", "do", "new":
		return "", false
	}
	// A lone identifier before "(" with no return type is a call or a
	// control construct, except constructors which share the class casing.
	if len(fields) == 1 && !unicode.IsUpper(rune(name[0])) {
		return "", false
	}
	return name, true
}

// matchClass spots a class or type definition line.
func (p *clikeParser) matchClass(trimmed string, row int) (*contract.SyntaxNode, bool) {
	var name string
	switch p.lang {
	case schema.LangGo:
		if !strings.HasPrefix(trimmed, "type ") {
			return nil, false
		}
		if !strings.Contains(trimmed, " struct") && !strings.Contains(trimmed, " interface") {
			return nil, false
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			return nil, false
		}
		name = fields[1]
	default:
		idx := strings.Index(trimmed, "class ")
		if idx < 0 || !isWordBoundary(trimmed, idx, len("class")) {
			return nil, false
		}
		rest := strings.TrimSpace(trimmed[idx+len("class "):])
		fields := strings.FieldsFunc(rest, func(r rune) bool {
			return r == ' ' || r == '{' || r == ':' || r == '<' || r == '('
		})
		if len(fields) == 0 {
			return nil, false
		}
		name = fields[0]
	}

	cls := &contract.SyntaxNode{Type: "class_definition", StartRow: row, EndRow: row}
	ident := lineNode("identifier", row)
	ident.Text = name
	attach(cls, ident)
	return cls, true
}

// clikeBranchType classifies a line-leading branch keyword.
func clikeBranchType(trimmed string) string {
	head := strings.TrimLeft(trimmed, "}) \t")
	switch {
	case hasLeadingKeyword(head, "else if"):
		return "elif_clause"
	case hasLeadingKeyword(head, "if"):
		return "if_statement"
	case hasLeadingKeyword(head, "else"):
		return "else_clause"
	case hasLeadingKeyword(head, "for"):
		return "for_statement"
	case hasLeadingKeyword(head, "while"):
		return "while_statement"
	case hasLeadingKeyword(head, "case") || hasLeadingKeyword(head, "default:"):
		return "case_clause"
	case hasLeadingKeyword(head, "catch"):
		return "catch_clause"
	default:
		return ""
	}
}

// isClikeTernary detects a conditional expression on a non-branch line.
func isClikeTernary(trimmed string) bool {
	q := strings.IndexByte(trimmed, '?')
	if q < 0 {
		return false
	}
	// Optional chaining and nullish coalescing are not conditionals.
	if q+1 < len(trimmed) && (trimmed[q+1] == '.' || trimmed[q+1] == '?') {
		return false
	}
	return strings.IndexByte(trimmed[q:], ':') > 0
}

// hasLeadingKeyword reports whether s starts with the keyword followed by
// a boundary.
func hasLeadingKeyword(s, keyword string) bool {
	if !strings.HasPrefix(s, keyword) {
		return false
	}
	if len(s) == len(keyword) {
		return true
	}
	next := s[len(keyword)]
	return next == ' ' || next == '(' || next == '{' || next == ':'
}

// isWordBoundary reports whether the keyword at offset idx with the given
// length sits between non-identifier characters.
func isWordBoundary(s string, idx, length int) bool {
	if idx > 0 && isIdentByte(s[idx-1]) {
		return false
	}
	end := idx + length
	if end < len(s) && isIdentByte(s[end]) {
		return false
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isIdentifier reports whether s is a plausible identifier, allowing
// qualified C++ names.
func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isIdentByte(b) || b == ':' || b == '~' {
			continue
		}
		return false
	}
	return true
}
