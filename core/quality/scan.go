package quality

import (
	"fmt"
	"strings"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/schema"
)

// todoContextWidth bounds the context captured around a TODO-class marker.
const todoContextWidth = 80

// securityPattern pairs a lowercase substring with its human description.
type securityPattern struct {
	needle      string
	description string
}

// securityPatterns is the fixed table of suspicious substrings. Matching is
// case-insensitive and intentionally coarse; findings are hints for a
// reviewer, not verdicts.
var securityPatterns = []securityPattern{
	{"eval(", "dynamic code execution via eval"},
	{"exec(", "dynamic code execution via exec"},
	{"os.system(", "direct shell command execution"},
	{"shell=true", "subprocess invoked with shell=True"},
	{"pickle.loads(", "unsafe deserialization via pickle"},
	{"yaml.load(", "YAML load without a safe loader"},
	{"password =", "possible hardcoded password"},
	{"passwd =", "possible hardcoded password"},
	{"secret =", "possible hardcoded secret"},
	{"api_key =", "possible hardcoded API key"},
	{"md5(", "weak hash algorithm (MD5)"},
	{"sha1(", "weak hash algorithm (SHA-1)"},
	{"innerhtml", "direct innerHTML assignment"},
	{"dangerouslysetinnerhtml", "React dangerouslySetInnerHTML usage"},
}

// todoMarkerNames are the TODO-class markers, checked in order so the
// highest-signal marker wins when several appear on one line.
var todoMarkerNames = []string{"FIXME", "TODO", "HACK", "XXX"}

// scanSecurityIssues matches the pattern table against non-comment lines.
// Comment rows are skipped since prose mentioning eval() is not a finding.
// Lines are 1-based in the output.
func scanSecurityIssues(lines []string, comments map[int]struct{}) []string {
	var issues []string
	for i, line := range lines {
		if _, isComment := comments[i]; isComment {
			continue
		}
		lowered := strings.ToLower(line)
		for _, pattern := range securityPatterns {
			if strings.Contains(lowered, pattern.needle) {
				issues = append(issues, fmt.Sprintf("line %d: %s", i+1, pattern.description))
			}
		}
	}
	return issues
}

// scanTodoMarkers finds TODO-class markers on every line, comments
// included, since that is where they live.
func scanTodoMarkers(lines []string) []schema.TodoMarker {
	var markers []schema.TodoMarker
	for i, line := range lines {
		for _, name := range todoMarkerNames {
			idx := indexFold(line, name)
			if idx < 0 {
				continue
			}
			markers = append(markers, schema.TodoMarker{
				Line:    i + 1,
				Marker:  name,
				Context: truncateContext(strings.TrimSpace(line[idx:])),
			})
			break
		}
	}
	return markers
}

// indexFold returns the byte offset of the first case-insensitive match of
// name in s. Matching on s directly keeps the offset valid for slicing:
// uppercasing a copy can change byte lengths for non-ASCII text.
func indexFold(s, name string) int {
	for i := 0; i+len(name) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(name)], name) {
			return i
		}
	}
	return -1
}

// truncateContext trims marker context to a bounded width.
func truncateContext(s string) string {
	runes := []rune(s)
	if len(runes) <= todoContextWidth {
		return s
	}
	return string(runes[:todoContextWidth-3]) + "..."
}
