// Package superconf rewrites one section of a bench-generated supervisor
// configuration for in-container use. The rewrite is a single pass over the
// lines with a two-state scanner (inside / outside the target section);
// every line is classified so the result can be audited before touching
// the file.
package superconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type LineKind int

const (
	LineUnchanged LineKind = iota
	LineReplaced
	LineCommented
)

type Line struct {
	Kind LineKind
	Text string
}

// Rules drives a rewrite. Replacements swap a whole key line (matched by
// literal prefix, once per key) for ReplaceWith at the same index;
// CommentKeywords lines are prefixed with ";". Both apply only inside
// Section.
type Rules struct {
	Section         string
	ReplaceKeys     []string
	ReplaceWith     map[string]string
	CommentKeywords []string
}

// DefaultRules targets the web program section: the command binds gunicorn
// to all interfaces so the container port mapping works, and the log-file
// keys are commented out because supervisord logs to stdout in a container.
func DefaultRules(benchDir string) Rules {
	sitesDir := filepath.Join(benchDir, "sites")
	gunicorn := filepath.Join(benchDir, "env", "bin", "gunicorn")
	return Rules{
		Section:     "[program:frappe-bench-frappe-web]",
		ReplaceKeys: []string{"command=", "directory="},
		ReplaceWith: map[string]string{
			"command=": "command=" + gunicorn +
				" -b 0.0.0.0:8000 -w 4 -t 120 frappe.app:application --preload",
			"directory=": "directory=" + sitesDir,
		},
		CommentKeywords: []string{"stdout_logfile", "stderr_logfile"},
	}
}

// Rewrite classifies every input line. Lines outside the target section,
// and unmatched lines inside it, pass through unchanged; order is
// preserved and each replacement key fires at most once.
func Rewrite(lines []string, rules Rules) []Line {
	out := make([]Line, 0, len(lines))
	inSection := false
	replaced := make(map[string]bool, len(rules.ReplaceKeys))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inSection = trimmed == rules.Section
			out = append(out, Line{LineUnchanged, line})
			continue
		}
		if !inSection {
			out = append(out, Line{LineUnchanged, line})
			continue
		}

		if key := matchReplaceKey(trimmed, rules, replaced); key != "" {
			replaced[key] = true
			out = append(out, Line{LineReplaced, rules.ReplaceWith[key]})
			continue
		}
		if !strings.HasPrefix(trimmed, ";") && containsAny(trimmed, rules.CommentKeywords) {
			out = append(out, Line{LineCommented, ";" + line})
			continue
		}
		out = append(out, Line{LineUnchanged, line})
	}
	return out
}

// Render joins classified lines back into file content.
func Render(lines []Line) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n")
}

func Count(lines []Line, kind LineKind) int {
	n := 0
	for _, line := range lines {
		if line.Kind == kind {
			n++
		}
	}
	return n
}

// RewriteFile applies the rules to a config file. With inPlace the file is
// rewritten with its original permissions; otherwise only the classified
// result is returned.
func RewriteFile(path string, rules Rules, inPlace bool) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	lines := Rewrite(strings.Split(string(data), "\n"), rules)
	if !inPlace {
		return lines, nil
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(Render(lines)), perm); err != nil {
		return nil, fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return lines, nil
}

func matchReplaceKey(trimmed string, rules Rules, replaced map[string]bool) string {
	for _, key := range rules.ReplaceKeys {
		if !replaced[key] && strings.HasPrefix(trimmed, key) {
			return key
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
