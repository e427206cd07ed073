// Package apps reads the declarative app list installed on first run.
package apps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

type App struct {
	Name   string
	URL    string
	Branch string
}

// Parse reads one app per line. Blank and whitespace-only lines are
// ignored, as are # comments. A line is either a bare app name or a git
// URL, optionally with a #branch fragment.
func Parse(r io.Reader) ([]App, error) {
	var result []App
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read apps list: %w", err)
	}
	return result, nil
}

func ParseFile(filePath string) ([]App, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open apps list %s: %w", filePath, err)
	}
	defer file.Close()
	return Parse(file)
}

func parseLine(line string) App {
	if !strings.Contains(line, "://") && !strings.HasPrefix(line, "git@") {
		return App{Name: line}
	}

	app := App{URL: line}
	if url, branch, found := strings.Cut(line, "#"); found {
		app.URL = url
		app.Branch = branch
	}
	app.Name = path.Base(strings.TrimSuffix(app.URL, ".git"))
	return app
}
