package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultCandidates returns the ordered list of KEY=VALUE files to search.
// An explicit path, when non-empty, is tried first.
func DefaultCandidates(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "..", "config", ".env"))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(wd, "config", ".env"),
			filepath.Join(wd, ".env"),
		)
	}
	return paths
}

// FindFile returns the first candidate that exists as a regular file, or ""
// if none does.
func FindFile(candidates []string) string {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ParseFile reads a KEY=VALUE file. The file is closed before returning.
func ParseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	values, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return values, nil
}

// maxLineSize bounds a single line of a config file.
const maxLineSize = 1 << 20

// Parse reads newline-delimited KEY=VALUE pairs. Blank lines and lines
// starting with '#' are skipped. Each remaining line is parsed on its own so
// that a malformed line is dropped without affecting its neighbours. Values
// are taken literally: "$NAME" is never expanded.
func Parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}
		pair, err := godotenv.Unmarshal(escapeExpansion(line))
		if err != nil {
			continue
		}
		for k, v := range pair {
			if k != "" {
				values[k] = v
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// escapeExpansion escapes '$' in the value of line so that godotenv keeps it
// verbatim. Single-quoted values are never expanded and are left alone.
func escapeExpansion(line string) string {
	key, value, _ := strings.Cut(line, "=")
	if !strings.Contains(value, "$") || strings.HasPrefix(strings.TrimSpace(value), "'") {
		return line
	}
	return key + "=" + strings.ReplaceAll(value, "$", `\$`)
}
