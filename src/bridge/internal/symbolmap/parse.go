package symbolmap

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlMapping struct {
	Classes map[string]string `yaml:"classes"`
}

// Parse reads a mapping file. Files ending in .yaml or .yml hold a "classes" map from raw to display
// names. Anything else is read as a ProGuard/R8 mapping where "original -> obfuscated:" lines map classes.
func Parse(name string, r io.Reader) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(r)
	default:
		return parseProguard(r)
	}
}

func parseYAML(r io.Reader) (map[string]string, error) {
	var m yamlMapping
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding yaml mapping: %w", err)
	}
	if m.Classes == nil {
		return map[string]string{}, nil
	}
	return m.Classes, nil
}

func parseProguard(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		// Member lines are indented and comments start with '#'.
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}
		original, obfuscated, ok := strings.Cut(line, " -> ")
		if !ok || !strings.HasSuffix(obfuscated, ":") {
			return nil, fmt.Errorf("malformed class mapping on line %d: %q", lineNo, line)
		}
		out[strings.TrimSuffix(obfuscated, ":")] = strings.TrimSpace(original)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
