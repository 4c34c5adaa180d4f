// Package docs embeds the help topics shown by the topic subcommand.
// Each *.md file is one topic, named after the file; readme.md is the
// index and is not a topic itself.
package docs

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

const indexFile = "readme.md"

// Topic returns the markdown content of one help topic. The name "*"
// expands to every topic, concatenated in alphabetical order.
func Topic(name string) (string, error) {
	if name == "*" {
		var b strings.Builder
		for _, t := range List() {
			content, err := Topic(t)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Index returns the markdown index of all topics.
func Index() string {
	content, err := topics.ReadFile(indexFile)
	if err != nil {
		// the index is embedded at build time, it cannot be missing
		panic(err)
	}
	return string(content)
}

// List returns the names of all available topics, sorted.
func List() []string {
	entries, err := topics.ReadDir(".")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == indexFile {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}
