// Package prompts embeds the LLM prompt templates and renders their
// placeholders. Templates live in JSON files next to this package so prompt
// wording can change without touching generation code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]string
	loadErr  error
)

// loadAll reads every embedded prompt file into a flat map keyed
// "filename#key". The embedded FS is immutable, so one pass at first use
// is enough.
func loadAll() {
	loaded = make(map[string]string)

	entries, err := files.ReadDir(".")
	if err != nil {
		loadErr = fmt.Errorf("failed to read embedded prompts: %w", err)
		return
	}

	for _, entry := range entries {
		data, err := files.ReadFile(entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
			return
		}

		var templates map[string]string
		if err := json.Unmarshal(data, &templates); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
			return
		}

		for key, template := range templates {
			loaded[entry.Name()+"#"+key] = template
		}
	}
}

// Get returns the template stored under key in the named file.
func Get(filename, key string) (string, error) {
	loadOnce.Do(loadAll)
	if loadErr != nil {
		return "", loadErr
	}

	template, ok := loaded[filename+"#"+key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates required at startup; a missing one is a
// packaging error, not a runtime condition.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching entry are left untouched.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
