// Package fallback holds the canned replies used when no provider answered.
package fallback

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/extract"
	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBank []byte

type bankFile struct {
	Default string            `yaml:"default"`
	Modes   map[string]string `yaml:"modes"`
}

// Bank maps modes to canned replies. It is read-only after loading.
type Bank struct {
	generic string
	entries map[entity.ModeTag]string
}

// Default returns the bank compiled into the binary
func Default() (*Bank, error) {
	return Parse(defaultBank)
}

// Load reads a bank from a YAML file, an empty path means the built-in bank
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback bank %s: %w", path, err)
	}

	bank, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fallback bank %s: %w", path, err)
	}
	return bank, nil
}

func Parse(data []byte) (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal fallback bank: %w", err)
	}

	generic := strings.TrimSpace(file.Default)
	if generic == "" {
		return nil, errors.New("fallback bank: default reply is empty")
	}

	entries := make(map[entity.ModeTag]string, len(file.Modes))
	for key, text := range file.Modes {
		mode := entity.ModeTag(strings.ToLower(strings.TrimSpace(key)))
		if !mode.IsKnown() {
			return nil, fmt.Errorf("fallback bank: unknown mode %q", key)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("fallback bank: reply for %s is empty", mode)
		}
		entries[mode] = text
	}

	if roadmap, ok := entries[entity.ModeRoadmap]; ok {
		if err := checkRoadmap(roadmap); err != nil {
			return nil, fmt.Errorf("fallback bank: roadmap reply: %w", err)
		}
	}

	return &Bank{generic: generic, entries: entries}, nil
}

// Get returns the reply for mode or the generic one for unmapped modes
func (b *Bank) Get(mode entity.ModeTag) string {
	if text, ok := b.entries[mode]; ok {
		return text
	}
	return b.generic
}

func checkRoadmap(text string) error {
	var roadmap entity.RoadmapPayload
	if err := json.Unmarshal([]byte(text), &roadmap); err != nil {
		return fmt.Errorf("not a roadmap object: %w", err)
	}
	return extract.ValidateRoadmap(&roadmap)
}
