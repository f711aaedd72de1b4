// Package presets holds the named style registry consumed by category
// builders. Embedded YAML is the source of truth for defaults; an optional
// user file merges on top and can be hot-reloaded.
//
// The registry is an explicit object passed by reference into each builder
// rather than package-level mutable state, so tests can construct isolated
// registries.
package presets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var embeddedStyles []byte

// Auto is the sentinel preset id meaning "no preset selected".
const Auto = "auto"

// Style is one named preset: descriptive vocabulary a category builder
// turns into blocks. Pattern styles populate Elements/Colors/Layouts/Vibes;
// product-photography styles populate Background/Lighting/Props.
type Style struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description,omitempty"`
	Elements    []string `yaml:"elements,omitempty"`
	Colors      []string `yaml:"colors,omitempty"`
	Layouts     []string `yaml:"layouts,omitempty"`
	Vibes       []string `yaml:"vibes,omitempty"`
	Background  string   `yaml:"background,omitempty"`
	Lighting    string   `yaml:"lighting,omitempty"`
	Props       []string `yaml:"props,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Registry resolves preset ids to styles. Safe for concurrent reads while
// a reload replaces the underlying map.
type Registry struct {
	mu           sync.RWMutex
	styles       map[string]Style
	overridePath string
	logger       *slog.Logger
}

// NewRegistry loads the embedded defaults, then merges the override file
// if a path is given and the file exists.
func NewRegistry(overridePath string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{overridePath: overridePath, logger: logger}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load parses embedded defaults plus the override file into a fresh map.
func (r *Registry) load() error {
	styles, err := parseStyles(embeddedStyles)
	if err != nil {
		return fmt.Errorf("embedded styles are invalid: %w", err)
	}

	if r.overridePath != "" {
		data, err := os.ReadFile(r.overridePath)
		switch {
		case os.IsNotExist(err):
			// Optional file; embedded defaults stand alone.
		case err != nil:
			return fmt.Errorf("failed to read preset overrides: %w", err)
		default:
			overrides, err := parseStyles(data)
			if err != nil {
				return fmt.Errorf("preset override file is invalid: %w", err)
			}
			for id, s := range overrides {
				styles[id] = s
			}
		}
	}

	r.mu.Lock()
	r.styles = styles
	r.mu.Unlock()
	return nil
}

func parseStyles(data []byte) (map[string]Style, error) {
	var doc struct {
		Styles []Style `yaml:"styles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	styles := make(map[string]Style, len(doc.Styles))
	for _, s := range doc.Styles {
		if s.ID == "" {
			return nil, fmt.Errorf("style %q has no id", s.Label)
		}
		styles[s.ID] = s
	}
	return styles, nil
}

// Get returns the style for an id. The Auto sentinel never resolves.
func (r *Registry) Get(id string) (*Style, bool) {
	if id == "" || id == Auto {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[id]
	if !ok {
		return nil, false
	}
	return &s, true
}

// IDs returns all style ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.styles))
	for id := range r.styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns all styles, sorted by id.
func (r *Registry) All() []Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	styles := make([]Style, 0, len(r.styles))
	for _, s := range r.styles {
		styles = append(styles, s)
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i].ID < styles[j].ID })
	return styles
}

// Watch reloads the registry whenever the override file changes. Blocks
// until ctx-style shutdown via the returned stop function. Reload errors
// are logged, never fatal: the previous styles stay in effect.
func (r *Registry) Watch() (stop func(), err error) {
	if r.overridePath == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create preset watcher: %w", err)
	}

	// Watch the directory: editors replace files on save, which drops
	// watches registered on the file itself.
	if err := watcher.Add(filepath.Dir(r.overridePath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch preset directory: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(r.overridePath) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := r.load(); err != nil {
					r.logger.Warn("preset reload failed, keeping previous styles", "error", err)
					continue
				}
				r.logger.Info("reloaded preset overrides", "path", r.overridePath)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Warn("preset watcher error", "error", err)
			}
		}
	}()

	return func() { _ = watcher.Close() }, nil
}
