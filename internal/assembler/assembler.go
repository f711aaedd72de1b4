// Package assembler maintains an ordered multiset of named instruction
// fragments ("blocks") and renders them into a single prompt string.
//
// Blocks render in descending priority order; equal priorities keep
// insertion order, which callers rely on to pin fixed relative sequences
// (e.g. a core-concept block directly followed by its hard rules).
package assembler

import (
	"sort"
	"strings"
)

// DefaultPriority is used when a caller does not care about ordering.
const DefaultPriority = 50

// closingDirective is appended after all blocks on every render.
const closingDirective = "Follow every instruction above and produce a single cohesive result."

// Block is a named, prioritized fragment of instruction text.
type Block struct {
	Name     string
	Content  string
	Priority int
}

// Assembler collects blocks and modules for one build pass. It is private,
// unsynchronized state: one instance per request, discarded after rendering.
type Assembler struct {
	blocks  []Block
	modules []Module
}

// New returns an empty assembler.
func New() *Assembler {
	return &Assembler{}
}

// AddBlock appends a block. Content that trims to empty is dropped.
//
// Duplicate names are NOT deduplicated: repeated AddBlock calls with the
// same name all render. Callers that want to update a value must
// RemoveBlock first, or use UpsertBlock.
func (a *Assembler) AddBlock(name, content string, priority int) {
	if strings.TrimSpace(content) == "" {
		return
	}
	a.blocks = append(a.blocks, Block{Name: name, Content: content, Priority: priority})
}

// UpsertBlock removes all blocks with the given name and adds the new one.
func (a *Assembler) UpsertBlock(name, content string, priority int) {
	a.RemoveBlock(name)
	a.AddBlock(name, content, priority)
}

// RemoveBlock deletes all blocks with the given name.
func (a *Assembler) RemoveBlock(name string) {
	kept := a.blocks[:0]
	for _, b := range a.blocks {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	a.blocks = kept
}

// ReplaceBlock mutates the first block with the given name in place.
// No-op when no block matches.
func (a *Assembler) ReplaceBlock(name, newContent string) {
	for i := range a.blocks {
		if a.blocks[i].Name == name {
			a.blocks[i].Content = newContent
			return
		}
	}
}

// InsertBefore adds a block that renders immediately before the anchor by
// giving it the anchor's priority plus one. No-op when the anchor is absent.
func (a *Assembler) InsertBefore(anchorName, name, content string) {
	if anchor, ok := a.find(anchorName); ok {
		a.AddBlock(name, content, anchor.Priority+1)
	}
}

// InsertAfter adds a block that renders immediately after the anchor by
// giving it the anchor's priority minus one. No-op when the anchor is absent.
func (a *Assembler) InsertAfter(anchorName, name, content string) {
	if anchor, ok := a.find(anchorName); ok {
		a.AddBlock(name, content, anchor.Priority-1)
	}
}

func (a *Assembler) find(name string) (Block, bool) {
	for _, b := range a.blocks {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

// AddModule appends a factory-produced module. Empty text is dropped.
func (a *Assembler) AddModule(m Module) {
	if strings.TrimSpace(m.Text) == "" {
		return
	}
	a.modules = append(a.modules, m)
}

// Clear empties both the block and module lists so composition can restart
// from scratch (e.g. switching layout rules).
func (a *Assembler) Clear() {
	a.blocks = nil
	a.modules = nil
}

// Len reports the number of blocks and modules currently held.
func (a *Assembler) Len() int {
	return len(a.blocks) + len(a.modules)
}

// Assemble merges blocks and modules, stable-sorts by descending priority,
// drops whitespace-only entries, and joins trimmed contents with blank
// lines plus the closing directive. Idempotent; no side effects.
func (a *Assembler) Assemble() string {
	merged := make([]Block, 0, len(a.blocks)+len(a.modules))
	merged = append(merged, a.blocks...)
	for _, m := range a.modules {
		merged = append(merged, Block{Name: m.Type, Content: m.Text, Priority: m.Priority})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority > merged[j].Priority
	})

	parts := make([]string, 0, len(merged)+1)
	for _, b := range merged {
		content := strings.TrimSpace(b.Content)
		if content == "" {
			continue
		}
		parts = append(parts, content)
	}
	parts = append(parts, closingDirective)

	return strings.Join(parts, "\n\n")
}
