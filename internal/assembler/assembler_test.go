package assembler

import (
	"strings"
	"testing"
)

func TestAssemble_PriorityOrdering(t *testing.T) {
	a := New()
	// Insert out of order; render must follow priority, not insertion.
	a.AddBlock("low", "low content", 10)
	a.AddBlock("high", "high content", 90)
	a.AddBlock("mid", "mid content", 50)

	out := a.Assemble()

	hi := strings.Index(out, "high content")
	mid := strings.Index(out, "mid content")
	lo := strings.Index(out, "low content")
	if hi < 0 || mid < 0 || lo < 0 {
		t.Fatalf("missing content in output: %q", out)
	}
	if !(hi < mid && mid < lo) {
		t.Fatalf("priority order violated: high=%d mid=%d low=%d", hi, mid, lo)
	}
}

func TestAssemble_StableForEqualPriority(t *testing.T) {
	a := New()
	a.AddBlock("first", "first content", 50)
	a.AddBlock("second", "second content", 50)
	a.AddBlock("third", "third content", 50)

	out := a.Assemble()
	if !(strings.Index(out, "first content") < strings.Index(out, "second content") &&
		strings.Index(out, "second content") < strings.Index(out, "third content")) {
		t.Fatalf("equal-priority blocks lost insertion order: %q", out)
	}
}

func TestAddBlock_EmptyContentDropped(t *testing.T) {
	a := New()
	a.AddBlock("empty", "   ", 50)
	a.AddBlock("blank", "", 50)

	if a.Len() != 0 {
		t.Fatalf("whitespace-only blocks should be dropped, got %d blocks", a.Len())
	}
	if out := a.Assemble(); strings.Contains(out, "empty") {
		t.Fatalf("empty block leaked into output: %q", out)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	a := New()
	a.AddBlock("a", "alpha", 60)
	a.AddBlock("b", "beta", 40)

	first := a.Assemble()
	second := a.Assemble()
	if first != second {
		t.Fatalf("Assemble() not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestAddBlock_DuplicateNamesBothRender(t *testing.T) {
	a := New()
	a.AddBlock("diag", "first diagnostic", 50)
	a.AddBlock("diag", "second diagnostic", 50)

	out := a.Assemble()
	if !strings.Contains(out, "first diagnostic") || !strings.Contains(out, "second diagnostic") {
		t.Fatalf("duplicate-name blocks should both render: %q", out)
	}
}

func TestRemoveBlock_DeletesAllMatches(t *testing.T) {
	a := New()
	a.AddBlock("diag", "first", 50)
	a.AddBlock("diag", "second", 50)
	a.AddBlock("keep", "kept", 50)

	a.RemoveBlock("diag")

	out := a.Assemble()
	if strings.Contains(out, "first") || strings.Contains(out, "second") {
		t.Fatalf("RemoveBlock should delete all matches: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("RemoveBlock deleted an unrelated block: %q", out)
	}
}

func TestReplaceBlock_FirstMatchOnly(t *testing.T) {
	a := New()
	a.AddBlock("diag", "original one", 50)
	a.AddBlock("diag", "original two", 50)

	a.ReplaceBlock("diag", "replaced")

	out := a.Assemble()
	if !strings.Contains(out, "replaced") {
		t.Fatalf("first match not replaced: %q", out)
	}
	if strings.Contains(out, "original one") {
		t.Fatalf("first match content should be gone: %q", out)
	}
	if !strings.Contains(out, "original two") {
		t.Fatalf("second match must be untouched: %q", out)
	}
}

func TestReplaceBlock_MissingNameIsNoop(t *testing.T) {
	a := New()
	a.AddBlock("keep", "kept", 50)
	a.ReplaceBlock("ghost", "should not appear")

	if out := a.Assemble(); strings.Contains(out, "should not appear") {
		t.Fatalf("replace on missing name must be a no-op: %q", out)
	}
}

func TestUpsertBlock_ReplacesAllDuplicates(t *testing.T) {
	a := New()
	a.AddBlock("palette", "old palette", 65)
	a.AddBlock("palette", "older palette", 65)

	a.UpsertBlock("palette", "new palette", 65)

	out := a.Assemble()
	if strings.Contains(out, "old palette") || strings.Contains(out, "older palette") {
		t.Fatalf("upsert should remove every previous instance: %q", out)
	}
	if !strings.Contains(out, "new palette") {
		t.Fatalf("upsert should add the new content: %q", out)
	}
}

func TestInsertAfter_AdjacentToAnchor(t *testing.T) {
	a := New()
	a.AddBlock("top", "top content", 90)
	a.AddBlock("core", "core content", 70)
	a.AddBlock("bottom", "bottom content", 10)

	a.InsertAfter("core", "addon", "addon content")

	out := a.Assemble()
	coreIdx := strings.Index(out, "core content")
	addonIdx := strings.Index(out, "addon content")
	bottomIdx := strings.Index(out, "bottom content")
	if !(coreIdx < addonIdx && addonIdx < bottomIdx) {
		t.Fatalf("addon should sit directly after core: core=%d addon=%d bottom=%d",
			coreIdx, addonIdx, bottomIdx)
	}
}

func TestInsertBefore_AdjacentToAnchor(t *testing.T) {
	a := New()
	a.AddBlock("top", "top content", 90)
	a.AddBlock("core", "core content", 70)

	a.InsertBefore("core", "preface", "preface content")

	out := a.Assemble()
	topIdx := strings.Index(out, "top content")
	prefaceIdx := strings.Index(out, "preface content")
	coreIdx := strings.Index(out, "core content")
	if !(topIdx < prefaceIdx && prefaceIdx < coreIdx) {
		t.Fatalf("preface should sit directly before core: top=%d preface=%d core=%d",
			topIdx, prefaceIdx, coreIdx)
	}
}

func TestInsert_MissingAnchorIsNoop(t *testing.T) {
	a := New()
	a.AddBlock("core", "core content", 70)

	a.InsertAfter("ghost", "addon", "addon content")
	a.InsertBefore("ghost", "preface", "preface content")

	out := a.Assemble()
	if strings.Contains(out, "addon content") || strings.Contains(out, "preface content") {
		t.Fatalf("inserts on missing anchors must be no-ops: %q", out)
	}
}

func TestClear_EmptiesBlocksAndModules(t *testing.T) {
	a := New()
	a.AddBlock("core", "core content", 70)
	a.AddModule(QualityModule("high"))

	a.Clear()

	if a.Len() != 0 {
		t.Fatalf("Clear should empty both lists, got %d entries", a.Len())
	}
}

func TestAssemble_MergesModulesWithBlocks(t *testing.T) {
	a := New()
	a.AddBlock("subject", "a fox motif", 75)
	a.AddModule(QualityModule("high"))
	a.AddModule(ModelDescriptionModule("tall model, studio pose"))

	out := a.Assemble()
	subjIdx := strings.Index(out, "a fox motif")
	modelIdx := strings.Index(out, "Model / display form")
	qualIdx := strings.Index(out, "Output quality")
	if subjIdx < 0 || modelIdx < 0 || qualIdx < 0 {
		t.Fatalf("modules missing from output: %q", out)
	}
	// subject (75) > model_description (60) > quality_settings (20)
	if !(subjIdx < modelIdx && modelIdx < qualIdx) {
		t.Fatalf("module priorities out of order: subject=%d model=%d quality=%d",
			subjIdx, modelIdx, qualIdx)
	}
}

func TestAssemble_EmptyModuleDropped(t *testing.T) {
	a := New()
	a.AddModule(ModelDescriptionModule(""))
	a.AddModule(NegativeConstraintsModule(nil))

	if a.Len() != 0 {
		t.Fatalf("empty modules should be dropped at add time, got %d", a.Len())
	}
}

func TestAssemble_AppendsClosingDirective(t *testing.T) {
	a := New()
	a.AddBlock("core", "core content", 70)

	out := a.Assemble()
	if !strings.HasSuffix(out, closingDirective) {
		t.Fatalf("output must end with the closing directive: %q", out)
	}
}
