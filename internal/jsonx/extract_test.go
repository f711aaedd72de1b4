package jsonx

import (
	"testing"
)

func TestExtract_FencedJSON(t *testing.T) {
	res := Extract("Here you go:\n```json\n{\"a\":1}\n```")
	if !res.OK {
		t.Fatalf("Extract() failed: %v", res.Err)
	}
	if res.Source != SourceCodeFence {
		t.Fatalf("source = %q, want %q", res.Source, SourceCodeFence)
	}
	obj, ok := res.Value.(map[string]any)
	if !ok {
		t.Fatalf("value is %T, want object", res.Value)
	}
	if obj["a"] != float64(1) {
		t.Fatalf("a = %v, want 1", obj["a"])
	}
}

func TestExtract_FenceWithoutLanguageTag(t *testing.T) {
	res := Extract("```\n[1, 2, 3]\n```")
	if !res.OK || res.Source != SourceCodeFence {
		t.Fatalf("plain fence should parse: ok=%v source=%q err=%v", res.OK, res.Source, res.Err)
	}
	arr, ok := res.Value.([]any)
	if !ok || len(arr) != 3 {
		t.Fatalf("value = %#v, want 3-element array", res.Value)
	}
}

func TestExtract_InvalidFenceFallsThroughToBracketScan(t *testing.T) {
	// The fence holds prose; the real payload sits outside it.
	res := Extract("```\nnot json at all\n```\nresult: {\"b\": 2}")
	if !res.OK {
		t.Fatalf("Extract() failed: %v", res.Err)
	}
	if res.Source != SourceBracketMatch {
		t.Fatalf("source = %q, want %q", res.Source, SourceBracketMatch)
	}
}

func TestExtract_BraceInsideStringLiteral(t *testing.T) {
	res := Extract(`The result is {"a": "contains a { brace"} and that is final.`)
	if !res.OK {
		t.Fatalf("string-aware scan failed: %v", res.Err)
	}
	obj := res.Value.(map[string]any)
	if obj["a"] != "contains a { brace" {
		t.Fatalf("a = %q, want the embedded brace preserved", obj["a"])
	}
}

func TestExtract_EscapedQuoteInsideString(t *testing.T) {
	res := Extract(`{"quote": "she said \"hi\" { twice }"}`)
	if !res.OK {
		t.Fatalf("escape handling failed: %v", res.Err)
	}
	obj := res.Value.(map[string]any)
	if obj["quote"] != `she said "hi" { twice }` {
		t.Fatalf("quote = %q", obj["quote"])
	}
}

func TestExtract_SkipsInvalidCandidateBeforeRealPayload(t *testing.T) {
	// First balanced span is not valid JSON; the scan must move past it.
	res := Extract(`example: {not valid} but the payload is {"ok": true}`)
	if !res.OK {
		t.Fatalf("retry past failed candidate did not happen: %v", res.Err)
	}
	obj := res.Value.(map[string]any)
	if obj["ok"] != true {
		t.Fatalf("value = %#v, want {ok:true}", res.Value)
	}
}

func TestExtract_ArrayBeforeObjectPicksFirst(t *testing.T) {
	res := Extract(`list [1,2] then {"a":1}`)
	if !res.OK {
		t.Fatalf("Extract() failed: %v", res.Err)
	}
	if _, ok := res.Value.([]any); !ok {
		t.Fatalf("first start token is the array, got %T", res.Value)
	}
}

func TestExtract_NoJSONNeverThrows(t *testing.T) {
	for _, input := range []string{
		"no json here at all",
		"",
		"   ",
		"an { unclosed brace forever",
		"]}",
	} {
		res := Extract(input)
		if res.OK {
			t.Fatalf("Extract(%q) should fail", input)
		}
		if res.Err == nil {
			t.Fatalf("Extract(%q) failure must carry an error", input)
		}
	}
}

func TestExtract_NestedObjects(t *testing.T) {
	res := Extract(`prefix {"outer": {"inner": [1, {"deep": "x"}]}} suffix`)
	if !res.OK {
		t.Fatalf("nested extraction failed: %v", res.Err)
	}
	outer := res.Value.(map[string]any)["outer"].(map[string]any)
	if _, ok := outer["inner"]; !ok {
		t.Fatalf("nested structure lost: %#v", res.Value)
	}
}

func TestTryFixJSON_TrailingCommas(t *testing.T) {
	fixed := TryFixJSON(`{"a": 1, "b": [1, 2,],}`)
	res := Extract(fixed)
	if !res.OK {
		t.Fatalf("repaired JSON should parse: %v", res.Err)
	}
}

func TestTryFixJSON_LeavesCommaInStringsAlone(t *testing.T) {
	// No trailing commas outside strings; input must come back unchanged.
	input := `{"a": "one, two"}`
	if got := TryFixJSON(input); got != input {
		t.Fatalf("TryFixJSON changed valid JSON: %q", got)
	}
}

func TestExtract_FixRetryFlow(t *testing.T) {
	// Mirrors the cascade's two-step: raw extraction fails, repair succeeds.
	raw := `{"a": 1,}`
	if res := Extract(raw); res.OK {
		t.Fatalf("raw input with trailing comma should fail first")
	}
	res := Extract(TryFixJSON(raw))
	if !res.OK {
		t.Fatalf("extraction after repair failed: %v", res.Err)
	}
}
