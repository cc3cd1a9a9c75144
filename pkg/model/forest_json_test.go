package model

import (
	"bytes"
	"strings"
	"testing"
)

const forestDoc = `{
  "trees": [
    {"feature": 0, "threshold": 0.5,
     "left": {"label": "a"},
     "right": {"feature": 1, "threshold": 1.5,
               "left": {"label": "b"},
               "right": {"label": "c"}}}
  ]
}`

func TestDecodeForest(t *testing.T) {
	f, err := DecodeForest(strings.NewReader(forestDoc))
	if err != nil {
		t.Fatalf("DecodeForest: %v", err)
	}
	if f.NumTrees() != 1 {
		t.Fatalf("NumTrees = %d, want 1", f.NumTrees())
	}

	root, ok := f.Trees[0].Root.(Split)
	if !ok {
		t.Fatalf("root is %T, want Split", f.Trees[0].Root)
	}
	if !root.Atom.Equal(ThresholdAtom{Feature: 0, Threshold: 0.5}) {
		t.Errorf("root atom = %v", root.Atom)
	}
	if leaf, ok := root.Left.(Leaf); !ok || leaf.Label != "a" {
		t.Errorf("left branch = %v", root.Left)
	}
	right, ok := root.Right.(Split)
	if !ok {
		t.Fatalf("right branch is %T, want Split", root.Right)
	}
	if leaf, ok := right.Right.(Leaf); !ok || leaf.Label != "c" {
		t.Errorf("right-right leaf = %v", right.Right)
	}
}

func TestDecodeForest_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty forest", `{"trees": []}`},
		{"node neither leaf nor split", `{"trees": [{"left": {"label": "a"}}]}`},
		{"split missing branch", `{"trees": [{"feature": 0, "threshold": 1, "left": {"label": "a"}}]}`},
		{"garbage", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeForest(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestForestJSONRoundTrip(t *testing.T) {
	f, err := DecodeForest(strings.NewReader(forestDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeForest(&buf, f); err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := DecodeForest(&buf)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if again.NumTrees() != f.NumTrees() {
		t.Errorf("round trip changed tree count: %d -> %d", f.NumTrees(), again.NumTrees())
	}
}
