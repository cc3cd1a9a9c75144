package model

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Forest JSON interchange. Trees trained elsewhere are shipped as nested
// split/leaf documents:
//
//	{"trees": [
//	  {"feature": 0, "threshold": 1.5,
//	   "left":  {"label": "A"},
//	   "right": {"label": "B"}}
//	]}
//
// A node is a leaf when "label" is present, a split when "feature" and
// "threshold" are. Splits test feature <= threshold on the left branch.

type jsonNode struct {
	Label     *string   `json:"label,omitempty"`
	Feature   *int      `json:"feature,omitempty"`
	Threshold *float64  `json:"threshold,omitempty"`
	Left      *jsonNode `json:"left,omitempty"`
	Right     *jsonNode `json:"right,omitempty"`
}

type jsonForest struct {
	Trees []jsonNode `json:"trees"`
}

// DecodeForest reads a forest from its JSON interchange form.
func DecodeForest(r io.Reader) (*Forest, error) {
	var doc jsonForest
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding forest: %w", err)
	}
	if len(doc.Trees) == 0 {
		return nil, fmt.Errorf("decoding forest: no trees")
	}
	f := &Forest{Trees: make([]Tree, 0, len(doc.Trees))}
	for i := range doc.Trees {
		root, err := doc.Trees[i].toNode()
		if err != nil {
			return nil, fmt.Errorf("decoding forest: tree %d: %w", i, err)
		}
		f.Trees = append(f.Trees, Tree{Root: root})
	}
	return f, nil
}

// EncodeForest writes the forest in its JSON interchange form.
func EncodeForest(w io.Writer, f *Forest) error {
	doc := jsonForest{Trees: make([]jsonNode, 0, len(f.Trees))}
	for _, t := range f.Trees {
		n, err := fromNode(t.Root)
		if err != nil {
			return fmt.Errorf("encoding forest: %w", err)
		}
		doc.Trees = append(doc.Trees, n)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (n *jsonNode) toNode() (Node, error) {
	if n.Label != nil {
		return Leaf{Label: Label(*n.Label)}, nil
	}
	if n.Feature == nil || n.Threshold == nil {
		return nil, fmt.Errorf("node is neither leaf nor split")
	}
	if n.Left == nil || n.Right == nil {
		return nil, fmt.Errorf("split on feature %d is missing a branch", *n.Feature)
	}
	left, err := n.Left.toNode()
	if err != nil {
		return nil, err
	}
	right, err := n.Right.toNode()
	if err != nil {
		return nil, err
	}
	return Split{
		Atom:  ThresholdAtom{Feature: *n.Feature, Threshold: *n.Threshold},
		Left:  left,
		Right: right,
	}, nil
}

func fromNode(n Node) (jsonNode, error) {
	switch v := n.(type) {
	case Leaf:
		label := string(v.Label)
		return jsonNode{Label: &label}, nil
	case Split:
		atom, ok := v.Atom.(ThresholdAtom)
		if !ok || atom.Above {
			return jsonNode{}, fmt.Errorf("only plain threshold splits are encodable, got %v", v.Atom)
		}
		left, err := fromNode(v.Left)
		if err != nil {
			return jsonNode{}, err
		}
		right, err := fromNode(v.Right)
		if err != nil {
			return jsonNode{}, err
		}
		feature, threshold := atom.Feature, atom.Threshold
		return jsonNode{Feature: &feature, Threshold: &threshold, Left: &left, Right: &right}, nil
	default:
		return jsonNode{}, fmt.Errorf("unknown node type %T", n)
	}
}
