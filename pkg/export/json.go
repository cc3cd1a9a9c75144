// Package export writes extracted decision lists to durable formats:
// JSON for programmatic consumers, Markdown for review, and SQLite for
// querying rule sets next to their metrics.
package export

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/rulelist/pkg/dataset"
	"github.com/vanderheijden86/rulelist/pkg/extraction"
	"github.com/vanderheijden86/rulelist/pkg/metrics"
	"github.com/vanderheijden86/rulelist/pkg/model"
)

// RuleRecord is one exported rule with the metrics it earned on the
// training set.
type RuleRecord struct {
	Position   int               `json:"position"`
	Antecedent string            `json:"antecedent"`
	Consequent string            `json:"consequent"`
	Length     int               `json:"length"`
	Support    float64           `json:"support"`
	Error      float64           `json:"error"`
	Confidence float64           `json:"confidence"`
	Info       map[string]string `json:"info,omitempty"`
}

// Document is the exported form of a decision list.
type Document struct {
	Rules    []RuleRecord `json:"rules"`
	Default  string       `json:"default"`
	Accuracy float64      `json:"accuracy"`
	Baseline float64      `json:"baseline"`
}

// BuildDocument measures every rule of the list against the dataset it was
// extracted from and assembles the export form.
func BuildDocument(dl model.DecisionList, ds *dataset.Dataset, labels []model.Label) Document {
	doc := Document{
		Default:  string(dl.Default),
		Accuracy: extraction.Score(dl, ds, labels),
		Baseline: extraction.BaselineScore(labels),
	}
	for i, r := range dl.Rules {
		m := extraction.Measure(r, ds, labels)
		doc.Rules = append(doc.Rules, RuleRecord{
			Position:   i + 1,
			Antecedent: r.Antecedent.String(),
			Consequent: string(r.Consequent),
			Length:     m.Length,
			Support:    m.Support,
			Error:      m.Error,
			Confidence: m.Confidence,
			Info:       r.Info,
		})
	}
	return doc
}

// WriteJSON renders the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	done := metrics.Stopwatch(metrics.Export, len(doc.Rules))
	defer done(len(doc.Rules))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding decision list: %w", err)
	}
	return nil
}

// SaveJSON writes the document to a file.
func SaveJSON(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, doc)
}
