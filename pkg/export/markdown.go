package export

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteMarkdown renders the document as a Markdown table of rules in
// evaluation order, followed by the default.
func WriteMarkdown(w io.Writer, doc Document) error {
	var sb strings.Builder
	sb.WriteString("# Decision list\n\n")
	sb.WriteString(fmt.Sprintf("Accuracy %.4f (baseline %.4f), %d rules.\n\n", doc.Accuracy, doc.Baseline, len(doc.Rules)))
	sb.WriteString("| # | Antecedent | Consequent | Support | Error | Length |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range doc.Rules {
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %.4f | %.4f | %d |\n",
			r.Position, escapePipes(r.Antecedent), r.Consequent, r.Support, r.Error, r.Length))
	}
	sb.WriteString(fmt.Sprintf("\nDefault: **%s**\n", doc.Default))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// SaveMarkdown writes the Markdown rendering to a file.
func SaveMarkdown(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteMarkdown(f, doc)
}

// escapePipes keeps antecedent text from breaking the table layout.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
