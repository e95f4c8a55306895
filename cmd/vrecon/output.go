package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// journalDoc is the json and yaml shape of one pass.
type journalDoc struct {
	Entries int              `json:"entries" yaml:"entries"`
	Renders int              `json:"renders" yaml:"renders"`
	Records []journal.Record `json:"records" yaml:"records"`
}

var (
	insertColor = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	moveColor   = color.New(color.FgCyan)
	updateColor = color.New(color.FgYellow)
	dimColor    = color.New(color.Faint)
)

func opColor(op string) *color.Color {
	switch op {
	case journal.OpInsert.String():
		return insertColor
	case journal.OpRemove.String(), journal.OpTruncate.String():
		return removeColor
	case journal.OpMove.String():
		return moveColor
	default:
		return updateColor
	}
}

// printJournal writes the records of one pass in the configured format.
func printJournal(w io.Writer, format string, stats reconcile.Stats) error {
	doc := journalDoc{Entries: stats.Entries, Renders: stats.Renders, Records: stats.Records}

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.FormatYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return errors.New("E403").Wrap(err)
		}
		_, err = w.Write(b)
		return err
	default:
		printText(w, doc)
		return nil
	}
}

func printText(w io.Writer, doc journalDoc) {
	for _, r := range doc.Records {
		var b strings.Builder
		b.WriteString(opColor(r.Op).Sprintf("%-8s", r.Op))
		if r.Parent != "" {
			fmt.Fprintf(&b, " parent=%s", r.Parent)
		}
		if r.Node != "" {
			fmt.Fprintf(&b, " node=%s", r.Node)
		}
		if r.Before != "" {
			fmt.Fprintf(&b, " before=%s", r.Before)
		}
		if r.Op == journal.OpSetText.String() {
			fmt.Fprintf(&b, " text=%q", r.Text)
		}
		for _, attr := range r.Attrs {
			if attr.Removed {
				fmt.Fprintf(&b, " -%s", attr.Key)
			} else {
				fmt.Fprintf(&b, " %s=%q", attr.Key, attr.Value)
			}
		}
		if r.Cleanup {
			b.WriteString(" cleanup")
		}
		fmt.Fprintln(w, b.String())
	}

	if doc.Entries == 0 {
		fmt.Fprintln(w, dimColor.Sprint("no changes"))
		return
	}
	fmt.Fprintln(w, dimColor.Sprintf("%d entries, %d renders", doc.Entries, doc.Renders))
}

// htmlDiff returns a line diff of two rendered documents, one tag per line.
func htmlDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(layout(before), layout(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix, paint := "  ", dimColor
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", insertColor
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", removeColor
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out.WriteString(paint.Sprint(prefix + line))
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func layout(html string) string {
	if html == "" {
		return ""
	}
	return strings.ReplaceAll(html, "><", ">\n<") + "\n"
}
