package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// row is one label/value line of human-readable output.
type row struct {
	label string
	value string
}

// printer renders command results either as styled text or as JSON.
type printer struct {
	w    io.Writer
	json bool
}

// result prints v as JSON, or title followed by rows otherwise.
func (p printer) result(title string, v interface{}, rows ...row) error {
	if p.json {
		return p.encode(v)
	}
	fmt.Fprintln(p.w, titleStyle.Render(title))
	for _, r := range rows {
		fmt.Fprintln(p.w, labelStyle.Render(r.label)+valueStyle.Render(r.value))
	}
	return nil
}

// list prints items as a JSON array, or one block per item otherwise.
func (p printer) list(title string, v interface{}, blocks [][]row) error {
	if p.json {
		return p.encode(v)
	}
	fmt.Fprintln(p.w, titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(blocks))))
	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		for _, r := range block {
			fmt.Fprintln(p.w, labelStyle.Render(r.label)+valueStyle.Render(r.value))
		}
	}
	return nil
}

// signature reports a submitted transaction.
func (p printer) signature(what, sig string) error {
	if p.json {
		return p.encode(map[string]string{"signature": sig})
	}
	fmt.Fprintln(p.w, successStyle.Render("✔ "+what))
	fmt.Fprintln(p.w, labelStyle.Render("Signature")+valueStyle.Render(sig))
	return nil
}

func (p printer) warn(msg string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.w, warningStyle.Render(msg))
}

func (p printer) encode(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
