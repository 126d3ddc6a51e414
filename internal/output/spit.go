// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/gsctl/internal/attrs"
	"github.com/tfctl/gsctl/internal/config"
	"github.com/tfctl/gsctl/internal/filters"
)

// Options carries the output flags of a command.
type Options struct {
	Format  string // text, json, yaml or raw
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Local   bool
	Padding int
	Header  string
	Footer  string
}

// OptionsFrom reads the common output flags, and the header and footer
// metadata, from cmd.
func OptionsFrom(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Local:   cmd.Bool("local"),
		Padding: int(cmd.Int("padding")),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}
	return opts
}

// InterfaceToString converts a decoded JSON value to display text. A custom
// empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	empty := ""
	if len(emptyValue) > 0 {
		empty = emptyValue[0]
	}
	if value == nil || reflect.ValueOf(value).IsZero() {
		return empty
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

// SliceDiceSpit filters, transforms, sorts and renders a JSON document. The
// dataset is the parent element of raw, or raw itself when parent is "". A
// single object is treated as a one-row dataset. postProcess, when given,
// runs on the rows before text rendering.
func SliceDiceSpit(raw []byte,
	al attrs.AttrList,
	opts Options,
	parent string,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			_, err = w.Write(raw)
			return err
		}
		pretty.WriteByte('\n')
		_, err := w.Write(pretty.Bytes())
		return err
	}

	dataset := gjson.ParseBytes(raw)
	if parent != "" {
		dataset = dataset.Get(parent)
	}
	if dataset.IsObject() {
		dataset = gjson.Parse("[" + dataset.Raw + "]")
	}

	rows := filters.FilterDataset(dataset, al, opts.Filter)

	if opts.Local {
		for i := range al {
			al[i].TransformSpec += "t"
		}
	}
	for _, row := range rows {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		b, err := marshalOrderedJSON(rows, al.Visible())
		if err != nil {
			return fmt.Errorf("failed to marshal json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(orderedRows(rows, al.Visible()))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml output: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	if postProcess != nil {
		if err := postProcess(rows); err != nil {
			log.Errorf("post process: %v", err)
		}
	}
	TableWriter(rows, al, opts, w)
	return nil
}

// orderedRows keeps the --attrs column order, which a plain map loses.
func orderedRows(rows []map[string]interface{}, visible attrs.AttrList) []yaml.MapSlice {
	out := make([]yaml.MapSlice, 0, len(rows))
	for _, row := range rows {
		ms := make(yaml.MapSlice, 0, len(visible))
		for _, attr := range visible {
			ms = append(ms, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
		}
		out = append(out, ms)
	}
	return out
}

func marshalOrderedJSON(rows []map[string]interface{}, visible attrs.AttrList) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, attr := range visible {
			if j > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(attr.OutputKey)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(row[attr.OutputKey])
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// TableWriter renders rows as an aligned borderless table honoring color,
// titles and padding.
func TableWriter(rows []map[string]interface{}, al attrs.AttrList, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)
	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	visible := al.Visible()
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(visible))
		for _, attr := range visible {
			line = append(line, InterfaceToString(row[attr.OutputKey], "-"))
		}
		cells = append(cells, line)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(visible))
		for _, attr := range visible {
			headers = append(headers, attr.OutputKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns the table colors from config, falling back to defaults
// suited to the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(key, light, dark string) color.Color {
		if c, err := config.GetString(key); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve(key+".title", "#b08800", "#f6be00")
	even = resolve(key+".even", "#333333", "#ffffff")
	odd = resolve(key+".odd", "#0088a0", "#00c8f0")
	return
}
