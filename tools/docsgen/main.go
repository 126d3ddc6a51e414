// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes a markdown page and a man page for every gsctl operation.
// Flags and usage come from the command tree. Examples and notes come from
// docs/templates/gsctl.yaml when it exists.
//
//	go run ./tools/docsgen docs
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/gsctl/internal/command"
	"github.com/tfctl/gsctl/internal/meta"
)

type Config struct {
	Operations map[string]Extras `yaml:"operations"`
}

// Extras is the hand written part of a page, keyed by "<service>-<operation>".
type Extras struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Extras
	ID      string
	IDUpper string
	Service string
	Name    string
	Short   string
	Usage   string
	Flags   []Flag
	Date    string
	Version string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const markdownTemplate = `# gsctl {{ .Service }} {{ .Name }}

{{ .Short }}

## Usage

` + "```" + `
{{ .Usage }}
` + "```" + `
{{- with .Description }}

{{ . }}
{{- end }}

## Flags

| Flag | Description | Default |
|---|---|---|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{- end }}
{{- with .Examples }}

## Examples
{{ range . }}
{{ .Description }}

` + "```" + `
{{ .Command }}
` + "```" + `
{{ end }}
{{- end }}
{{- with .Notes }}

## Notes
{{ range . }}
- {{ . }}
{{- end }}
{{- end }}

_gsctl {{ .Version }}, {{ .Date }}_
`

const manTemplate = `.TH "GSCTL-{{ .IDUpper }}" "1" "{{ .Date }}" "gsctl {{ .Version }}" "gsctl manual"
.SH NAME
gsctl-{{ .ID }} \- {{ .Short }}
.SH SYNOPSIS
.B {{ .Usage }}
{{- with .Description }}
.SH DESCRIPTION
{{ . }}
{{- end }}
.SH OPTIONS
{{- range .Flags }}
.TP
.B {{ .Syntax }}
{{ .Description }}{{ with .Default }} (default: {{ . }}){{ end }}
{{- end }}
{{- with .Examples }}
.SH EXAMPLES
{{- range . }}
.PP
{{ .Description }}
.PP
.nf
{{ .Command }}
.fi
{{- end }}
{{- end }}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	var config Config
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "gsctl.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			panic(err)
		}
	}

	types := []Outputs{
		{Template: markdownTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "gsctl-", Suffix: ".1"},
	}

	date := time.Now().Format("January 2, 2006")
	version := getVersion()

	root := command.NewApp(meta.Meta{Context: context.Background()})
	for _, group := range root.Commands {
		for _, op := range group.Commands {
			id := group.Name + "-" + op.Name
			data := TemplateData{
				Extras:  config.Operations[id],
				ID:      id,
				IDUpper: strings.ToUpper(id),
				Service: group.Name,
				Name:    op.Name,
				Short:   op.Usage,
				Usage:   usageLine(group.Name, op),
				Flags:   flagsOf(op),
				Date:    date,
				Version: version,
			}

			for _, t := range types {
				if err := os.MkdirAll(t.Folder, 0755); err != nil {
					panic(err)
				}
				path := filepath.Join(t.Folder, t.Prefix+id+t.Suffix)
				fmt.Println("Generating", path)
				if err := render(path, t.Template, data); err != nil {
					panic(err)
				}
			}
		}
	}
}

func render(path, src string, data TemplateData) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(src)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return tmpl.Execute(file, data)
}

func usageLine(service string, op *cli.Command) string {
	if op.UsageText != "" {
		first, _, _ := strings.Cut(op.UsageText, "\n")
		return first
	}
	return fmt.Sprintf("gsctl %s %s [flags]", service, op.Name)
}

// flagsOf describes the flags of op, sorted by name.
func flagsOf(op *cli.Command) []Flag {
	var flags []Flag
	for _, f := range op.Flags {
		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if d, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = d.GetUsage()
			if d.TakesValue() {
				flag.Default = d.GetValue()
			}
		}
		flags = append(flags, flag)
	}

	sort.Slice(flags, func(i, j int) bool {
		return flags[i].ID < flags[j].ID
	})
	return flags
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
