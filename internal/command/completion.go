// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/meta"
)

// The scripts are rendered from the command tree so new operations and
// flags complete without edits here.

const bashCompletionScript = `# bash completion for gsctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_gsctl()
{
    local cur prev opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "{{ .Groups }} --help --version" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
{{- range .Tree }}
    {{ .Name }})
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "{{ .Leaves }}" -- "$cur") )
            return 0
        fi
        case "${COMP_WORDS[2]}" in
{{- range .Ops }}
        {{ .Name }}) opts="{{ .Flags }}" ;;
{{- end }}
        *) opts="" ;;
        esac
        ;;
{{- end }}
    completion)
        opts="bash zsh"
        ;;
    *)
        opts=""
        ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _gsctl gsctl
`

const zshCompletionScript = `#compdef gsctl

_gsctl() {
  local -a groups
  groups=(
{{- range .Tree }}
    '{{ .Name }}:{{ .Usage }}'
{{- end }}
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'gsctl commands' groups
    return
  fi

  case $words[2] in
{{- range .Tree }}
    {{ .Name }})
      if (( CURRENT == 3 )); then
        local -a ops
        ops=(
{{- range .Ops }}
          '{{ .Name }}:{{ .Usage }}'
{{- end }}
        )
        _describe -t commands '{{ .Name }} operations' ops
        return
      fi
      case $words[3] in
{{- range .Ops }}
        {{ .Name }}) compadd -- {{ .Flags }} ;;
{{- end }}
      esac
      ;;
{{- end }}
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _gsctl gsctl
`

type completionOp struct {
	Name, Usage, Flags string
}

type completionGroup struct {
	Name, Usage, Leaves string
	Ops                 []completionOp
}

// completionTree flattens the service groups of root for the templates.
func completionTree(root *cli.Command) (groups []string, tree []completionGroup) {
	for _, g := range root.Commands {
		if len(g.Commands) == 0 {
			continue
		}
		cg := completionGroup{Name: g.Name, Usage: zshEscape(g.Usage)}
		var leaves []string
		for _, op := range g.Commands {
			leaves = append(leaves, op.Name)
			var flags []string
			for _, f := range op.Flags {
				for _, n := range f.Names() {
					if len(n) == 1 {
						flags = append(flags, "-"+n)
					} else {
						flags = append(flags, "--"+n)
					}
				}
			}
			cg.Ops = append(cg.Ops, completionOp{Name: op.Name, Usage: zshEscape(op.Usage), Flags: strings.Join(flags, " ")})
		}
		cg.Leaves = strings.Join(leaves, " ")
		groups = append(groups, g.Name)
		tree = append(tree, cg)
	}
	return
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", "", ":", `\:`).Replace(s)
}

// renderCompletion returns the completion script for shell.
func renderCompletion(shell string, root *cli.Command) (string, error) {
	src := bashCompletionScript
	if shell == "zsh" {
		src = zshCompletionScript
	}
	groups, tree := completionTree(root)

	t, err := template.New(shell).Parse(src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = t.Execute(&b, map[string]any{
		"Groups": strings.Join(append(groups, "completion"), " "),
		"Tree":   tree,
	})
	return b.String(), err
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}
	if shell != "bash" && shell != "zsh" {
		fmt.Fprintln(errWriter(cmd), "usage: gsctl completion [bash|zsh]")
		return nil
	}

	script, err := renderCompletion(shell, cmd.Root())
	if err != nil {
		return fmt.Errorf("failed to render %s completion: %w", shell, err)
	}
	fmt.Fprint(outWriter(cmd), script)
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "gsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}
