// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/gsctl/internal/meta"
)

func TestRenderCompletion(t *testing.T) {
	root := NewApp(meta.Meta{})

	bash, err := renderCompletion("bash", root)
	require.NoError(t, err)
	assert.Contains(t, bash, "complete -F _gsctl gsctl")
	assert.Contains(t, bash, `"streams geo completion --help --version"`)
	assert.Contains(t, bash, "list-stream-sessions-by-account")
	assert.Contains(t, bash, "search-raster-data-collection) opts=")
	assert.Contains(t, bash, "--endpoint-url")

	zsh, err := renderCompletion("zsh", root)
	require.NoError(t, err)
	assert.Contains(t, zsh, "#compdef gsctl")
	assert.Contains(t, zsh, "'get-tile:")
	assert.Contains(t, zsh, "'streams:Amazon GameLift Streams operations'")
}

func TestCompletionCommand(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	stdout, _, err := run(t, meta.Meta{}, "completion")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#compdef gsctl")

	stdout, _, err = run(t, meta.Meta{}, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "complete -F _gsctl gsctl")

	t.Setenv("SHELL", "")
	stdout, stderr, err := run(t, meta.Meta{}, "completion")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "usage: gsctl completion [bash|zsh]")
}

func TestCommandTree(t *testing.T) {
	root := NewApp(meta.Meta{})
	counts := map[string]int{}
	for _, group := range root.Commands {
		counts[group.Name] = len(group.Commands)
	}
	assert.Equal(t, 25, counts["streams"])
	assert.Equal(t, 23, counts["geo"])
}
