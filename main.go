// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/tfctl/gsctl/internal/cacheutil"
	"github.com/tfctl/gsctl/internal/command"
	"github.com/tfctl/gsctl/internal/config"
	"github.com/tfctl/gsctl/internal/log"
	"github.com/tfctl/gsctl/internal/meta"
	"github.com/tfctl/gsctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args, leafFlags(args))
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.Debugf("cache purge err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(ctx, args)
}

// processSetOnly expands an @set argument into the argument list stored in
// the config file under <service>.<operation>.<set> or <service>.<set>. With
// no @set argument, the "defaults" set is inserted right after the
// operation so that explicit flags, which come later, win.
func processSetOnly(args []string) []string {
	// args[0] binary, args[1] service, args[2] operation.
	const idx = 3
	if len(args) < idx {
		return args
	}

	set := "defaults"
	at := idx
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			at = idx + i
			// Remove the @set argument.
			args = append(args[:at:at], args[at+1:]...)
			break
		}
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + args[2] + "." + set)
	if err != nil {
		setArgs, _ = config.GetStringSlice(args[1] + "." + set)
	}

	return injectSet(args, setArgs, at)
}

// injectSet splits each entry on whitespace and inserts the words at
// position at.
func injectSet(args []string, entries []string, at int) []string {
	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}
	if len(expanded) == 0 {
		return args
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:at]...)
	out = append(out, expanded...)
	return append(out, args[at:]...)
}

// leafFlags describes the flags of the operation named by args[1:3].
func leafFlags(args []string) map[string]command.FlagSpec {
	if len(args) < 3 {
		return nil
	}
	return command.LookupFlags(command.NewApp(meta.Meta{}), args[1], args[2])
}

// deduplicateFlags drops earlier occurrences of a repeated value or switch
// flag, so the last one wins. Repeatable flags keep every occurrence. Flags
// missing from flags are left alone, and so are positional arguments.
func deduplicateFlags(args []string, flags map[string]command.FlagSpec) []string {
	if len(args) <= 2 {
		return args
	}

	type occurrence struct {
		name  string
		start int
		end   int // exclusive
	}

	var occ []occurrence
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			continue
		}
		if a == "--" {
			break
		}
		name, _, inline := strings.Cut(strings.TrimLeft(a, "-"), "=")
		spec, ok := flags[name]
		if !ok {
			continue
		}

		end := i + 1
		if spec.Shape != command.FlagSwitch && !inline && end < len(args) {
			end++
		}
		if spec.Shape != command.FlagRepeatable {
			occ = append(occ, occurrence{name: spec.Name, start: i, end: end})
		}
		i = end - 1
	}

	last := map[string]int{}
	for i, o := range occ {
		last[o.name] = i
	}

	drop := make([]bool, len(args))
	for i, o := range occ {
		if last[o.name] != i {
			for j := o.start; j < o.end; j++ {
				drop[j] = true
			}
		}
	}

	out := make([]string, 0, len(args))
	for i, a := range args {
		if !drop[i] {
			out = append(out, a)
		}
	}
	return out
}
