// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/waiter"
)

var schemaFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "schema",
	Usage:       "list the attribute paths of the response and exit",
	HideDefault: true,
}

// NewGlobalFlags returns the output flags shared by every operation.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Value:   "text",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GSCTL_OUTPUT")),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "cell padding of text output",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewAWSFlags returns the connection flags. Values come from the command
// line, then GSCTL_ env vars, then the config file at cfgPath, first under
// the ns key and then at the top level.
func NewAWSFlags(ns string, cfgPath string) []cli.Flag {
	region := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region. Defaults to the SDK chain",
		Sources: cli.NewValueSourceChain(cli.EnvVar("GSCTL_REGION")),
	}
	profile := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile. Defaults to the SDK chain",
		Sources: cli.NewValueSourceChain(cli.EnvVar("GSCTL_PROFILE")),
	}
	endpoint := &cli.StringFlag{
		Name:    "endpoint-url",
		Usage:   "override the service endpoint",
		Sources: cli.NewValueSourceChain(cli.EnvVar("GSCTL_ENDPOINT_URL")),
	}
	attempts := &cli.IntFlag{
		Name:    "max-attempts",
		Usage:   "maximum attempts of the SDK retryer, 0 keeps its default",
		Sources: cli.NewValueSourceChain(cli.EnvVar("GSCTL_MAX_ATTEMPTS")),
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}

	if cfgPath != "" {
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, region)
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, profile)
		NameSpacedValueChainFlagFromConfigFile(ns, cfgPath, endpoint)
		appendConfigSources(&attempts.Sources, ns, cfgPath, attempts.Name)
	}

	return []cli.Flag{region, profile, endpoint, attempts}
}

// NewWaitFlags returns the polling flags of the wait commands and of
// operations that take --wait.
func NewWaitFlags(withWait bool) []cli.Flag {
	def := waiter.DefaultConfig()
	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:  "wait-timeout",
			Usage: "give up waiting after this long",
			Value: def.Timeout,
		},
		&cli.DurationFlag{
			Name:  "wait-interval",
			Usage: "initial polling interval",
			Value: def.Interval,
		},
	}
	if withWait {
		flags = append(flags, &cli.BoolFlag{
			Name:  "wait",
			Usage: "wait until the resource settles",
		})
	}
	return flags
}

// NewPagingFlags returns the page size and result cap of list commands.
func NewPagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "results requested per page, 0 lets the service decide",
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.IntFlag{
			Name:  "max-items",
			Usage: "stop paging after this many results, 0 for all",
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}
}

func stringFlag(name, usage string, aliases ...string) *cli.StringFlag {
	return &cli.StringFlag{Name: name, Usage: usage, Aliases: aliases}
}

func sliceFlag(name, usage string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{Name: name, Usage: usage}
}

func tagsFlag() *cli.StringMapFlag {
	return &cli.StringMapFlag{
		Name:  "tags",
		Usage: "resource tags as key=value, repeatable",
	}
}

func clientTokenFlag() *cli.StringFlag {
	return stringFlag("client-token", "idempotency token")
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	appendConfigSources(&flag.Sources, ns, path, flag.Name)
	return flag
}

func appendConfigSources(chain *cli.ValueSourceChain, ns, path, name string) {
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}

// waitConfig reads the polling flags over the default cadence.
func waitConfig(cmd *cli.Command) waiter.Config {
	cfg := waiter.DefaultConfig()
	if d := cmd.Duration("wait-timeout"); d > 0 {
		cfg.Timeout = d
	}
	if d := cmd.Duration("wait-interval"); d > 0 {
		cfg.Interval = d
		if cfg.MaxInterval < d {
			cfg.MaxInterval = d
		}
	}
	return cfg
}

func identifierFlag(usage string) *cli.StringFlag {
	return stringFlag("identifier", usage, "id")
}

// FlagShape says how a flag consumes command line arguments.
type FlagShape int

const (
	// FlagValue takes the next argument as its value. The last one wins.
	FlagValue FlagShape = iota
	// FlagSwitch is a boolean and never takes the next argument.
	FlagSwitch
	// FlagRepeatable keeps every occurrence, slice and map flags.
	FlagRepeatable
)

// FlagSpec describes one flag of the command tree.
type FlagSpec struct {
	Name  string
	Shape FlagShape
}

// LookupFlags maps every name and alias of the flags visible along path,
// starting at root, to the flag's first name and shape.
func LookupFlags(root *cli.Command, path ...string) map[string]FlagSpec {
	specs := map[string]FlagSpec{}
	add := func(c *cli.Command) {
		for _, f := range c.Flags {
			names := f.Names()
			if len(names) == 0 {
				continue
			}
			spec := FlagSpec{Name: names[0], Shape: shapeOf(f)}
			for _, n := range names {
				specs[n] = spec
			}
		}
	}

	cmd := root
	add(cmd)
	for _, name := range path {
		if cmd = cmd.Command(name); cmd == nil {
			break
		}
		add(cmd)
	}
	return specs
}

func shapeOf(f cli.Flag) FlagShape {
	if _, ok := f.(*cli.BoolFlag); ok {
		return FlagSwitch
	}
	if mv, ok := f.(cli.DocGenerationMultiValueFlag); ok && mv.IsMultiValueFlag() {
		return FlagRepeatable
	}
	return FlagValue
}
