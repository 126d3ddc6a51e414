// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/meta"
)

const geoNS = "geo"

var (
	eojAttrs        = []string{"Arn", "Name", "Status", "CreationTime:created", "DurationInSeconds:duration"}
	vejAttrs        = []string{"Arn", "Name", "Status", "Type", "CreationTime:created"}
	exportAttrs     = []string{"Arn", "ExportStatus:export", "CreationTime:created"}
	collectionAttrs = []string{"Name", "Type", "Arn"}
	itemAttrs       = []string{"Id", "DateTime:date", "Properties.EoCloudCover:cloud", "Properties.Platform:platform"}
)

var jobStatuses = []string{"INITIALIZING", "IN_PROGRESS", "STOPPING", "COMPLETED", "STOPPED", "FAILED", "DELETING", "DELETED"}

// geoCommandBuilder returns the SageMaker Geospatial command group.
func geoCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  geoNS,
		Usage: "Amazon SageMaker geospatial operations",
		Commands: []*cli.Command{
			deleteEarthObservationJobCommand(m),
			deleteVectorEnrichmentJobCommand(m),
			diffEarthObservationJobsCommand(m),
			exportEarthObservationJobCommand(m),
			exportVectorEnrichmentJobCommand(m),
			getEarthObservationJobCommand(m),
			getRasterDataCollectionCommand(m),
			getTileCommand(m),
			getVectorEnrichmentJobCommand(m),
			listEarthObservationJobsCommand(m),
			listExportedObjectsCommand(m),
			listRasterDataCollectionsCommand(m),
			geoListTagsForResourceCommand(m),
			listVectorEnrichmentJobsCommand(m),
			searchRasterDataCollectionCommand(m),
			startEarthObservationJobCommand(m),
			startVectorEnrichmentJobCommand(m),
			stopEarthObservationJobCommand(m),
			stopVectorEnrichmentJobCommand(m),
			geoTagResourceCommand(m),
			geoUntagResourceCommand(m),
			waitEarthObservationJobCommand(m),
			waitVectorEnrichmentJobCommand(m),
		},
	}
}

func arnFlag(usage string) *cli.StringFlag {
	return stringFlag("arn", usage)
}

func inputFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:      "input",
		Aliases:   []string{"i"},
		Usage:     usage + " (YAML or JSON, - for stdin). Flags override its fields",
		TakesFile: true,
	}
}

func jobListFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "status-equals",
			Usage: "only jobs in this status. Also _status=STATUS in --filter",
			Validator: func(value string) error {
				return FlagValidators(value, EnumValidator(jobStatuses...))
			},
		},
		stringFlag("sort-by", "service side sort attribute, e.g. CreationTime"),
		&cli.StringFlag{
			Name:  "sort-order",
			Usage: "ASCENDING or DESCENDING",
			Validator: func(value string) error {
				return FlagValidators(value, EnumValidator("ASCENDING", "DESCENDING"))
			},
		},
	}
}

// setString overwrites *dst with the flag value when the flag was given.
func setString(dst *string, cmd *cli.Command, name string) {
	if cmd.IsSet(name) {
		*dst = cmd.String(name)
	}
}

// mergeTags adds the --tags values over the document tags.
func mergeTags(dst map[string]string, cmd *cli.Command) map[string]string {
	for k, v := range cmd.StringMap("tags") {
		if dst == nil {
			dst = map[string]string{}
		}
		dst[k] = v
	}
	return dst
}
