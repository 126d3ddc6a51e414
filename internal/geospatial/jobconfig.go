// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geospatial

import (
	"fmt"
	"sort"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
)

// Empty marks a job config kind that takes no parameters, e.g.
// "cloudMasking:" or "cloudMasking: {}".
type Empty struct{}

// JobConfig selects the earth observation operation. Exactly one member
// may be set.
type JobConfig struct {
	BandMath              *BandMath           `yaml:"bandMath" json:"bandMath"`
	CloudMasking          *Empty              `yaml:"cloudMasking" json:"cloudMasking"`
	CloudRemoval          *CloudRemoval       `yaml:"cloudRemoval" json:"cloudRemoval"`
	GeoMosaic             *GeoMosaic          `yaml:"geoMosaic" json:"geoMosaic"`
	LandCoverSegmentation *Empty              `yaml:"landCoverSegmentation" json:"landCoverSegmentation"`
	Resampling            *Resampling         `yaml:"resampling" json:"resampling"`
	Stack                 *Stack              `yaml:"stack" json:"stack"`
	TemporalStatistics    *TemporalStatistics `yaml:"temporalStatistics" json:"temporalStatistics"`
	ZonalStatistics       *ZonalStatistics    `yaml:"zonalStatistics" json:"zonalStatistics"`
}

// BandMath computes predefined or custom spectral indices.
type BandMath struct {
	PredefinedIndices []string    `yaml:"predefinedIndices" json:"predefinedIndices"`
	CustomIndices     []Operation `yaml:"customIndices" json:"customIndices"`
}

// Operation is one custom band math equation.
type Operation struct {
	Name       string `yaml:"name" json:"name"`
	Equation   string `yaml:"equation" json:"equation"`
	OutputType string `yaml:"outputType" json:"outputType"`
}

type CloudRemoval struct {
	Algorithm          string   `yaml:"algorithm" json:"algorithm"`
	InterpolationValue string   `yaml:"interpolationValue" json:"interpolationValue"`
	TargetBands        []string `yaml:"targetBands" json:"targetBands"`
}

type GeoMosaic struct {
	Algorithm   string   `yaml:"algorithm" json:"algorithm"`
	TargetBands []string `yaml:"targetBands" json:"targetBands"`
}

// Resolution is a user defined output resolution.
type Resolution struct {
	Unit  string  `yaml:"unit" json:"unit"`
	Value float32 `yaml:"value" json:"value"`
}

type Resampling struct {
	Algorithm   string      `yaml:"algorithm" json:"algorithm"`
	Resolution  *Resolution `yaml:"resolution" json:"resolution"`
	TargetBands []string    `yaml:"targetBands" json:"targetBands"`
}

type Stack struct {
	Predefined  string      `yaml:"predefinedResolution" json:"predefinedResolution"`
	Resolution  *Resolution `yaml:"resolution" json:"resolution"`
	TargetBands []string    `yaml:"targetBands" json:"targetBands"`
}

type TemporalStatistics struct {
	Statistics  []string `yaml:"statistics" json:"statistics"`
	GroupBy     string   `yaml:"groupBy" json:"groupBy"`
	TargetBands []string `yaml:"targetBands" json:"targetBands"`
}

type ZonalStatistics struct {
	Statistics         []string `yaml:"statistics" json:"statistics"`
	ZoneS3Path         string   `yaml:"zoneS3Path" json:"zoneS3Path"`
	ZoneS3PathKmsKeyID string   `yaml:"zoneS3PathKmsKeyId" json:"zoneS3PathKmsKeyId"`
	TargetBands        []string `yaml:"targetBands" json:"targetBands"`
}

// JobConfigKinds lists the names accepted by JobConfig.Select, in the
// flag spelling.
var JobConfigKinds = []string{
	"band-math", "cloud-masking", "cloud-removal", "geo-mosaic",
	"land-cover-segmentation", "resampling", "stack",
	"temporal-statistics", "zonal-statistics",
}

// Select sets the named kind to its zero configuration unless the document
// already carries it. Used by --job-config for kinds whose parameters all
// have service defaults.
func (j *JobConfig) Select(kind string) error {
	switch strings.ToLower(strings.ReplaceAll(kind, "_", "-")) {
	case "band-math":
		if j.BandMath == nil {
			j.BandMath = &BandMath{}
		}
	case "cloud-masking":
		j.CloudMasking = &Empty{}
	case "cloud-removal":
		if j.CloudRemoval == nil {
			j.CloudRemoval = &CloudRemoval{}
		}
	case "geo-mosaic":
		if j.GeoMosaic == nil {
			j.GeoMosaic = &GeoMosaic{}
		}
	case "land-cover-segmentation":
		j.LandCoverSegmentation = &Empty{}
	case "resampling":
		if j.Resampling == nil {
			j.Resampling = &Resampling{}
		}
	case "stack":
		if j.Stack == nil {
			j.Stack = &Stack{}
		}
	case "temporal-statistics":
		if j.TemporalStatistics == nil {
			j.TemporalStatistics = &TemporalStatistics{}
		}
	case "zonal-statistics":
		if j.ZonalStatistics == nil {
			j.ZonalStatistics = &ZonalStatistics{}
		}
	default:
		return fmt.Errorf("unknown job config %q (valid: %s)", kind, strings.Join(JobConfigKinds, ", "))
	}
	return nil
}

// selected returns the names of the members that are set.
func (j *JobConfig) selected() []string {
	var names []string
	for name, set := range map[string]bool{
		"bandMath":              j.BandMath != nil,
		"cloudMasking":          j.CloudMasking != nil,
		"cloudRemoval":          j.CloudRemoval != nil,
		"geoMosaic":             j.GeoMosaic != nil,
		"landCoverSegmentation": j.LandCoverSegmentation != nil,
		"resampling":            j.Resampling != nil,
		"stack":                 j.Stack != nil,
		"temporalStatistics":    j.TemporalStatistics != nil,
		"zonalStatistics":       j.ZonalStatistics != nil,
	} {
		if set {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Build returns the union member for the single selected kind, nil when none
// is selected and an error when more than one is.
func (j *JobConfig) Build() (types.JobConfigInput, error) {
	if j == nil {
		return nil, nil
	}

	names := j.selected()
	switch len(names) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("job config selects %s; exactly one is allowed", strings.Join(names, " and "))
	}

	switch {
	case j.BandMath != nil:
		return &types.JobConfigInputMemberBandMathConfig{Value: j.BandMath.build()}, nil
	case j.CloudMasking != nil:
		return &types.JobConfigInputMemberCloudMaskingConfig{Value: types.CloudMaskingConfigInput{}}, nil
	case j.CloudRemoval != nil:
		c := j.CloudRemoval
		return &types.JobConfigInputMemberCloudRemovalConfig{Value: types.CloudRemovalConfigInput{
			AlgorithmName:      types.AlgorithmNameCloudRemoval(strings.ToUpper(c.Algorithm)),
			InterpolationValue: optString(c.InterpolationValue),
			TargetBands:        c.TargetBands,
		}}, nil
	case j.GeoMosaic != nil:
		c := j.GeoMosaic
		return &types.JobConfigInputMemberGeoMosaicConfig{Value: types.GeoMosaicConfigInput{
			AlgorithmName: types.AlgorithmNameGeoMosaic(strings.ToUpper(c.Algorithm)),
			TargetBands:   c.TargetBands,
		}}, nil
	case j.LandCoverSegmentation != nil:
		return &types.JobConfigInputMemberLandCoverSegmentationConfig{Value: types.LandCoverSegmentationConfigInput{}}, nil
	case j.Resampling != nil:
		c := j.Resampling
		var res *types.OutputResolutionResamplingInput
		if ud := c.Resolution.build(); ud != nil {
			res = &types.OutputResolutionResamplingInput{UserDefined: ud}
		}
		return &types.JobConfigInputMemberResamplingConfig{Value: types.ResamplingConfigInput{
			AlgorithmName:    types.AlgorithmNameResampling(strings.ToUpper(c.Algorithm)),
			OutputResolution: res,
			TargetBands:      c.TargetBands,
		}}, nil
	case j.Stack != nil:
		c := j.Stack
		var res *types.OutputResolutionStackInput
		if ud := c.Resolution.build(); ud != nil || c.Predefined != "" {
			res = &types.OutputResolutionStackInput{
				Predefined:  types.PredefinedResolution(strings.ToUpper(c.Predefined)),
				UserDefined: ud,
			}
		}
		return &types.JobConfigInputMemberStackConfig{Value: types.StackConfigInput{
			OutputResolution: res,
			TargetBands:      c.TargetBands,
		}}, nil
	case j.TemporalStatistics != nil:
		c := j.TemporalStatistics
		return &types.JobConfigInputMemberTemporalStatisticsConfig{Value: types.TemporalStatisticsConfigInput{
			Statistics:  enums[types.TemporalStatistics](c.Statistics),
			GroupBy:     types.GroupBy(strings.ToUpper(c.GroupBy)),
			TargetBands: c.TargetBands,
		}}, nil
	}

	c := j.ZonalStatistics
	return &types.JobConfigInputMemberZonalStatisticsConfig{Value: types.ZonalStatisticsConfigInput{
		Statistics:         enums[types.ZonalStatistics](c.Statistics),
		ZoneS3Path:         optString(c.ZoneS3Path),
		ZoneS3PathKmsKeyId: optString(c.ZoneS3PathKmsKeyID),
		TargetBands:        c.TargetBands,
	}}, nil
}

func (b *BandMath) build() types.BandMathConfigInput {
	out := types.BandMathConfigInput{PredefinedIndices: b.PredefinedIndices}
	if len(b.CustomIndices) == 0 {
		return out
	}

	ops := make([]types.Operation, 0, len(b.CustomIndices))
	for _, op := range b.CustomIndices {
		ops = append(ops, types.Operation{
			Name:       optString(op.Name),
			Equation:   optString(op.Equation),
			OutputType: types.OutputType(strings.ToUpper(op.OutputType)),
		})
	}
	out.CustomIndices = &types.CustomIndicesInput{Operations: ops}
	return out
}

func (r *Resolution) build() *types.UserDefined {
	if r == nil || (r.Unit == "" && r.Value == 0) {
		return nil
	}
	return &types.UserDefined{
		Unit:  types.Unit(strings.ToUpper(r.Unit)),
		Value: awsv2.Float32(r.Value),
	}
}
