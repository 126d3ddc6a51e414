// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geospatial

import (
	"errors"
	"fmt"
	"strings"

	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
)

// EarthObservationJob is the --input document of start-earth-observation-job.
type EarthObservationJob struct {
	Name             string            `yaml:"name" json:"name"`
	ExecutionRoleArn string            `yaml:"executionRoleArn" json:"executionRoleArn"`
	KmsKeyID         string            `yaml:"kmsKeyId" json:"kmsKeyId"`
	ClientToken      string            `yaml:"clientToken" json:"clientToken"`
	Tags             map[string]string `yaml:"tags" json:"tags"`
	Input            EOJInput          `yaml:"input" json:"input"`
	JobConfig        JobConfig         `yaml:"jobConfig" json:"jobConfig"`
}

// EOJInput is either a raster data collection query, a previous job whose
// output is reused, or an S3 data source.
type EOJInput struct {
	PreviousJobArn string       `yaml:"previousEarthObservationJobArn" json:"previousEarthObservationJobArn"`
	Query          *Query       `yaml:"rasterDataCollectionQuery" json:"rasterDataCollectionQuery"`
	S3Data         *EOJS3Source `yaml:"s3Data" json:"s3Data"`
}

// EOJS3Source points a job at imagery already in S3.
type EOJS3Source struct {
	S3URI            string `yaml:"s3Uri" json:"s3Uri"`
	MetadataProvider string `yaml:"metadataProvider" json:"metadataProvider"`
	KmsKeyID         string `yaml:"kmsKeyId" json:"kmsKeyId"`
}

// Request builds the StartEarthObservationJob input. Missing required
// fields are left unset for the service to reject.
func (j *EarthObservationJob) Request() (*geo.StartEarthObservationJobInput, error) {
	input, err := j.Input.build()
	if err != nil {
		return nil, err
	}
	cfg, err := j.JobConfig.Build()
	if err != nil {
		return nil, err
	}

	return &geo.StartEarthObservationJobInput{
		Name:             optString(j.Name),
		ExecutionRoleArn: optString(j.ExecutionRoleArn),
		KmsKeyId:         optString(j.KmsKeyID),
		ClientToken:      optString(j.ClientToken),
		Tags:             optTags(j.Tags),
		InputConfig:      input,
		JobConfig:        cfg,
	}, nil
}

func (in *EOJInput) build() (*types.InputConfigInput, error) {
	q, err := in.Query.Input()
	if err != nil {
		return nil, err
	}

	var src types.EojDataSourceConfigInput
	if s := in.S3Data; s != nil && (s.S3URI != "" || s.MetadataProvider != "" || s.KmsKeyID != "") {
		src = &types.EojDataSourceConfigInputMemberS3Data{Value: types.S3DataInput{
			S3Uri:            optString(s.S3URI),
			MetadataProvider: types.MetadataProvider(strings.ToUpper(s.MetadataProvider)),
			KmsKeyId:         optString(s.KmsKeyID),
		}}
	}

	if in.PreviousJobArn == "" && q == nil && src == nil {
		return nil, nil
	}
	if q != nil && in.PreviousJobArn != "" {
		return nil, errors.New("job input takes either a raster data collection query or a previous job, not both")
	}

	return &types.InputConfigInput{
		PreviousEarthObservationJobArn: optString(in.PreviousJobArn),
		RasterDataCollectionQuery:      q,
		DataSourceConfig:               src,
	}, nil
}

// VectorEnrichmentJob is the --input document of start-vector-enrichment-job.
type VectorEnrichmentJob struct {
	Name             string            `yaml:"name" json:"name"`
	ExecutionRoleArn string            `yaml:"executionRoleArn" json:"executionRoleArn"`
	KmsKeyID         string            `yaml:"kmsKeyId" json:"kmsKeyId"`
	ClientToken      string            `yaml:"clientToken" json:"clientToken"`
	Tags             map[string]string `yaml:"tags" json:"tags"`
	Input            VEJInput          `yaml:"input" json:"input"`
	JobConfig        VEJConfig         `yaml:"jobConfig" json:"jobConfig"`
}

// VEJInput names the source document in S3.
type VEJInput struct {
	DocumentType string `yaml:"documentType" json:"documentType"`
	S3URI        string `yaml:"s3Uri" json:"s3Uri"`
	KmsKeyID     string `yaml:"kmsKeyId" json:"kmsKeyId"`
}

// VEJConfig selects map matching or reverse geocoding.
type VEJConfig struct {
	MapMatching      *MapMatching      `yaml:"mapMatching" json:"mapMatching"`
	ReverseGeocoding *ReverseGeocoding `yaml:"reverseGeocoding" json:"reverseGeocoding"`
}

type MapMatching struct {
	IDAttributeName        string `yaml:"idAttributeName" json:"idAttributeName"`
	TimestampAttributeName string `yaml:"timestampAttributeName" json:"timestampAttributeName"`
	XAttributeName         string `yaml:"xAttributeName" json:"xAttributeName"`
	YAttributeName         string `yaml:"yAttributeName" json:"yAttributeName"`
}

type ReverseGeocoding struct {
	XAttributeName string `yaml:"xAttributeName" json:"xAttributeName"`
	YAttributeName string `yaml:"yAttributeName" json:"yAttributeName"`
}

// Request builds the StartVectorEnrichmentJob input.
func (j *VectorEnrichmentJob) Request() (*geo.StartVectorEnrichmentJobInput, error) {
	cfg, err := j.JobConfig.Build()
	if err != nil {
		return nil, err
	}

	return &geo.StartVectorEnrichmentJobInput{
		Name:             optString(j.Name),
		ExecutionRoleArn: optString(j.ExecutionRoleArn),
		KmsKeyId:         optString(j.KmsKeyID),
		ClientToken:      optString(j.ClientToken),
		Tags:             optTags(j.Tags),
		InputConfig:      j.Input.build(),
		JobConfig:        cfg,
	}, nil
}

func (in *VEJInput) build() *types.VectorEnrichmentJobInputConfig {
	if in.DocumentType == "" && in.S3URI == "" && in.KmsKeyID == "" {
		return nil
	}

	out := &types.VectorEnrichmentJobInputConfig{
		DocumentType: types.VectorEnrichmentJobDocumentType(strings.ToUpper(in.DocumentType)),
	}
	if s3 := vejS3(in.S3URI, in.KmsKeyID); s3 != nil {
		out.DataSourceConfig = &types.VectorEnrichmentJobDataSourceConfigInputMemberS3Data{Value: *s3}
	}
	return out
}

// Build returns the union member for the selected job config, nil when none
// is set and an error when both are.
func (c *VEJConfig) Build() (types.VectorEnrichmentJobConfig, error) {
	switch {
	case c.MapMatching != nil && c.ReverseGeocoding != nil:
		return nil, errors.New("vector enrichment job config selects mapMatching and reverseGeocoding; exactly one is allowed")
	case c.MapMatching != nil:
		m := c.MapMatching
		return &types.VectorEnrichmentJobConfigMemberMapMatchingConfig{Value: types.MapMatchingConfig{
			IdAttributeName:        optString(m.IDAttributeName),
			TimestampAttributeName: optString(m.TimestampAttributeName),
			XAttributeName:         optString(m.XAttributeName),
			YAttributeName:         optString(m.YAttributeName),
		}}, nil
	case c.ReverseGeocoding != nil:
		r := c.ReverseGeocoding
		return &types.VectorEnrichmentJobConfigMemberReverseGeocodingConfig{Value: types.ReverseGeocodingConfig{
			XAttributeName: optString(r.XAttributeName),
			YAttributeName: optString(r.YAttributeName),
		}}, nil
	}
	return nil, nil
}

// Select sets the named vector enrichment kind, map-matching or
// reverse-geocoding, unless the document already carries it.
func (c *VEJConfig) Select(kind string) error {
	switch strings.ToLower(strings.ReplaceAll(kind, "_", "-")) {
	case "map-matching":
		if c.MapMatching == nil {
			c.MapMatching = &MapMatching{}
		}
	case "reverse-geocoding":
		if c.ReverseGeocoding == nil {
			c.ReverseGeocoding = &ReverseGeocoding{}
		}
	default:
		return fmt.Errorf("unknown vector enrichment job config %q (valid: map-matching, reverse-geocoding)", kind)
	}
	return nil
}

// EOJOutputConfig is the export destination of an earth observation job, or
// nil when no field is set.
func EOJOutputConfig(s3URI, kmsKeyID string) *types.OutputConfigInput {
	if s3URI == "" && kmsKeyID == "" {
		return nil
	}
	return &types.OutputConfigInput{S3Data: &types.ExportS3DataInput{
		S3Uri:    optString(s3URI),
		KmsKeyId: optString(kmsKeyID),
	}}
}

// VEJOutputConfig is the export destination of a vector enrichment job, or
// nil when no field is set.
func VEJOutputConfig(s3URI, kmsKeyID string) *types.ExportVectorEnrichmentJobOutputConfig {
	s3 := vejS3(s3URI, kmsKeyID)
	if s3 == nil {
		return nil
	}
	return &types.ExportVectorEnrichmentJobOutputConfig{S3Data: s3}
}

func vejS3(s3URI, kmsKeyID string) *types.VectorEnrichmentJobS3Data {
	if s3URI == "" && kmsKeyID == "" {
		return nil
	}
	return &types.VectorEnrichmentJobS3Data{
		S3Uri:    optString(s3URI),
		KmsKeyId: optString(kmsKeyID),
	}
}

func optTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	return tags
}
