// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package geospatial

import (
	"context"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/gsctl/internal/waiter"
)

const sentinelDoc = `
name: ndvi
executionRoleArn: arn:aws:iam::123456789012:role/geo
tags:
  team: imagery
input:
  rasterDataCollectionQuery:
    rasterDataCollectionArn: arn:aws:sagemaker-geospatial:us-west-2:378778860802:raster-data-collection/public/nmqj48dcu3g7ayw8
    timeRange:
      start: 2023-01-01
      end: 2023-03-01T00:00:00Z
    areaOfInterest:
      polygon:
        - [[-114.5, 36.1], [-114.5, 36.2], [-114.4, 36.2], [-114.5, 36.1]]
    propertyFilters:
      logicalOperator: and
      eoCloudCover:
        lower: 0
        upper: 10
      platform:
        value: sentinel-2a
        operator: equals
jobConfig:
  bandMath:
    predefinedIndices: [NDVI]
`

func TestEarthObservationJobRequest(t *testing.T) {
	var job EarthObservationJob
	require.NoError(t, DecodeDocument([]byte(sentinelDoc), &job))

	req, err := job.Request()
	require.NoError(t, err)

	assert.Equal(t, "ndvi", awsv2.ToString(req.Name))
	assert.Equal(t, map[string]string{"team": "imagery"}, req.Tags)
	assert.Nil(t, req.KmsKeyId)
	assert.Nil(t, req.ClientToken)

	require.NotNil(t, req.InputConfig)
	assert.Nil(t, req.InputConfig.PreviousEarthObservationJobArn)
	assert.Nil(t, req.InputConfig.DataSourceConfig)

	q := req.InputConfig.RasterDataCollectionQuery
	require.NotNil(t, q)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *q.TimeRangeFilter.StartTime)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), *q.TimeRangeFilter.EndTime)

	aoi, ok := q.AreaOfInterest.(*types.AreaOfInterestMemberAreaOfInterestGeometry)
	require.True(t, ok)
	poly, ok := aoi.Value.(*types.AreaOfInterestGeometryMemberPolygonGeometry)
	require.True(t, ok)
	assert.Len(t, poly.Value.Coordinates[0], 4)

	require.NotNil(t, q.PropertyFilters)
	assert.Equal(t, types.LogicalOperator("AND"), q.PropertyFilters.LogicalOperator)
	require.Len(t, q.PropertyFilters.Properties, 2)
	cc, ok := q.PropertyFilters.Properties[0].Property.(*types.PropertyMemberEoCloudCover)
	require.True(t, ok)
	assert.Equal(t, float32(10), *cc.Value.UpperBound)
	pl, ok := q.PropertyFilters.Properties[1].Property.(*types.PropertyMemberPlatform)
	require.True(t, ok)
	assert.Equal(t, types.ComparisonOperator("EQUALS"), pl.Value.ComparisonOperator)

	bm, ok := req.JobConfig.(*types.JobConfigInputMemberBandMathConfig)
	require.True(t, ok)
	assert.Equal(t, []string{"NDVI"}, bm.Value.PredefinedIndices)
	assert.Nil(t, bm.Value.CustomIndices)
}

func TestEmptyStructuresAreNil(t *testing.T) {
	var job EarthObservationJob
	req, err := job.Request()
	require.NoError(t, err)
	assert.Nil(t, req.InputConfig)
	assert.Nil(t, req.JobConfig)
	assert.Nil(t, req.Tags)
	assert.Nil(t, req.Name)

	q := &Query{
		TimeRange:       &TimeRange{},
		AreaOfInterest:  &AreaOfInterest{},
		PropertyFilters: &PropertyFilters{EoCloudCover: &Range{}},
	}
	in, err := q.Input()
	require.NoError(t, err)
	assert.Nil(t, in)

	search, err := q.SearchInput()
	require.NoError(t, err)
	assert.Nil(t, search)

	var nilQuery *Query
	in, err = nilQuery.Input()
	require.NoError(t, err)
	assert.Nil(t, in)

	assert.Nil(t, EOJOutputConfig("", ""))
	assert.Nil(t, VEJOutputConfig("", ""))

	var vej VectorEnrichmentJob
	vreq, err := vej.Request()
	require.NoError(t, err)
	assert.Nil(t, vreq.InputConfig)
	assert.Nil(t, vreq.JobConfig)
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr string
	}{
		{
			name:    "both geometries",
			query:   Query{AreaOfInterest: &AreaOfInterest{Polygon: [][][]float64{{{1, 2}}}, MultiPolygon: [][][][]float64{{{{1, 2}}}}}},
			wantErr: "either polygon or multiPolygon",
		},
		{
			name:    "bad time",
			query:   Query{TimeRange: &TimeRange{Start: "yesterday"}},
			wantErr: "invalid time range start",
		},
		{
			name:    "end before start",
			query:   Query{TimeRange: &TimeRange{Start: "2024-02-01", End: "2024-01-01"}},
			wantErr: "is before start",
		},
		{
			name:    "operator without properties",
			query:   Query{PropertyFilters: &PropertyFilters{LogicalOperator: "AND"}},
			wantErr: "no properties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.Input()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSearchInput(t *testing.T) {
	q := &Query{
		CollectionArn:  "ignored-here",
		BandFilter:     []string{"red", "nir"},
		AreaOfInterest: &AreaOfInterest{MultiPolygon: [][][][]float64{{{{0, 0}, {0, 1}, {1, 1}, {0, 0}}}}},
	}
	in, err := q.SearchInput()
	require.NoError(t, err)
	require.NotNil(t, in)
	assert.Equal(t, []string{"red", "nir"}, in.BandFilter)
	assert.Nil(t, in.TimeRangeFilter)
	assert.Nil(t, in.PropertyFilters)

	aoi := in.AreaOfInterest.(*types.AreaOfInterestMemberAreaOfInterestGeometry)
	_, ok := aoi.Value.(*types.AreaOfInterestGeometryMemberMultiPolygonGeometry)
	assert.True(t, ok)
}

func TestJobConfigBuild(t *testing.T) {
	t.Run("more than one", func(t *testing.T) {
		jc := JobConfig{CloudMasking: &Empty{}, Stack: &Stack{}}
		_, err := jc.Build()
		assert.EqualError(t, err, "job config selects cloudMasking and stack; exactly one is allowed")
	})

	t.Run("select by flag", func(t *testing.T) {
		var jc JobConfig
		require.NoError(t, jc.Select("land-cover-segmentation"))
		got, err := jc.Build()
		require.NoError(t, err)
		assert.IsType(t, &types.JobConfigInputMemberLandCoverSegmentationConfig{}, got)
	})

	t.Run("select keeps document values", func(t *testing.T) {
		jc := JobConfig{GeoMosaic: &GeoMosaic{Algorithm: "bilinear"}}
		require.NoError(t, jc.Select("geo_mosaic"))
		got, err := jc.Build()
		require.NoError(t, err)
		gm := got.(*types.JobConfigInputMemberGeoMosaicConfig)
		assert.Equal(t, types.AlgorithmNameGeoMosaic("BILINEAR"), gm.Value.AlgorithmName)
	})

	t.Run("unknown kind", func(t *testing.T) {
		var jc JobConfig
		assert.ErrorContains(t, jc.Select("sharpen"), "unknown job config")
	})

	t.Run("resampling resolution", func(t *testing.T) {
		jc := JobConfig{Resampling: &Resampling{Resolution: &Resolution{Unit: "meters", Value: 20}}}
		got, err := jc.Build()
		require.NoError(t, err)
		rs := got.(*types.JobConfigInputMemberResamplingConfig)
		require.NotNil(t, rs.Value.OutputResolution)
		assert.Equal(t, types.Unit("METERS"), rs.Value.OutputResolution.UserDefined.Unit)
		assert.Equal(t, float32(20), *rs.Value.OutputResolution.UserDefined.Value)
	})

	t.Run("stack without resolution", func(t *testing.T) {
		jc := JobConfig{Stack: &Stack{TargetBands: []string{"red"}}}
		got, err := jc.Build()
		require.NoError(t, err)
		assert.Nil(t, got.(*types.JobConfigInputMemberStackConfig).Value.OutputResolution)
	})

	t.Run("statistics enums", func(t *testing.T) {
		jc := JobConfig{TemporalStatistics: &TemporalStatistics{Statistics: []string{"mean", "median"}, GroupBy: "yearly"}}
		got, err := jc.Build()
		require.NoError(t, err)
		ts := got.(*types.JobConfigInputMemberTemporalStatisticsConfig)
		assert.Equal(t, []types.TemporalStatistics{"MEAN", "MEDIAN"}, ts.Value.Statistics)
		assert.Equal(t, types.GroupBy("YEARLY"), ts.Value.GroupBy)
	})

	t.Run("custom indices", func(t *testing.T) {
		jc := JobConfig{BandMath: &BandMath{CustomIndices: []Operation{{Name: "x", Equation: "(nir - red)", OutputType: "float32"}}}}
		got, err := jc.Build()
		require.NoError(t, err)
		bm := got.(*types.JobConfigInputMemberBandMathConfig)
		require.NotNil(t, bm.Value.CustomIndices)
		assert.Equal(t, types.OutputType("FLOAT32"), bm.Value.CustomIndices.Operations[0].OutputType)
	})
}

func TestEOJInputConflict(t *testing.T) {
	job := EarthObservationJob{Input: EOJInput{
		PreviousJobArn: "arn:prev",
		Query:          &Query{CollectionArn: "arn:coll"},
	}}
	_, err := job.Request()
	assert.ErrorContains(t, err, "not both")
}

func TestVectorEnrichmentJobRequest(t *testing.T) {
	doc := `
name: tracks
input:
  documentType: csv
  s3Uri: s3://bucket/in.csv
jobConfig:
  reverseGeocoding:
    xAttributeName: lon
    yAttributeName: lat
`
	var job VectorEnrichmentJob
	require.NoError(t, DecodeDocument([]byte(doc), &job))
	req, err := job.Request()
	require.NoError(t, err)

	require.NotNil(t, req.InputConfig)
	assert.Equal(t, types.VectorEnrichmentJobDocumentType("CSV"), req.InputConfig.DocumentType)
	s3 := req.InputConfig.DataSourceConfig.(*types.VectorEnrichmentJobDataSourceConfigInputMemberS3Data)
	assert.Equal(t, "s3://bucket/in.csv", awsv2.ToString(s3.Value.S3Uri))
	assert.Nil(t, s3.Value.KmsKeyId)

	rg := req.JobConfig.(*types.VectorEnrichmentJobConfigMemberReverseGeocodingConfig)
	assert.Equal(t, "lon", awsv2.ToString(rg.Value.XAttributeName))

	job.JobConfig.MapMatching = &MapMatching{}
	_, err = job.Request()
	assert.ErrorContains(t, err, "exactly one")
}

func TestDecodeDocumentRejectsUnknownKeys(t *testing.T) {
	var job EarthObservationJob
	err := DecodeDocument([]byte("name: x\njobConfg: {}\n"), &job)
	assert.ErrorContains(t, err, "jobConfg")

	require.NoError(t, DecodeDocument([]byte("  \n"), &job))
}

func TestDecodeDocumentBareJobConfig(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want types.JobConfigInput
	}{
		{"no value", "jobConfig:\n  cloudMasking:\n", &types.JobConfigInputMemberCloudMaskingConfig{}},
		{"tilde", "jobConfig:\n  landCoverSegmentation: ~\n", &types.JobConfigInputMemberLandCoverSegmentationConfig{}},
		{"json null", `{"jobConfig": {"stack": null}}`, &types.JobConfigInputMemberStackConfig{}},
		{"empty mapping", "jobConfig:\n  cloudMasking: {}\n", &types.JobConfigInputMemberCloudMaskingConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var job EarthObservationJob
			require.NoError(t, DecodeDocument([]byte(tt.doc), &job))
			got, err := job.JobConfig.Build()
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}

	t.Run("unknown kinds still rejected", func(t *testing.T) {
		var job EarthObservationJob
		err := DecodeDocument([]byte("jobConfig:\n  cloudMasking:\n  sharpen:\n"), &job)
		assert.ErrorContains(t, err, "sharpen")
	})

	t.Run("null outside job config untouched", func(t *testing.T) {
		var job EarthObservationJob
		require.NoError(t, DecodeDocument([]byte("name: x\nkmsKeyId:\n"), &job))
		assert.Equal(t, "x", job.Name)
		assert.Empty(t, job.KmsKeyID)
	})
}

func TestOutputConfigs(t *testing.T) {
	eoj := EOJOutputConfig("s3://out/", "")
	require.NotNil(t, eoj)
	assert.Equal(t, "s3://out/", awsv2.ToString(eoj.S3Data.S3Uri))
	assert.Nil(t, eoj.S3Data.KmsKeyId)

	vej := VEJOutputConfig("", "key")
	require.NotNil(t, vej)
	assert.Nil(t, vej.S3Data.S3Uri)
}

type fakeJobs struct {
	eoj   []string
	vej   []string
	calls int
	err   error
}

func pick(statuses []string, i int) string {
	if i >= len(statuses) {
		i = len(statuses) - 1
	}
	return statuses[i]
}

func (f *fakeJobs) GetEarthObservationJob(_ context.Context, in *geo.GetEarthObservationJobInput, _ ...func(*geo.Options)) (*geo.GetEarthObservationJobOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := pick(f.eoj, f.calls)
	f.calls++
	out := &geo.GetEarthObservationJobOutput{Arn: in.Arn, Status: types.EarthObservationJobStatus(s)}
	if s == StatusFailed {
		out.ErrorDetails = &types.EarthObservationJobErrorDetails{Type: types.EarthObservationJobErrorType("CLIENT_ERROR"), Message: awsv2.String("bad role")}
	}
	return out, nil
}

func (f *fakeJobs) GetVectorEnrichmentJob(_ context.Context, in *geo.GetVectorEnrichmentJobInput, _ ...func(*geo.Options)) (*geo.GetVectorEnrichmentJobOutput, error) {
	s := pick(f.vej, f.calls)
	f.calls++
	return &geo.GetVectorEnrichmentJobOutput{Arn: in.Arn, Status: types.VectorEnrichmentJobStatus(s)}, nil
}

var fast = waiter.Config{Interval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1, Timeout: 5 * time.Second}

func TestWaitForEarthObservationJob(t *testing.T) {
	f := &fakeJobs{eoj: []string{"INITIALIZING", "IN_PROGRESS", "COMPLETED"}}
	var seen []string
	out, err := WaitForEarthObservationJob(context.Background(), f, "arn:j", fast, func(s string) { seen = append(seen, s) })
	require.NoError(t, err)
	assert.Equal(t, types.EarthObservationJobStatus("COMPLETED"), out.Status)
	assert.Equal(t, []string{"INITIALIZING", "IN_PROGRESS", "COMPLETED"}, seen)

	_, err = WaitForEarthObservationJob(context.Background(), &fakeJobs{eoj: []string{"FAILED"}}, "arn:j", fast, nil)
	var je *JobError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "earth observation job arn:j is FAILED (CLIENT_ERROR: bad role)", je.Error())

	gone := &fakeJobs{err: &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "gone"}}
	_, err = WaitForEarthObservationJob(context.Background(), gone, "arn:j", fast, nil)
	require.ErrorAs(t, err, &je)
	assert.Equal(t, StatusDeleted, je.Status)

	denied := &fakeJobs{err: &smithy.GenericAPIError{Code: "AccessDeniedException"}}
	_, err = WaitForEarthObservationJob(context.Background(), denied, "arn:j", fast, nil)
	assert.NotErrorAs(t, err, &je)
}

func TestWaitForVectorEnrichmentJob(t *testing.T) {
	_, err := WaitForVectorEnrichmentJob(context.Background(), &fakeJobs{vej: []string{"IN_PROGRESS", "STOPPING", "STOPPED"}}, "arn:v", fast, nil)
	assert.EqualError(t, err, "vector enrichment job arn:v is STOPPED")

	out, err := WaitForVectorEnrichmentJob(context.Background(), &fakeJobs{vej: []string{"COMPLETED"}}, "arn:v", fast, nil)
	require.NoError(t, err)
	assert.Equal(t, "arn:v", awsv2.ToString(out.Arn))
}

func TestTerminal(t *testing.T) {
	for _, s := range []string{"COMPLETED", "FAILED", "STOPPED", "DELETED"} {
		assert.True(t, Terminal(s), s)
	}
	for _, s := range []string{"INITIALIZING", "IN_PROGRESS", "STOPPING", "DELETING", ""} {
		assert.False(t, Terminal(s), s)
	}
}
