// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/differ"
	"github.com/tfctl/gsctl/internal/meta"
)

type fakeGeo struct {
	aws.GeospatialAPI

	startEOJ    *geo.StartEarthObservationJobInput
	startVEJ    *geo.StartVectorEnrichmentJobInput
	listEOJ     []geo.ListEarthObservationJobsInput
	eojPages    []*geo.ListEarthObservationJobsOutput
	jobs        map[string]*geo.GetEarthObservationJobOutput
	gets        []string
	collections int
	tile        *geo.GetTileInput
	search      []geo.SearchRasterDataCollectionInput

	// Scripted statuses for the waiters; the last one repeats.
	eojStatuses []types.EarthObservationJobStatus
	vejStatuses []types.VectorEnrichmentJobStatus
}

func (f *fakeGeo) StartEarthObservationJob(_ context.Context, in *geo.StartEarthObservationJobInput, _ ...func(*geo.Options)) (*geo.StartEarthObservationJobOutput, error) {
	f.startEOJ = in
	return &geo.StartEarthObservationJobOutput{Arn: awsv2.String("arn:eoj/1"), Name: in.Name}, nil
}

func (f *fakeGeo) StartVectorEnrichmentJob(_ context.Context, in *geo.StartVectorEnrichmentJobInput, _ ...func(*geo.Options)) (*geo.StartVectorEnrichmentJobOutput, error) {
	f.startVEJ = in
	return &geo.StartVectorEnrichmentJobOutput{Arn: awsv2.String("arn:vej/1"), Name: in.Name}, nil
}

func (f *fakeGeo) ListEarthObservationJobs(_ context.Context, in *geo.ListEarthObservationJobsInput, _ ...func(*geo.Options)) (*geo.ListEarthObservationJobsOutput, error) {
	f.listEOJ = append(f.listEOJ, *in)
	i := len(f.listEOJ) - 1
	if i >= len(f.eojPages) {
		return &geo.ListEarthObservationJobsOutput{}, nil
	}
	return f.eojPages[i], nil
}

func (f *fakeGeo) GetEarthObservationJob(_ context.Context, in *geo.GetEarthObservationJobInput, _ ...func(*geo.Options)) (*geo.GetEarthObservationJobOutput, error) {
	arn := awsv2.ToString(in.Arn)
	f.gets = append(f.gets, arn)
	if len(f.eojStatuses) > 0 {
		out := &geo.GetEarthObservationJobOutput{Arn: in.Arn, Status: scripted(f.eojStatuses, len(f.gets)-1)}
		if out.Status == "FAILED" {
			out.ErrorDetails = &types.EarthObservationJobErrorDetails{
				Type:    types.EarthObservationJobErrorType("CLIENT_ERROR"),
				Message: awsv2.String("bad input"),
			}
		}
		return out, nil
	}
	return f.jobs[arn], nil
}

func (f *fakeGeo) GetVectorEnrichmentJob(_ context.Context, in *geo.GetVectorEnrichmentJobInput, _ ...func(*geo.Options)) (*geo.GetVectorEnrichmentJobOutput, error) {
	f.gets = append(f.gets, awsv2.ToString(in.Arn))
	return &geo.GetVectorEnrichmentJobOutput{Arn: in.Arn, Status: scripted(f.vejStatuses, len(f.gets)-1)}, nil
}

func (f *fakeGeo) ListRasterDataCollections(_ context.Context, _ *geo.ListRasterDataCollectionsInput, _ ...func(*geo.Options)) (*geo.ListRasterDataCollectionsOutput, error) {
	f.collections++
	return &geo.ListRasterDataCollectionsOutput{
		RasterDataCollectionSummaries: []types.RasterDataCollectionMetadata{
			{Name: awsv2.String("Sentinel 2 L2A COGs"), Arn: awsv2.String("arn:collection/sentinel"), Type: types.DataCollectionType("PUBLIC")},
		},
	}, nil
}

func (f *fakeGeo) GetTile(_ context.Context, in *geo.GetTileInput, _ ...func(*geo.Options)) (*geo.GetTileOutput, error) {
	f.tile = in
	return &geo.GetTileOutput{BinaryFile: io.NopCloser(strings.NewReader("PNG..."))}, nil
}

func (f *fakeGeo) SearchRasterDataCollection(_ context.Context, in *geo.SearchRasterDataCollectionInput, _ ...func(*geo.Options)) (*geo.SearchRasterDataCollectionOutput, error) {
	f.search = append(f.search, *in)
	return &geo.SearchRasterDataCollectionOutput{
		Items: []types.ItemSource{{Id: awsv2.String("scene-1")}},
	}, nil
}

func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestStartEarthObservationJobDocument(t *testing.T) {
	doc := writeDoc(t, `
name: from-doc
executionRoleArn: arn:aws:iam::123456789012:role/geo
tags:
  team: imagery
input:
  rasterDataCollectionQuery:
    rasterDataCollectionArn: arn:collection/sentinel
    timeRange:
      start: 2023-01-01
      end: 2023-02-01
`)
	f := &fakeGeo{}
	_, stderr, err := run(t, geoMeta(f), "geo", "start-earth-observation-job",
		"--input", doc,
		"--name", "from-flag",
		"--end", "2023-03-01",
		"--job-config", "cloud-masking",
		"--tags", "env=dev",
		"--output", "json")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "warning")

	in := f.startEOJ
	require.NotNil(t, in)
	assert.Equal(t, "from-flag", awsv2.ToString(in.Name))
	assert.Equal(t, "arn:aws:iam::123456789012:role/geo", awsv2.ToString(in.ExecutionRoleArn))
	assert.Equal(t, map[string]string{"team": "imagery", "env": "dev"}, in.Tags)
	assert.Nil(t, in.KmsKeyId)

	require.NotNil(t, in.InputConfig)
	q := in.InputConfig.RasterDataCollectionQuery
	require.NotNil(t, q)
	assert.Equal(t, "arn:collection/sentinel", awsv2.ToString(q.RasterDataCollectionArn))
	require.NotNil(t, q.TimeRangeFilter)
	assert.Equal(t, "2023-01-01", q.TimeRangeFilter.StartTime.Format("2006-01-02"))
	assert.Equal(t, "2023-03-01", q.TimeRangeFilter.EndTime.Format("2006-01-02"))
	assert.Nil(t, q.PropertyFilters)

	_, ok := in.JobConfig.(*types.JobConfigInputMemberCloudMaskingConfig)
	assert.True(t, ok)
}

func TestStartEarthObservationJobWarnsOnMissing(t *testing.T) {
	f := &fakeGeo{}
	_, stderr, err := run(t, geoMeta(f), "geo", "start-earth-observation-job", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: required parameters not set: --name, --execution-role-arn, --input, --job-config")

	require.NotNil(t, f.startEOJ)
	assert.Nil(t, f.startEOJ.InputConfig)
	assert.Nil(t, f.startEOJ.JobConfig)
	assert.Nil(t, f.startEOJ.Tags)
}

func TestStartEarthObservationJobRejectsTwoConfigs(t *testing.T) {
	doc := writeDoc(t, `
jobConfig:
  bandMath:
    predefinedIndices: [NDVI]
`)
	f := &fakeGeo{}
	_, _, err := run(t, geoMeta(f), "geo", "start-earth-observation-job", "--input", doc, "--job-config", "stack")
	require.Error(t, err)
	assert.Nil(t, f.startEOJ, "no request is sent")
}

func TestStartVectorEnrichmentJobDocument(t *testing.T) {
	f := &fakeGeo{}
	_, _, err := run(t, geoMeta(f), "geo", "start-vector-enrichment-job",
		"--name", "geocode",
		"--execution-role-arn", "arn:role",
		"--document-type", "csv",
		"--source-s3-uri", "s3://bucket/points.csv",
		"--job-config", "reverse-geocoding",
		"--x-attribute-name", "lon",
		"--y-attribute-name", "lat",
		"--output", "json")
	require.NoError(t, err)

	in := f.startVEJ
	require.NotNil(t, in)
	assert.Equal(t, "geocode", awsv2.ToString(in.Name))
	require.NotNil(t, in.InputConfig)
	assert.Equal(t, types.VectorEnrichmentJobDocumentType("CSV"), in.InputConfig.DocumentType)
	cfg, ok := in.JobConfig.(*types.VectorEnrichmentJobConfigMemberReverseGeocodingConfig)
	require.True(t, ok)
	assert.Equal(t, "lon", awsv2.ToString(cfg.Value.XAttributeName))
	assert.Equal(t, "lat", awsv2.ToString(cfg.Value.YAttributeName))
}

func TestListEarthObservationJobsFilters(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantState types.EarthObservationJobStatus
		wantOrder types.SortOrder
		wantSort  string
	}{
		{name: "none"},
		{name: "server-side filter", args: []string{"--filter", "_status=in_progress"}, wantState: "IN_PROGRESS"},
		{name: "flag wins", args: []string{"--status-equals", "failed", "--filter", "_status=completed"}, wantState: "FAILED"},
		{name: "sort", args: []string{"--sort-by", "CreationTime", "--sort-order", "descending"}, wantOrder: "DESCENDING", wantSort: "CreationTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeGeo{}
			args := append([]string{"geo", "list-earth-observation-jobs", "--output", "json"}, tt.args...)
			_, _, err := run(t, geoMeta(f), args...)
			require.NoError(t, err)
			require.Len(t, f.listEOJ, 1)
			assert.Equal(t, tt.wantState, f.listEOJ[0].StatusEquals)
			assert.Equal(t, tt.wantOrder, f.listEOJ[0].SortOrder)
			assert.Equal(t, tt.wantSort, awsv2.ToString(f.listEOJ[0].SortBy))
		})
	}
}

func TestListEarthObservationJobsRejectsBadStatus(t *testing.T) {
	_, _, err := run(t, geoMeta(&fakeGeo{}), "geo", "list-earth-observation-jobs", "--status-equals", "nope")
	assert.Error(t, err)
}

func diffJobs() map[string]*geo.GetEarthObservationJobOutput {
	return map[string]*geo.GetEarthObservationJobOutput{
		"arn:eoj/a": {Arn: awsv2.String("arn:eoj/a"), Name: awsv2.String("ndvi"), Status: "COMPLETED", KmsKeyId: awsv2.String("k1")},
		"arn:eoj/b": {Arn: awsv2.String("arn:eoj/b"), Name: awsv2.String("ndvi"), Status: "COMPLETED", KmsKeyId: awsv2.String("k2")},
		"arn:eoj/c": {Arn: awsv2.String("arn:eoj/c"), Name: awsv2.String("ndvi"), Status: "COMPLETED", KmsKeyId: awsv2.String("k1")},
	}
}

func TestDiffEarthObservationJobs(t *testing.T) {
	f := &fakeGeo{jobs: diffJobs()}
	stdout, _, err := run(t, geoMeta(f), "geo", "diff-earth-observation-jobs", "arn:eoj/a", "arn:eoj/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"arn:eoj/a", "arn:eoj/b"}, f.gets)
	assert.Contains(t, stdout, "k1")
	assert.Contains(t, stdout, "k2")

	// Only the ARN differs and it is filtered by default.
	f = &fakeGeo{jobs: diffJobs()}
	stdout, _, err = run(t, geoMeta(f), "geo", "diff-earth-observation-jobs", "arn:eoj/a", "arn:eoj/c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "The documents are identical.")

	f = &fakeGeo{jobs: diffJobs()}
	stdout, _, err = run(t, geoMeta(f), "geo", "diff-earth-observation-jobs", "--diff-filter", "-", "arn:eoj/a", "arn:eoj/c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "arn:eoj/c")
}

func TestDiffEarthObservationJobsTargets(t *testing.T) {
	origInteractive, origPick := interactive, pickJobs
	t.Cleanup(func() { interactive, pickJobs = origInteractive, origPick })

	interactive = func() bool { return false }
	_, _, err := run(t, geoMeta(&fakeGeo{}), "geo", "diff-earth-observation-jobs")
	assert.EqualError(t, err, "expected two job ARNs")

	_, _, err = run(t, geoMeta(&fakeGeo{}), "geo", "diff-earth-observation-jobs", "arn:eoj/a")
	assert.EqualError(t, err, "expected two job ARNs, got 1")

	var offered []differ.Item
	interactive = func() bool { return true }
	pickJobs = func(items []differ.Item) ([]differ.Item, error) {
		offered = items
		return []differ.Item{items[2], items[0]}, nil
	}
	f := &fakeGeo{
		jobs: diffJobs(),
		eojPages: []*geo.ListEarthObservationJobsOutput{{
			EarthObservationJobSummaries: []types.ListEarthObservationJobOutputConfig{
				{Arn: awsv2.String("arn:eoj/a"), Name: awsv2.String("ndvi")},
				{Arn: awsv2.String("arn:eoj/b"), Name: awsv2.String("ndvi")},
				{Arn: awsv2.String("arn:eoj/c"), Name: awsv2.String("ndvi")},
			},
		}},
	}
	_, _, err = run(t, geoMeta(f), "geo", "diff-earth-observation-jobs")
	require.NoError(t, err)
	assert.Len(t, offered, 3)
	assert.Equal(t, []string{"arn:eoj/c", "arn:eoj/a"}, f.gets)
}

func TestListRasterDataCollectionsCached(t *testing.T) {
	t.Setenv("GSCTL_CACHE_DIR", t.TempDir())
	t.Setenv("GSCTL_CACHE", "1")

	f := &fakeGeo{}
	for range 2 {
		stdout, _, err := run(t, geoMeta(f), "geo", "list-raster-data-collections", "--output", "json")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"Arn":"arn:collection/sentinel"`)
	}
	assert.Equal(t, 1, f.collections, "second run is served from the cache")

	_, _, err := run(t, geoMeta(f), "geo", "list-raster-data-collections", "--refresh", "--output", "json")
	require.NoError(t, err)
	assert.Equal(t, 2, f.collections)
}

func TestRasterCacheKeyedByResolvedRegionAndProfile(t *testing.T) {
	t.Setenv("GSCTL_CACHE_DIR", t.TempDir())
	t.Setenv("GSCTL_CACHE", "1")
	t.Setenv("AWS_PROFILE", "")

	f := &fakeGeo{}
	m := geoMeta(f)
	region := "us-west-2"
	m.Clients.Geospatial = func(context.Context, meta.AWSSettings) (aws.GeospatialAPI, string, error) {
		return f, region, nil
	}
	list := func() {
		t.Helper()
		_, _, err := run(t, m, "geo", "list-raster-data-collections", "--output", "json")
		require.NoError(t, err)
	}

	list()
	list()
	assert.Equal(t, 1, f.collections)

	// Same flags, but the shared config picked another region.
	region = "eu-central-1"
	list()
	assert.Equal(t, 2, f.collections)

	region = "us-west-2"
	list()
	assert.Equal(t, 2, f.collections, "first region is still cached")

	t.Setenv("AWS_PROFILE", "other-account")
	list()
	assert.Equal(t, 3, f.collections)
}

func TestSearchRasterDataCollection(t *testing.T) {
	doc := writeDoc(t, `
areaOfInterest:
  polygon:
    - [[-114.5, 36.0], [-114.0, 36.0], [-114.0, 36.5], [-114.5, 36.0]]
`)
	f := &fakeGeo{}
	stdout, _, err := run(t, geoMeta(f), "geo", "search-raster-data-collection",
		"--arn", "arn:collection/sentinel",
		"--input", doc,
		"--start", "2023-01-01", "--end", "2023-01-31",
		"--band-filter", "red",
		"--output", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Id":"scene-1"`)

	require.Len(t, f.search, 1)
	q := f.search[0].RasterDataCollectionQuery
	require.NotNil(t, q)
	assert.Equal(t, []string{"red"}, q.BandFilter)
	require.NotNil(t, q.TimeRangeFilter)
	assert.NotNil(t, q.AreaOfInterest)
}

func TestGetTileWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tile.png")
	f := &fakeGeo{}
	_, stderr, err := run(t, geoMeta(f), "geo", "get-tile",
		"--arn", "arn:eoj/a", "--image-assets", "red", "--target", "output",
		"--x", "1", "--y", "2", "--z", "3", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PNG...", string(data))
	assert.Contains(t, stderr, "wrote 6 B to "+out)

	in := f.tile
	require.NotNil(t, in)
	assert.Equal(t, types.TargetOptions("OUTPUT"), in.Target)
	assert.Equal(t, int32(3), awsv2.ToInt32(in.Z))
	assert.Nil(t, in.ImageMask)
	assert.Nil(t, in.ExecutionRoleArn)
	assert.Equal(t, types.OutputType(""), in.OutputDataType)
}

func TestGetTileToStdout(t *testing.T) {
	stdout, _, err := run(t, geoMeta(&fakeGeo{}), "geo", "get-tile",
		"--arn", "arn:eoj/a", "--image-assets", "red", "--target", "input",
		"--x", "0", "--y", "0", "--z", "0")
	require.NoError(t, err)
	assert.Equal(t, "PNG...", stdout)
}
