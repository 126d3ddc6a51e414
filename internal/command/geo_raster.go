// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/cacheutil"
	"github.com/tfctl/gsctl/internal/config"
	"github.com/tfctl/gsctl/internal/geospatial"
	"github.com/tfctl/gsctl/internal/meta"
)

var collectionCacheDir = []string{"geo", "collections"}

func refreshFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "refresh",
		Usage: "ignore cached collection metadata",
	}
}

// cachedJSON returns the JSON encoding of fill's result, served from the
// cache for cache.ttl (default 24h). --refresh skips the read. Entries are
// keyed by the profile and by the region the client resolved.
func cachedJSON[O any](ctx context.Context, cmd *cli.Command, op, key string, fill func() (O, error)) ([]byte, error) {
	s := AWSSettingsFrom(cmd)
	profile := s.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	clearKey := strings.Join([]string{op, profile, connectedRegion(ctx), s.Endpoint, key}, "|")
	ttl, _ := config.GetDuration("cache.ttl", 24*time.Hour)

	encode := func() ([]byte, error) {
		out, err := fill()
		if err != nil {
			return nil, err
		}
		return json.Marshal(out)
	}

	if cmd.Bool("refresh") {
		data, err := encode()
		if err != nil {
			return nil, err
		}
		if werr := cacheutil.Write(collectionCacheDir, clearKey, data); werr != nil {
			log.WithError(werr).Warnf("cache write failed: key=%s", clearKey)
		}
		return data, nil
	}

	data, hit, err := cacheutil.Fetch(collectionCacheDir, clearKey, ttl, encode)
	if err != nil {
		return nil, err
	}
	log.Debugf("%s: cache hit=%v", op, hit)
	return data, nil
}

// emitCached renders an already encoded response.
func emitCached(defaults []string, parent string) func(context.Context, *cli.Command, aws.GeospatialAPI, []byte) error {
	return func(_ context.Context, cmd *cli.Command, _ aws.GeospatialAPI, raw []byte) error {
		return EmitJSON(cmd, raw, BuildAttrs(cmd, defaults...), parent)
	}
}

func getRasterDataCollectionCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetRasterDataCollection", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]byte, error) {
		arn := cmd.String("arn")
		return cachedJSON(ctx, cmd, "GetRasterDataCollection", arn, func() (*geo.GetRasterDataCollectionOutput, error) {
			return api.GetRasterDataCollection(ctx, &geo.GetRasterDataCollectionInput{
				Arn: optString(cmd, "arn"),
			})
		})
	})
	r.Required = []string{"arn"}
	r.SchemaType = reflect.TypeFor[geo.GetRasterDataCollectionOutput]()
	r.Emit = emitCached(collectionAttrs, "")

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "get-raster-data-collection",
		Usage:     "describe a raster data collection",
		Flags:     []cli.Flag{arnFlag("raster data collection ARN"), refreshFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func listRasterDataCollectionsCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ListRasterDataCollections", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]byte, error) {
		key := fmt.Sprintf("page-size=%d,max-items=%d", cmd.Int("page-size"), cmd.Int("max-items"))
		return cachedJSON(ctx, cmd, "ListRasterDataCollections", key, func() ([]types.RasterDataCollectionMetadata, error) {
			return PaginateWithOptions(ctx, cmd, &geo.ListRasterDataCollectionsInput{},
				func(ctx context.Context, in *geo.ListRasterDataCollectionsInput) ([]types.RasterDataCollectionMetadata, *string, error) {
					out, err := api.ListRasterDataCollections(ctx, in)
					if err != nil {
						return nil, nil, err
					}
					return out.RasterDataCollectionSummaries, out.NextToken, nil
				}, nil)
		})
	})
	r.SchemaType = reflect.TypeFor[types.RasterDataCollectionMetadata]()
	r.Emit = emitCached(collectionAttrs, "")

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "list-raster-data-collections",
		Usage:     "list the raster data collections available to jobs",
		Flags:     append(NewPagingFlags(), refreshFlag()),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// searchQuery reads the --input query document and applies the flag
// overrides.
func searchQuery(cmd *cli.Command) (*types.RasterDataCollectionQueryWithBandFilterInput, error) {
	var q geospatial.Query
	if p := cmd.String("input"); p != "" {
		if err := geospatial.LoadDocument(p, &q); err != nil {
			return nil, err
		}
	}
	if cmd.IsSet("start") || cmd.IsSet("end") {
		if q.TimeRange == nil {
			q.TimeRange = &geospatial.TimeRange{}
		}
		setString(&q.TimeRange.Start, cmd, "start")
		setString(&q.TimeRange.End, cmd, "end")
	}
	if bands := cmd.StringSlice("band-filter"); len(bands) > 0 {
		q.BandFilter = bands
	}
	return q.SearchInput()
}

func searchRasterDataCollectionCommand(m meta.Meta) *cli.Command {
	r := geoRunner("SearchRasterDataCollection", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]types.ItemSource, error) {
		query, err := searchQuery(cmd)
		if err != nil {
			return nil, err
		}
		if query == nil {
			WarnMissing(cmd, []string{"input"})
		}

		in := &geo.SearchRasterDataCollectionInput{
			Arn:                       optString(cmd, "arn"),
			RasterDataCollectionQuery: query,
		}
		return PaginateWithOptions(ctx, cmd, in,
			func(ctx context.Context, in *geo.SearchRasterDataCollectionInput) ([]types.ItemSource, *string, error) {
				out, err := api.SearchRasterDataCollection(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.Items, out.NextToken, nil
			}, nil)
	})
	r.Required = []string{"arn"}
	r.SchemaType = reflect.TypeFor[types.ItemSource]()
	r.DefaultAttrs = itemAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "search-raster-data-collection",
		Usage:     "find the scenes of a collection matching a query",
		UsageText: "gsctl geo search-raster-data-collection --arn ARN --input query.yaml [--start DATE] [--end DATE] [--max-items N]",
		Flags: []cli.Flag{
			arnFlag("raster data collection ARN"),
			inputFlag("query document"),
			stringFlag("start", "time range start, RFC 3339 or YYYY-MM-DD"),
			stringFlag("end", "time range end, RFC 3339 or YYYY-MM-DD"),
			sliceFlag("band-filter", "asset band to return, repeatable"),
			&cli.IntFlag{
				Name:  "max-items",
				Usage: "stop paging after this many results, 0 for all",
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func getTileInput(cmd *cli.Command) *geo.GetTileInput {
	return &geo.GetTileInput{
		Arn:              optString(cmd, "arn"),
		ImageAssets:      optSlice(cmd, "image-assets"),
		Target:           types.TargetOptions(upper(cmd.String("target"))),
		X:                optInt32(cmd, "x"),
		Y:                optInt32(cmd, "y"),
		Z:                optInt32(cmd, "z"),
		ExecutionRoleArn: optString(cmd, "execution-role-arn"),
		ImageMask:        optBool(cmd, "image-mask"),
		OutputDataType:   types.OutputType(upper(cmd.String("output-data-type"))),
		OutputFormat:     optString(cmd, "output-format"),
		PropertyFilters:  optString(cmd, "property-filters"),
		TimeRangeFilter:  optString(cmd, "time-range-filter"),
	}
}

func getTileCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetTile", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.GetTileOutput, error) {
		return api.GetTile(ctx, getTileInput(cmd))
	})
	r.Required = []string{"arn", "image-assets", "target", "x", "y", "z"}
	r.SchemaType = nil
	r.Emit = func(_ context.Context, cmd *cli.Command, _ aws.GeospatialAPI, out *geo.GetTileOutput) error {
		return writeTile(cmd, out.BinaryFile)
	}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "get-tile",
		Usage:     "download one map tile of a job's input or output",
		Flags: []cli.Flag{
			arnFlag("earth observation job ARN"),
			sliceFlag("image-assets", "band to include, repeatable"),
			&cli.StringFlag{
				Name:  "target",
				Usage: "INPUT or OUTPUT imagery",
				Validator: func(value string) error {
					return FlagValidators(value, EnumValidator("INPUT", "OUTPUT"))
				},
			},
			&cli.IntFlag{Name: "x", Usage: "tile column"},
			&cli.IntFlag{Name: "y", Usage: "tile row"},
			&cli.IntFlag{Name: "z", Usage: "zoom level"},
			stringFlag("execution-role-arn", "IAM role the service assumes"),
			&cli.BoolFlag{Name: "image-mask", Usage: "include the image mask"},
			stringFlag("output-data-type", "pixel data type, e.g. FLOAT32"),
			stringFlag("output-format", "image format, e.g. image/png"),
			stringFlag("property-filters", "property filters as JSON"),
			stringFlag("time-range-filter", "time range filter as JSON"),
			&cli.StringFlag{
				Name:      "out",
				Usage:     "file receiving the tile, - for stdout",
				TakesFile: true,
			},
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

// writeTile copies the tile body to --out.
func writeTile(cmd *cli.Command, body io.ReadCloser) error {
	if body == nil {
		return fmt.Errorf("get-tile: empty response body")
	}
	defer body.Close()

	path := cmd.String("out")
	if path == "" || path == "-" {
		_, err := io.Copy(outWriter(cmd), body)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(errWriter(cmd), "wrote %s to %s\n", humanize.Bytes(uint64(n)), path)
	return nil
}
