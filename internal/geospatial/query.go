// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geospatial

import (
	"errors"
	"fmt"
	"strings"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
)

// Query describes a raster data collection query. It is shared by
// StartEarthObservationJob (without BandFilter) and
// SearchRasterDataCollection (with it).
type Query struct {
	CollectionArn   string           `yaml:"rasterDataCollectionArn" json:"rasterDataCollectionArn"`
	TimeRange       *TimeRange       `yaml:"timeRange" json:"timeRange"`
	AreaOfInterest  *AreaOfInterest  `yaml:"areaOfInterest" json:"areaOfInterest"`
	PropertyFilters *PropertyFilters `yaml:"propertyFilters" json:"propertyFilters"`
	BandFilter      []string         `yaml:"bandFilter" json:"bandFilter"`
}

// TimeRange bounds are RFC 3339 timestamps or plain dates (2006-01-02).
type TimeRange struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// AreaOfInterest holds exactly one of a polygon or a multipolygon, as
// longitude/latitude rings.
type AreaOfInterest struct {
	Polygon      [][][]float64   `yaml:"polygon" json:"polygon"`
	MultiPolygon [][][][]float64 `yaml:"multiPolygon" json:"multiPolygon"`
}

// Range is an inclusive numeric bound pair.
type Range struct {
	Lower *float32 `yaml:"lower" json:"lower"`
	Upper *float32 `yaml:"upper" json:"upper"`
}

// Platform matches the satellite platform name.
type Platform struct {
	Value    string `yaml:"value" json:"value"`
	Operator string `yaml:"operator" json:"operator"` // EQUALS, NOT_EQUALS, STARTS_WITH
}

// PropertyFilters narrows the returned scenes by their properties.
type PropertyFilters struct {
	LogicalOperator       string    `yaml:"logicalOperator" json:"logicalOperator"`
	EoCloudCover          *Range    `yaml:"eoCloudCover" json:"eoCloudCover"`
	LandsatCloudCoverLand *Range    `yaml:"landsatCloudCoverLand" json:"landsatCloudCoverLand"`
	Platform              *Platform `yaml:"platform" json:"platform"`
	ViewOffNadir          *Range    `yaml:"viewOffNadir" json:"viewOffNadir"`
	ViewSunAzimuth        *Range    `yaml:"viewSunAzimuth" json:"viewSunAzimuth"`
	ViewSunElevation      *Range    `yaml:"viewSunElevation" json:"viewSunElevation"`
}

// ErrAmbiguousAreaOfInterest is returned when both polygon and multipolygon
// are given.
var ErrAmbiguousAreaOfInterest = errors.New("area of interest takes either polygon or multiPolygon, not both")

// Input builds the query used by StartEarthObservationJob. It returns nil
// when the query is empty. BandFilter is not part of this shape and is
// ignored.
func (q *Query) Input() (*types.RasterDataCollectionQueryInput, error) {
	if q == nil {
		return nil, nil
	}

	tr, aoi, pf, err := q.parts()
	if err != nil {
		return nil, err
	}
	if q.CollectionArn == "" && tr == nil && aoi == nil && pf == nil {
		return nil, nil
	}

	return &types.RasterDataCollectionQueryInput{
		RasterDataCollectionArn: optString(q.CollectionArn),
		TimeRangeFilter:         tr,
		AreaOfInterest:          aoi,
		PropertyFilters:         pf,
	}, nil
}

// SearchInput builds the query used by SearchRasterDataCollection, where
// the collection is addressed separately by ARN. It returns nil when the
// query is empty.
func (q *Query) SearchInput() (*types.RasterDataCollectionQueryWithBandFilterInput, error) {
	if q == nil {
		return nil, nil
	}

	tr, aoi, pf, err := q.parts()
	if err != nil {
		return nil, err
	}
	if tr == nil && aoi == nil && pf == nil && len(q.BandFilter) == 0 {
		return nil, nil
	}

	return &types.RasterDataCollectionQueryWithBandFilterInput{
		TimeRangeFilter: tr,
		AreaOfInterest:  aoi,
		PropertyFilters: pf,
		BandFilter:      q.BandFilter,
	}, nil
}

func (q *Query) parts() (*types.TimeRangeFilterInput, types.AreaOfInterest, *types.PropertyFilters, error) {
	tr, err := q.TimeRange.build()
	if err != nil {
		return nil, nil, nil, err
	}
	aoi, err := q.AreaOfInterest.build()
	if err != nil {
		return nil, nil, nil, err
	}
	pf, err := q.PropertyFilters.build()
	if err != nil {
		return nil, nil, nil, err
	}
	return tr, aoi, pf, nil
}

func (t *TimeRange) build() (*types.TimeRangeFilterInput, error) {
	if t == nil || (t.Start == "" && t.End == "") {
		return nil, nil
	}

	out := &types.TimeRangeFilterInput{}
	for _, f := range []struct {
		raw  string
		dest **time.Time
		name string
	}{
		{t.Start, &out.StartTime, "start"},
		{t.End, &out.EndTime, "end"},
	} {
		if f.raw == "" {
			continue
		}
		ts, err := ParseTime(f.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid time range %s: %w", f.name, err)
		}
		*f.dest = &ts
	}

	if out.StartTime != nil && out.EndTime != nil && out.EndTime.Before(*out.StartTime) {
		return nil, fmt.Errorf("time range end %s is before start %s", t.End, t.Start)
	}
	return out, nil
}

// ParseTime accepts RFC 3339 or a bare date, which is taken as UTC midnight.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.DateOnly, s)
}

func (a *AreaOfInterest) build() (types.AreaOfInterest, error) {
	if a == nil {
		return nil, nil
	}

	switch {
	case len(a.Polygon) > 0 && len(a.MultiPolygon) > 0:
		return nil, ErrAmbiguousAreaOfInterest
	case len(a.Polygon) > 0:
		return &types.AreaOfInterestMemberAreaOfInterestGeometry{
			Value: &types.AreaOfInterestGeometryMemberPolygonGeometry{
				Value: types.PolygonGeometryInput{Coordinates: a.Polygon},
			},
		}, nil
	case len(a.MultiPolygon) > 0:
		return &types.AreaOfInterestMemberAreaOfInterestGeometry{
			Value: &types.AreaOfInterestGeometryMemberMultiPolygonGeometry{
				Value: types.MultiPolygonGeometryInput{Coordinates: a.MultiPolygon},
			},
		}, nil
	}
	return nil, nil
}

func (p *PropertyFilters) build() (*types.PropertyFilters, error) {
	if p == nil {
		return nil, nil
	}

	var props []types.PropertyFilter
	add := func(prop types.Property) {
		props = append(props, types.PropertyFilter{Property: prop})
	}

	if r := p.EoCloudCover; r.set() {
		add(&types.PropertyMemberEoCloudCover{Value: types.EoCloudCoverInput{LowerBound: r.Lower, UpperBound: r.Upper}})
	}
	if r := p.LandsatCloudCoverLand; r.set() {
		add(&types.PropertyMemberLandsatCloudCoverLand{Value: types.LandsatCloudCoverLandInput{LowerBound: r.Lower, UpperBound: r.Upper}})
	}
	if pl := p.Platform; pl != nil && pl.Value != "" {
		add(&types.PropertyMemberPlatform{Value: types.PlatformInput{
			Value:              awsv2.String(pl.Value),
			ComparisonOperator: types.ComparisonOperator(strings.ToUpper(pl.Operator)),
		}})
	}
	if r := p.ViewOffNadir; r.set() {
		add(&types.PropertyMemberViewOffNadir{Value: types.ViewOffNadirInput{LowerBound: r.Lower, UpperBound: r.Upper}})
	}
	if r := p.ViewSunAzimuth; r.set() {
		add(&types.PropertyMemberViewSunAzimuth{Value: types.ViewSunAzimuthInput{LowerBound: r.Lower, UpperBound: r.Upper}})
	}
	if r := p.ViewSunElevation; r.set() {
		add(&types.PropertyMemberViewSunElevation{Value: types.ViewSunElevationInput{LowerBound: r.Lower, UpperBound: r.Upper}})
	}

	if len(props) == 0 {
		if p.LogicalOperator != "" {
			return nil, errors.New("property filters give a logical operator but no properties")
		}
		return nil, nil
	}

	return &types.PropertyFilters{
		LogicalOperator: types.LogicalOperator(strings.ToUpper(p.LogicalOperator)),
		Properties:      props,
	}, nil
}

func (r *Range) set() bool {
	return r != nil && (r.Lower != nil || r.Upper != nil)
}

// optString maps "" to nil.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return awsv2.String(s)
}

// enums converts a string slice to an SDK enum slice, nil for empty input.
func enums[T ~string](in []string) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	for i, s := range in {
		out[i] = T(strings.ToUpper(s))
	}
	return out
}
