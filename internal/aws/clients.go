// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	gls "github.com/aws/aws-sdk-go-v2/service/gameliftstreams"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
)

// GameLiftStreamsAPI is the subset of the GameLift Streams client used by
// gsctl. Commands depend on it rather than the concrete client so tests can
// substitute a fake.
type GameLiftStreamsAPI interface {
	AddStreamGroupLocations(context.Context, *gls.AddStreamGroupLocationsInput, ...func(*gls.Options)) (*gls.AddStreamGroupLocationsOutput, error)
	AssociateApplications(context.Context, *gls.AssociateApplicationsInput, ...func(*gls.Options)) (*gls.AssociateApplicationsOutput, error)
	CreateApplication(context.Context, *gls.CreateApplicationInput, ...func(*gls.Options)) (*gls.CreateApplicationOutput, error)
	CreateStreamGroup(context.Context, *gls.CreateStreamGroupInput, ...func(*gls.Options)) (*gls.CreateStreamGroupOutput, error)
	CreateStreamSessionConnection(context.Context, *gls.CreateStreamSessionConnectionInput, ...func(*gls.Options)) (*gls.CreateStreamSessionConnectionOutput, error)
	DeleteApplication(context.Context, *gls.DeleteApplicationInput, ...func(*gls.Options)) (*gls.DeleteApplicationOutput, error)
	DeleteStreamGroup(context.Context, *gls.DeleteStreamGroupInput, ...func(*gls.Options)) (*gls.DeleteStreamGroupOutput, error)
	DisassociateApplications(context.Context, *gls.DisassociateApplicationsInput, ...func(*gls.Options)) (*gls.DisassociateApplicationsOutput, error)
	ExportStreamSessionFiles(context.Context, *gls.ExportStreamSessionFilesInput, ...func(*gls.Options)) (*gls.ExportStreamSessionFilesOutput, error)
	GetApplication(context.Context, *gls.GetApplicationInput, ...func(*gls.Options)) (*gls.GetApplicationOutput, error)
	GetStreamGroup(context.Context, *gls.GetStreamGroupInput, ...func(*gls.Options)) (*gls.GetStreamGroupOutput, error)
	GetStreamSession(context.Context, *gls.GetStreamSessionInput, ...func(*gls.Options)) (*gls.GetStreamSessionOutput, error)
	ListApplications(context.Context, *gls.ListApplicationsInput, ...func(*gls.Options)) (*gls.ListApplicationsOutput, error)
	ListStreamGroups(context.Context, *gls.ListStreamGroupsInput, ...func(*gls.Options)) (*gls.ListStreamGroupsOutput, error)
	ListStreamSessions(context.Context, *gls.ListStreamSessionsInput, ...func(*gls.Options)) (*gls.ListStreamSessionsOutput, error)
	ListStreamSessionsByAccount(context.Context, *gls.ListStreamSessionsByAccountInput, ...func(*gls.Options)) (*gls.ListStreamSessionsByAccountOutput, error)
	ListTagsForResource(context.Context, *gls.ListTagsForResourceInput, ...func(*gls.Options)) (*gls.ListTagsForResourceOutput, error)
	RemoveStreamGroupLocations(context.Context, *gls.RemoveStreamGroupLocationsInput, ...func(*gls.Options)) (*gls.RemoveStreamGroupLocationsOutput, error)
	StartStreamSession(context.Context, *gls.StartStreamSessionInput, ...func(*gls.Options)) (*gls.StartStreamSessionOutput, error)
	TagResource(context.Context, *gls.TagResourceInput, ...func(*gls.Options)) (*gls.TagResourceOutput, error)
	TerminateStreamSession(context.Context, *gls.TerminateStreamSessionInput, ...func(*gls.Options)) (*gls.TerminateStreamSessionOutput, error)
	UntagResource(context.Context, *gls.UntagResourceInput, ...func(*gls.Options)) (*gls.UntagResourceOutput, error)
	UpdateApplication(context.Context, *gls.UpdateApplicationInput, ...func(*gls.Options)) (*gls.UpdateApplicationOutput, error)
	UpdateStreamGroup(context.Context, *gls.UpdateStreamGroupInput, ...func(*gls.Options)) (*gls.UpdateStreamGroupOutput, error)
}

// GeospatialAPI is the subset of the SageMaker Geospatial client used by
// gsctl.
type GeospatialAPI interface {
	DeleteEarthObservationJob(context.Context, *geo.DeleteEarthObservationJobInput, ...func(*geo.Options)) (*geo.DeleteEarthObservationJobOutput, error)
	DeleteVectorEnrichmentJob(context.Context, *geo.DeleteVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.DeleteVectorEnrichmentJobOutput, error)
	ExportEarthObservationJob(context.Context, *geo.ExportEarthObservationJobInput, ...func(*geo.Options)) (*geo.ExportEarthObservationJobOutput, error)
	ExportVectorEnrichmentJob(context.Context, *geo.ExportVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.ExportVectorEnrichmentJobOutput, error)
	GetEarthObservationJob(context.Context, *geo.GetEarthObservationJobInput, ...func(*geo.Options)) (*geo.GetEarthObservationJobOutput, error)
	GetRasterDataCollection(context.Context, *geo.GetRasterDataCollectionInput, ...func(*geo.Options)) (*geo.GetRasterDataCollectionOutput, error)
	GetTile(context.Context, *geo.GetTileInput, ...func(*geo.Options)) (*geo.GetTileOutput, error)
	GetVectorEnrichmentJob(context.Context, *geo.GetVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.GetVectorEnrichmentJobOutput, error)
	ListEarthObservationJobs(context.Context, *geo.ListEarthObservationJobsInput, ...func(*geo.Options)) (*geo.ListEarthObservationJobsOutput, error)
	ListRasterDataCollections(context.Context, *geo.ListRasterDataCollectionsInput, ...func(*geo.Options)) (*geo.ListRasterDataCollectionsOutput, error)
	ListTagsForResource(context.Context, *geo.ListTagsForResourceInput, ...func(*geo.Options)) (*geo.ListTagsForResourceOutput, error)
	ListVectorEnrichmentJobs(context.Context, *geo.ListVectorEnrichmentJobsInput, ...func(*geo.Options)) (*geo.ListVectorEnrichmentJobsOutput, error)
	SearchRasterDataCollection(context.Context, *geo.SearchRasterDataCollectionInput, ...func(*geo.Options)) (*geo.SearchRasterDataCollectionOutput, error)
	StartEarthObservationJob(context.Context, *geo.StartEarthObservationJobInput, ...func(*geo.Options)) (*geo.StartEarthObservationJobOutput, error)
	StartVectorEnrichmentJob(context.Context, *geo.StartVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.StartVectorEnrichmentJobOutput, error)
	StopEarthObservationJob(context.Context, *geo.StopEarthObservationJobInput, ...func(*geo.Options)) (*geo.StopEarthObservationJobOutput, error)
	StopVectorEnrichmentJob(context.Context, *geo.StopVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.StopVectorEnrichmentJobOutput, error)
	TagResource(context.Context, *geo.TagResourceInput, ...func(*geo.Options)) (*geo.TagResourceOutput, error)
	UntagResource(context.Context, *geo.UntagResourceInput, ...func(*geo.Options)) (*geo.UntagResourceOutput, error)
}

// S3ListAPI is the S3 surface needed to inspect exported job results.
type S3ListAPI interface {
	ListObjectsV2(context.Context, *s3v2.ListObjectsV2Input, ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
}

var (
	_ GameLiftStreamsAPI = (*gls.Client)(nil)
	_ GeospatialAPI      = (*geo.Client)(nil)
	_ S3ListAPI          = (*s3v2.Client)(nil)
)
