// Package service holds the logic the handlers share that is more than
// a single store call
package service

import (
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const DefaultSampleVideoURL = "https://sample-videos.com/video321/mp4/720/big_buck_bunny_720p_1mb.mp4"

type GenerateInput struct {
	Prompt            string
	Duration          int
	Style             model.Style
	AspectRatio       string
	Variations        int
	ReferenceImageIDs []string
	ImageToVideoIDs   []string
}

type GenerateResult struct {
	RequestID primitive.ObjectID
	Jobs      []model.VideoJob
}

// Generator fabricates finished jobs. Nothing is rendered, every job
// points at the same sample video
type Generator struct {
	Store    store.Store
	VideoURL string
	// Now is swapped out in tests
	Now func() time.Time
}

func NewGenerator(s store.Store, videoURL string) *Generator {
	if videoURL == "" {
		videoURL = DefaultSampleVideoURL
	}

	return &Generator{
		Store:    s,
		VideoURL: videoURL,
		Now:      model.Now,
	}
}

// Generate stores the request and then one job per variation. Input is
// expected to be validated already.
//
// Jobs are written one after another without a transaction. If a write
// fails the jobs before it stay in the store and the error lists them
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if in.ReferenceImageIDs == nil {
		in.ReferenceImageIDs = []string{}
	}
	if in.ImageToVideoIDs == nil {
		in.ImageToVideoIDs = []string{}
	}

	now := g.Now()

	req := model.VideoRequest{
		Prompt:            in.Prompt,
		Duration:          in.Duration,
		Style:             in.Style,
		AspectRatio:       in.AspectRatio,
		Variations:        in.Variations,
		ReferenceImageIDs: in.ReferenceImageIDs,
		ImageToVideoIDs:   in.ImageToVideoIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	reqID, err := g.Store.Insert(ctx, model.CollectionVideoRequest, req)
	if err != nil {
		return nil, fmt.Errorf("failed to store video request, %w", err)
	}

	res := &GenerateResult{
		RequestID: reqID,
		Jobs:      make([]model.VideoJob, 0, in.Variations),
	}

	for i := range in.Variations {
		url := g.VideoURL

		job := model.VideoJob{
			RequestID:         reqID,
			Prompt:            in.Prompt,
			Status:            model.JobStatusCompleted,
			Duration:          in.Duration,
			Style:             in.Style,
			AspectRatio:       in.AspectRatio,
			ReferenceImageIDs: in.ReferenceImageIDs,
			ImageToVideoIDs:   in.ImageToVideoIDs,
			VariationIndex:    i,
			VideoURL:          &url,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		jobID, err := g.Store.Insert(ctx, model.CollectionVideoJob, job)
		if err != nil {
			written := make([]string, 0, len(res.Jobs))
			for _, j := range res.Jobs {
				written = append(written, j.ID.Hex())
			}

			zap.L().Error("Video job fan-out stopped partway, written jobs are left in place",
				zap.String("request_id", reqID.Hex()),
				zap.Int("variation_index", i),
				zap.Strings("written_job_ids", written),
				zap.Error(err))

			return nil, &PartialFanOutError{
				RequestID: reqID,
				Written:   len(res.Jobs),
				Requested: in.Variations,
				Err:       err,
			}
		}

		job.ID = jobID
		res.Jobs = append(res.Jobs, job)
	}

	return res, nil
}

// PartialFanOutError is returned when only some jobs of a request could
// be written
type PartialFanOutError struct {
	RequestID primitive.ObjectID
	Written   int
	Requested int
	Err       error
}

func (e *PartialFanOutError) Error() string {
	return fmt.Sprintf("stored %d of %d video jobs for request %s, %v", e.Written, e.Requested, e.RequestID.Hex(), e.Err)
}

func (e *PartialFanOutError) Unwrap() error {
	return e.Err
}
