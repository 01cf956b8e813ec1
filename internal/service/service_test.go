package service

import (
	"bitwise74/videogen-api/internal/model"
	"bitwise74/videogen-api/internal/store"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// flakyStore fails every insert into failOn after the first okInserts
type flakyStore struct {
	*store.Memory
	failOn    string
	okInserts int
	inserts   int
}

func (f *flakyStore) Insert(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	if collection == f.failOn {
		if f.inserts >= f.okInserts {
			return primitive.NilObjectID, errors.New("disk full")
		}
		f.inserts++
	}

	return f.Memory.Insert(ctx, collection, doc)
}

type brokenCollections struct {
	*store.Memory
}

func (brokenCollections) Collections(context.Context) ([]string, error) {
	return nil, errors.New(strings.Repeat("x", 200))
}

func sampleInput(variations int) GenerateInput {
	return GenerateInput{
		Prompt:      "a dog running",
		Duration:    5,
		Style:       model.StyleCinematic,
		AspectRatio: "16:9",
		Variations:  variations,
	}
}

func TestGenerateFansOut(t *testing.T) {
	ctx := context.Background()

	for v := model.MinVariations; v <= model.MaxVariations; v++ {
		mem := store.NewMemory()
		g := NewGenerator(mem, "")

		res, err := g.Generate(ctx, sampleInput(v))
		require.NoError(t, err)
		require.Len(t, res.Jobs, v)

		seen := map[int]bool{}
		for _, j := range res.Jobs {
			assert.False(t, j.ID.IsZero())
			assert.Equal(t, res.RequestID, j.RequestID)
			assert.Equal(t, model.JobStatusCompleted, j.Status)
			assert.Equal(t, "a dog running", j.Prompt)
			assert.Equal(t, 5, j.Duration)
			assert.Equal(t, model.StyleCinematic, j.Style)
			assert.Equal(t, "16:9", j.AspectRatio)
			require.NotNil(t, j.VideoURL)
			assert.Equal(t, DefaultSampleVideoURL, *j.VideoURL)
			assert.False(t, j.Saved)
			seen[j.VariationIndex] = true
		}

		for i := range v {
			assert.True(t, seen[i], "missing variation %d", i)
		}

		jobs, err := store.FindAll[model.VideoJob](ctx, mem, model.CollectionVideoJob, store.FindOptions{})
		require.NoError(t, err)
		assert.Len(t, jobs, v)

		reqs, err := store.FindAll[model.VideoRequest](ctx, mem, model.CollectionVideoRequest, store.FindOptions{})
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, v, reqs[0].Variations)
		assert.Equal(t, []string{}, reqs[0].ReferenceImageIDs)
	}
}

func TestGenerateUsesClockAndURL(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	g := NewGenerator(store.NewMemory(), "https://cdn.example.com/demo.mp4")
	g.Now = func() time.Time { return fixed }

	res, err := g.Generate(context.Background(), sampleInput(2))
	require.NoError(t, err)

	for _, j := range res.Jobs {
		assert.Equal(t, fixed, j.CreatedAt)
		assert.Equal(t, "https://cdn.example.com/demo.mp4", *j.VideoURL)
	}
}

func TestGeneratePartialFailureKeepsWrittenJobs(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Memory: store.NewMemory(), failOn: model.CollectionVideoJob, okInserts: 2}

	_, err := NewGenerator(fs, "").Generate(ctx, sampleInput(4))
	require.Error(t, err)

	var pe *PartialFanOutError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Written)
	assert.Equal(t, 4, pe.Requested)
	assert.False(t, pe.RequestID.IsZero())

	jobs, err := store.FindAll[model.VideoJob](ctx, fs.Memory, model.CollectionVideoJob, store.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestGenerateRequestInsertFails(t *testing.T) {
	_, err := NewGenerator(store.NewUnavailable(nil), "").Generate(context.Background(), sampleInput(1))
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestDiagnose(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		r := Diagnose(ctx, store.NewUnavailable(store.ErrNotConfigured), false)
		assert.Equal(t, StatusUnavailable, r.Status)
		assert.Equal(t, "Available but not initialized", r.Database)
		assert.Nil(t, r.DatabaseURL)
		assert.Nil(t, r.DatabaseName)
		assert.Empty(t, r.Collections)
	})

	t.Run("unreachable", func(t *testing.T) {
		r := Diagnose(ctx, store.NewUnavailable(errors.New("connection refused")), true)
		assert.Equal(t, StatusUnavailable, r.Status)
		assert.Equal(t, "Error: connection refused", r.Database)
		assert.Nil(t, r.DatabaseURL)
	})

	t.Run("url reported once connected", func(t *testing.T) {
		r := Diagnose(ctx, store.NewMemory(), false)
		require.NotNil(t, r.DatabaseURL)
		assert.Equal(t, "Not Set", *r.DatabaseURL)

		r = Diagnose(ctx, store.NewMemory(), true)
		require.NotNil(t, r.DatabaseURL)
		assert.Equal(t, "Set", *r.DatabaseURL)
	})

	t.Run("ok", func(t *testing.T) {
		mem := store.NewMemory()
		_, err := mem.Insert(ctx, model.CollectionUpload, model.Upload{Filename: "a"})
		require.NoError(t, err)

		r := Diagnose(ctx, mem, true)
		assert.Equal(t, StatusOK, r.Status)
		assert.Equal(t, "Connected", r.ConnectionStatus)
		require.NotNil(t, r.DatabaseName)
		assert.Equal(t, "memory", *r.DatabaseName)
		assert.Equal(t, []string{model.CollectionUpload}, r.Collections)
	})

	t.Run("degraded", func(t *testing.T) {
		r := Diagnose(ctx, brokenCollections{store.NewMemory()}, true)
		assert.Equal(t, StatusDegraded, r.Status)
		assert.Equal(t, "Connected", r.ConnectionStatus)
		assert.Equal(t, "Connected but Error: "+strings.Repeat("x", 80), r.Database)
	})
}

func TestTruncateKeepsRunes(t *testing.T) {
	long := strings.Repeat("é", 100)

	got := truncate(long)
	assert.Equal(t, strings.Repeat("é", 80), got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "short", truncate("short"))
}
