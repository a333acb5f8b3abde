package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/finops-lab/compliancebot/pkg/domain/model"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/finops-lab/compliancebot/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func TestThreadState(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	threadID := types.NewThreadID("C123", "", "1700000000.000100")

	t.Run("get before put reports absent", func(t *testing.T) {
		records, ok, err := repo.ThreadState().Get(ctx, threadID)
		gt.NoError(t, err)
		gt.Bool(t, ok).False()
		gt.Array(t, records).Length(0)
	})

	t.Run("put then get returns the records", func(t *testing.T) {
		batch := model.DemoExpenseBatch()
		gt.NoError(t, repo.ThreadState().Put(ctx, threadID, batch))

		records, ok, err := repo.ThreadState().Get(ctx, threadID)
		gt.NoError(t, err)
		gt.Bool(t, ok).True()
		gt.Value(t, records).Equal(batch)
	})

	t.Run("second put overwrites, not merges", func(t *testing.T) {
		replacement := []model.ExpenseRecord{
			{User: "solo", Amount: 100},
		}
		gt.NoError(t, repo.ThreadState().Put(ctx, threadID, replacement))

		records, ok, err := repo.ThreadState().Get(ctx, threadID)
		gt.NoError(t, err)
		gt.Bool(t, ok).True()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0].User).Equal("solo")
	})

	t.Run("threads are independent", func(t *testing.T) {
		other := types.NewThreadID("C999", "", "1700000000.000200")
		_, ok, err := repo.ThreadState().Get(ctx, other)
		gt.NoError(t, err)
		gt.Bool(t, ok).False()
	})

	t.Run("stored records are isolated from caller mutation", func(t *testing.T) {
		batch := []model.ExpenseRecord{{User: "a", Amount: 10}}
		gt.NoError(t, repo.ThreadState().Put(ctx, threadID, batch))

		batch[0].User = "mutated"

		records, _, err := repo.ThreadState().Get(ctx, threadID)
		gt.NoError(t, err)
		gt.Value(t, records[0].User).Equal("a")
	})
}

func TestAnalysis(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	record := &model.AnalysisRecord{
		ID:          "rec-1",
		DocumentID:  "F123",
		RequesterID: "U123",
		Filename:    "policy.pdf",
		ExtractedAt: time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC),
		Rules:       "1. Receipts required",
		SourceChars: 1234,
	}

	t.Run("put and get", func(t *testing.T) {
		gt.NoError(t, repo.Analysis().Put(ctx, record))

		got, err := repo.Analysis().Get(ctx, "rec-1")
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(record)
	})

	t.Run("get unknown ID fails", func(t *testing.T) {
		_, err := repo.Analysis().Get(ctx, "nope")
		gt.Error(t, err)
	})

	t.Run("put without ID fails", func(t *testing.T) {
		gt.Error(t, repo.Analysis().Put(ctx, &model.AnalysisRecord{DocumentID: "F1"}))
	})

	t.Run("list by requester newest first", func(t *testing.T) {
		newer := &model.AnalysisRecord{
			ID:          "rec-2",
			DocumentID:  "F456",
			RequesterID: "U123",
			Filename:    "policy_v2.pdf",
			ExtractedAt: time.Date(2025, 6, 26, 12, 0, 0, 0, time.UTC),
		}
		gt.NoError(t, repo.Analysis().Put(ctx, newer))

		records, err := repo.Analysis().ListByRequester(ctx, "U123")
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		gt.Value(t, records[0].ID).Equal("rec-2")
		gt.Value(t, records[1].ID).Equal("rec-1")
	})
}
