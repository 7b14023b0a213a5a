package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
)

// Ingester is the slice of the ingest service the pull job needs.
type Ingester interface {
	Ingest(ctx context.Context, source attendance.Source, punches []attendance.RawPunch) (attendance.IngestResult, error)
}

// PullJobs periodically drains punch sources that must be polled rather
// than pushing to us (legacy devices behind a pull-sync gateway).
type PullJobs struct {
	sources  []attendance.PunchSource
	ingester Ingester
	interval time.Duration
}

func NewPullJobs(sources []attendance.PunchSource, ingester Ingester, interval time.Duration) *PullJobs {
	return &PullJobs{
		sources:  sources,
		ingester: ingester,
		interval: interval,
	}
}

func (j *PullJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("punch_pull_sync", j.interval, j.PullPunches)
}

func (j *PullJobs) PullPunches(ctx context.Context) error {
	for _, source := range j.sources {
		punches, err := source.Pull(ctx)
		if err != nil {
			slog.Error("Punch source pull failed", "error", err)
			continue
		}
		if len(punches) == 0 {
			continue
		}

		result, err := j.ingester.Ingest(ctx, attendance.SourcePull, punches)
		if err != nil {
			slog.Error("Pulled batch ingestion failed", "error", err, "punches", len(punches))
			continue
		}
		slog.Info("Pulled batch ingested",
			"consolidated", result.Consolidated,
			"unmatched", result.Unmatched,
			"skipped", result.Skipped,
		)
	}
	return nil
}
