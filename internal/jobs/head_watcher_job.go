package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// HeadReader returns the current block height of a ledger.
type HeadReader func(ctx context.Context) (uint64, error)

// HeightRecorder is told the latest observed block height.
type HeightRecorder interface {
	SetBlockHeight(height uint64)
}

// HeadWatcherJob polls the ledger head and reports it, which keeps the block
// height metric current for ledgers this process does not seal blocks for.
type HeadWatcherJob struct {
	head     HeadReader
	recorder HeightRecorder
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewHeadWatcherJob(head HeadReader, recorder HeightRecorder, interval time.Duration, logger *slog.Logger) *HeadWatcherJob {
	if interval < time.Second {
		interval = time.Second
	}
	return &HeadWatcherJob{
		head:     head,
		recorder: recorder,
		interval: interval,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "head_watcher_job"),
	}
}

func (j *HeadWatcherJob) Start() error {
	_, err := j.cron.AddFunc(every(j.interval), j.poll)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Head watcher job started", "interval", j.interval.String())
	return nil
}

func (j *HeadWatcherJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Head watcher job stopped")
}

func (j *HeadWatcherJob) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	height, err := j.head(ctx)
	if err != nil {
		j.logger.WarnContext(ctx, "Reading ledger head failed", "error", err)
		return
	}
	j.recorder.SetBlockHeight(height)
}
