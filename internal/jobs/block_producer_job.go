package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// BlockMiner seals empty blocks on a local ledger.
type BlockMiner interface {
	Mine(ctx context.Context) (uint64, error)
}

// BlockProducerJob seals an empty block on every tick so that transactions
// waiting for confirmations make progress when nothing else is submitted.
type BlockProducerJob struct {
	miner    BlockMiner
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBlockProducerJob(miner BlockMiner, interval time.Duration, logger *slog.Logger) *BlockProducerJob {
	return &BlockProducerJob{
		miner:    miner,
		interval: interval,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "block_producer_job"),
	}
}

// Start schedules the job. The interval must be at least one second.
func (j *BlockProducerJob) Start() error {
	if j.interval < time.Second {
		return fmt.Errorf("block interval %s is shorter than one second", j.interval)
	}

	_, err := j.cron.AddFunc(every(j.interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.interval)
		defer cancel()

		height, err := j.miner.Mine(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Block producer job failed", "error", err)
			return
		}
		j.logger.DebugContext(ctx, "Empty block sealed", "height", height)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Block producer job started", "interval", j.interval.String())
	return nil
}

func (j *BlockProducerJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Block producer job stopped")
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
