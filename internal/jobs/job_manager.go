package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs of the process. Either job
// may be absent.
type JobManager struct {
	blockProducer *BlockProducerJob
	headWatcher   *HeadWatcherJob
}

func NewJobManager(blockProducer *BlockProducerJob, headWatcher *HeadWatcherJob) *JobManager {
	return &JobManager{
		blockProducer: blockProducer,
		headWatcher:   headWatcher,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.headWatcher != nil {
		if err := jm.headWatcher.Start(); err != nil {
			return fmt.Errorf("failed to start head watcher job: %w", err)
		}
	}

	if jm.blockProducer != nil {
		if err := jm.blockProducer.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.headWatcher != nil {
				jm.headWatcher.Stop()
			}
			return fmt.Errorf("failed to start block producer job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	if jm.blockProducer != nil {
		jm.blockProducer.Stop()
	}
	if jm.headWatcher != nil {
		jm.headWatcher.Stop()
	}
}
