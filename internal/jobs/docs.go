// Package jobs provides scheduled background tasks for the shipment service.
//
// Jobs are cron schedules built with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BlockProducerJob - seals an empty block on the local ledger every BLOCK_INTERVAL
// so confirmations accrue while no transactions arrive
// 2. HeadWatcherJob - reads the ledger head and reports it to the block height metric
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewBlockProducerJob(chain, 5*time.Second, logger),
//		jobs.NewHeadWatcherJob(chain.Head, metrics, time.Second, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed ticks are logged and retried on the next tick. A tick still running
// when the next one is due is skipped.
package jobs
