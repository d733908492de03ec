package scheduler

import (
	"github.com/filedrop/filedrop/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/robfig/cron/v3"
)

// A Controller is an Inversion Of Control pattern used to init the scheduler package.
type Controller struct {
	Logger        logger.Logger
	Storage       storage.Backend
	Specification string
}

// Start launches the scheduler asynchronously.
// It periodically removes the empty bucket directories left behind by
// aborted requests.
func Start(c Controller) {
	cron := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	log := c.Logger.WithPrefix("[scheduler]")

	_, err := cron.AddFunc(c.Specification, func() {
		if err := c.Storage.Cleanup(); err != nil {
			log.Error(err)
			return
		}
		log.Info("Storage cleanup")
	})
	if err != nil {
		panic(err)
	}
	log.Info("Storage cleanup task registred")

	cron.Start()
	log.Info("Scheduler is running")
}
