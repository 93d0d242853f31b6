package cronjob

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"
)

// Job is a unit of periodic work.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler runs registered jobs on cron schedules. A job still running when
// its next tick fires is skipped for that tick.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Infof("[Cron] scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Infof("[Cron] scheduler stopped")
}

// AddJob registers job under schedule, e.g. "@every 30s" or "0 9 * * MON-FRI".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(context.Background(), job); err != nil {
			log.Errorf("[Cron] job %s failed: %v", job.Name(), err)
		}
	})
	if err != nil {
		return err
	}

	log.Infof("[Cron] job %s registered on %q", job.Name(), schedule)
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	log.Debugf("[Cron] running job %s", job.Name())
	return job.Run(ctx)
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
