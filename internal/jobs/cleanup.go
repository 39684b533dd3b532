package jobs

import (
	"time"

	"github.com/rs/zerolog/log"
)

// SessionPurger evicts pairing sessions that have been expired for longer
// than the retention window. Implemented by pairing.Registry.
type SessionPurger interface {
	PurgeExpired(retention time.Duration) int
}

// CleanupJob enforces the pairing retention policy: expired sessions stay
// visible for the retention window (so a client can still observe the
// expired status), then get evicted instead of accumulating forever.
type CleanupJob struct {
	purger    SessionPurger
	retention time.Duration
	interval  time.Duration
	done      chan struct{}
}

func NewCleanupJob(purger SessionPurger, retention, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		purger:    purger,
		retention: retention,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Dur("retention", j.retention).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	if purged := j.purger.PurgeExpired(j.retention); purged > 0 {
		log.Info().Int("count", purged).Msg("purged expired pairing sessions")
	}
}
