package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

type seedRunner interface {
	Seed(ctx context.Context) ([]SeedResult, error)
}

// StartSeedCron runs the seeder on a cron schedule such as "@daily" or
// "0 3 * * *". The caller stops the returned scheduler on shutdown.
func StartSeedCron(seeder seedRunner, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, seedJob(seeder)); err != nil {
		return nil, fmt.Errorf("invalid seed schedule %q: %w", spec, err)
	}
	c.Start()
	log.Printf("✅ Scheduled seeding enabled (%s)", spec)
	return c, nil
}

// seedJob skips a tick while the previous run is still going.
func seedJob(seeder seedRunner) func() {
	var running sync.Mutex
	return func() {
		if !running.TryLock() {
			log.Println("⚠️  Previous seed run still in progress — skipping")
			return
		}
		defer running.Unlock()

		results, err := seeder.Seed(context.Background())
		if err != nil {
			log.Printf("❌ Scheduled seeding failed after %d cities: %v", len(results), err)
			return
		}
		log.Printf("✅ Scheduled seeding complete: %d cities", len(results))
	}
}
