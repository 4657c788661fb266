package services

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSeeder struct {
	calls   int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingSeeder) Seed(context.Context) ([]SeedResult, error) {
	atomic.AddInt32(&b.calls, 1)
	b.started <- struct{}{}
	<-b.release
	return nil, nil
}

func TestStartSeedCronRejectsBadSchedule(t *testing.T) {
	c, err := StartSeedCron(&blockingSeeder{}, "every tuesday-ish")
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestStartSeedCron(t *testing.T) {
	c, err := StartSeedCron(&blockingSeeder{}, "@daily")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}

func TestSeedJobSkipsOverlappingRuns(t *testing.T) {
	seeder := &blockingSeeder{started: make(chan struct{}), release: make(chan struct{})}
	job := seedJob(seeder)

	done := make(chan struct{})
	go func() {
		job()
		close(done)
	}()
	<-seeder.started

	job() // returns immediately while the first run holds the lock
	assert.Equal(t, int32(1), atomic.LoadInt32(&seeder.calls))

	close(seeder.release)
	<-done
}

func TestSeedJobLogsFailures(t *testing.T) {
	catalog := newMemoryCatalog()
	catalog.failOn = "Paris"
	seeder := NewCatalogSeeder(&fakeDirectory{}, NewImageResolver(nil), catalog)

	seedJob(seeder)()

	assert.Empty(t, catalog.destinations)
}
