package movies

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSyncScheduler refreshes the catalog from TMDb once a day at 03:00
// UTC. The returned scheduler should be shut down on exit.
func (h *Handlers) StartSyncScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			count, err := h.Sync(ctx)
			if err != nil {
				log.Printf("[CatalogSync] Sync failed: %v", err)
				return
			}
			log.Printf("[CatalogSync] Refreshed %d movies", count)
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	log.Println("Catalog sync scheduler started (03:00 UTC)")
	return s, nil
}
