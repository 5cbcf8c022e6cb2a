package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/juniorcleaning/cleaning-app/app"
)

const maxShellIdle = 30 * time.Minute

// StartCronJobs initializes and starts the scheduler that prunes idle
// application shells.
func StartCronJobs(registry *app.Registry) {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Every 10 minutes, drop shells nobody has touched for a while
	_, err := c.AddFunc("*/10 * * * *", func() {
		pruneIdleShells(registry)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for shell pruning")
}

func pruneIdleShells(registry *app.Registry) {
	n := registry.PruneIdle(maxShellIdle)
	if n > 0 {
		log.Printf("Pruned %d idle app shells", n)
	}
}
