package main

import (
	"log"
	"tubemetrics/internal/config"
	"tubemetrics/pkg/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load("YOUTUBE_CHANNEL_ID")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{},
	)

	task, err := tasks.NewCollectStatsTask(cfg.YouTubeChannelID)
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	_, err = scheduler.Register(cfg.CollectSchedule, task)
	if err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	log.Printf("Scheduler starting (commit: %s), collecting %s on %q", CommitSHA, cfg.YouTubeChannelID, cfg.CollectSchedule)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
