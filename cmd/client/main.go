package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassista/go_observe/internal/config"
	"github.com/bassista/go_observe/internal/httpclient"
	"github.com/bassista/go_observe/internal/logger"
	"github.com/bassista/go_observe/internal/model"
	"github.com/bassista/go_observe/internal/service"
	"github.com/bassista/go_observe/internal/stream"
)

func main() {
	noteID := flag.String("note", "", "also fetch the note with this id")
	flag.Parse()

	log := logger.WithComponent("client")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		log.Warnf("invalid log level '%s': %v", cfg.Misc.LogLevel, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.New(cfg.Client.Timeout)
	users := service.NewUserService(ctx, client, cfg.Client.UserURL())
	notes := service.NewNoteService(client, cfg.Client.NoteURL())

	stream.Observe(ctx, users.User(),
		func(u model.User) {
			log.Infof("user: %s <%s>", u.FullName(), u.Email)
		},
		func(err error) {
			log.Debugf("user subscription ended: %v", err)
		},
	)

	stream.Observe(ctx, notes.FindAll(),
		func(all []model.Note) {
			log.Infof("fetched %d notes", len(all))
			for _, n := range all {
				log.Infof("  %q by %s", n.Title, n.Author)
			}
		},
		func(err error) {
			if err != nil {
				log.Errorf("cannot fetch notes: %v", err)
			}
		},
	)

	if *noteID != "" {
		stream.Observe(ctx, notes.FindOne(*noteID),
			func(n model.Note) {
				log.Infof("note %s: %q by %s: %s", *noteID, n.Title, n.Author, n.Body)
			},
			func(err error) {
				if err != nil {
					log.Errorf("cannot fetch note %s: %v", *noteID, err)
				}
			},
		)
	}

	var refreshDone <-chan struct{}
	if cfg.Client.RefreshSchedule != "" {
		refreshDone, err = service.ScheduleRefresh(ctx, cfg.Client.RefreshSchedule, cfg.Client.Timeout, users)
		if err != nil {
			log.Errorf("cannot schedule user refresh: %v", err)
			os.Exit(1)
		}
		log.Infof("user refresh scheduled: %s", cfg.Client.RefreshSchedule)
	}

	<-ctx.Done()
	log.Info("shutting down")
	if refreshDone != nil {
		<-refreshDone
	}
}
