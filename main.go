package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"helyi-torpe/config"
	"helyi-torpe/handler"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:           "torpe",
		Short:         "A Helyi Törpe Discord bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBot,
	}
	root.AddCommand(minesweeperCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ConfigureLogger(log)

	router, err := handler.NewRouter(cfg, log)
	if err != nil {
		return err
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return errors.WrapIf(err, "creating Discord session")
	}

	dg.AddHandler(onReady)
	dg.AddHandler(router.InteractionCreate)

	// Message content is needed to see attachments when /meme reads the history.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	if err = dg.Open(); err != nil {
		return errors.WrapIf(err, "opening connection")
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.WithError(err).Error("Failed to close Discord session")
			return
		}
		log.Info("Closed Discord session")
	}()

	log.WithField("guild", cfg.GuildID).Info("Registering slash commands...")
	cmds, err := handler.Register(dg, dg.State.User.ID, cfg.GuildID)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		log.WithField("command", c.Name).Debug("Registered command")
	}

	log.Info("Bot is running with slash commands active.")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, ":"+cfg.Port)
}

// serve exposes the keepalive page and metrics until ctx is done.
func serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Discord Bot is running.")
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.WrapIf(err, "http server")
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.WrapIf(srv.Shutdown(shutdownCtx), "http server shutdown")
}

func onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(logrus.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Session opened")
}
