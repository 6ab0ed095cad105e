package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/bot"
	"github.com/example/murojaahbot/internal/config"
	"github.com/example/murojaahbot/internal/database"
	"github.com/example/murojaahbot/internal/httpapi"
	"github.com/example/murojaahbot/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, the reminder scheduler and the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env")
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	accounts := database.NewAccountRepository(db)

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	botCfg := bot.DefaultConfig()
	botCfg.Location = cfg.Location
	botCfg.DefaultReminderHour = cfg.DefaultReminderHour
	botCfg.AdminUserIDs = cfg.AdminUserIDs
	b := bot.New(botAPI, api.New(cfg.APIURL, cfg.APITimeout), accounts, botCfg)

	if cfg.SchedulerEnabled {
		s := scheduler.New(b, accounts, cfg.Location)
		if err := s.Start(); err != nil {
			return err
		}
		defer s.Stop()
	}

	if cfg.HTTPAddr != "" {
		srv := httpapi.New(cfg.HTTPAddr)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("HTTP server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during HTTP shutdown: %v", err)
			}
		}()
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := botAPI.GetUpdatesChan(updateConfig)

	log.Println("Bot started. Press Ctrl+C to stop.")
	err = b.Run(ctx, updates)
	botAPI.StopReceivingUpdates()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("Bot stopped successfully")
	return nil
}
