package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/annapclub/clarity-bot/internal/broadcast"
	"github.com/annapclub/clarity-bot/internal/config"
	"github.com/annapclub/clarity-bot/internal/deck"
	"github.com/annapclub/clarity-bot/internal/digest"
	"github.com/annapclub/clarity-bot/internal/handlers"
	"github.com/annapclub/clarity-bot/internal/ledger"
	"github.com/annapclub/clarity-bot/internal/messages"
	"github.com/annapclub/clarity-bot/internal/middleware"
	"github.com/annapclub/clarity-bot/internal/stats"
	"github.com/annapclub/clarity-bot/store"
	"github.com/annapclub/clarity-bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func main() {
	cfg := config.New()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var sessions types.SessionStore
	rdb, err := store.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "clarity_bot")
	if err != nil {
		log.Printf("Redis unavailable (%v), keeping sessions in memory", err)
		sessions = store.NewMemorySessionStore()
	} else {
		defer rdb.Close()
		sessions = store.NewRedisSessionStore(rdb, cfg.SessionTTL)
	}

	var users types.UserStore
	var events types.EventLog
	if cfg.PostgresDSN != "" || os.Getenv("POSTGRES_HOST") != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pgStore.Close()
		users = pgStore
		events = pgStore
	} else {
		log.Println("POSTGRES_DSN not set, keeping users and events in memory")
		mem := store.NewMemoryStore()
		users = mem
		events = mem
	}

	var usage ledger.Ledger
	switch cfg.LedgerBackend {
	case "file":
		usage, err = ledger.NewFileLedger(cfg.UsageFilePath)
		if err != nil {
			log.Fatalf("Failed to open usage file %s: %v", cfg.UsageFilePath, err)
		}
	default:
		usage = ledger.NewEventLedger(events)
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		cfg.BotToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
	)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	broadcaster := broadcast.NewBroadcaster(users, events, b, broadcast.Config{
		Delay: cfg.BroadcastDelay,
	})
	broadcaster.Start()
	defer broadcaster.Stop()

	h := handlers.NewHandlers(users, events, usage, sessions, deck.New(), b, broadcaster, handlers.Config{
		OwnerUsername:    cfg.OwnerUsername,
		ChannelLink:      cfg.ChannelLink,
		WelcomePhotoPath: cfg.WelcomePhotoPath,
	})

	middlewares := middleware.NewMessageAnalyzer(users, sessions, b)

	handlerChain := middlewares.ResolveUserMiddleware(
		middlewares.AnalyzeMessageMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	if cfg.DigestCron != "" && cfg.OwnerChatID != 0 {
		digestScheduler := digest.New(cfg.DigestCron, func(ctx context.Context) error {
			summary, err := stats.Collect(users, events, time.Now().UTC())
			if err != nil {
				return err
			}
			_, err = b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: cfg.OwnerChatID,
				Text:   messages.Stats(summary.TotalUsers, summary.Subscribed, summary.ActiveWeek, summary.DrawsWeek),
			})
			return err
		})
		if err := digestScheduler.Start(); err != nil {
			log.Fatalf("Failed to start digest scheduler: %v", err)
		}
		defer digestScheduler.Stop()
	}

	log.Println("Bot started. Press Ctrl+C to stop.")
	b.Start(ctx)
}
