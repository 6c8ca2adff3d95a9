package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lizark9x/connor-bot/config"
	"github.com/lizark9x/connor-bot/internal/bot"
	"github.com/lizark9x/connor-bot/internal/email"
	"github.com/lizark9x/connor-bot/internal/health"
	httptransport "github.com/lizark9x/connor-bot/internal/http"
	"github.com/lizark9x/connor-bot/internal/http/handler"
	ctxlog "github.com/lizark9x/connor-bot/internal/log"
	"github.com/lizark9x/connor-bot/internal/metrics"
	"github.com/lizark9x/connor-bot/internal/notion"
	"github.com/lizark9x/connor-bot/internal/tables"
	"github.com/lizark9x/connor-bot/internal/telegram"
	"github.com/lizark9x/connor-bot/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Remote collaborators. Identity (bot token + chat id) is required;
	// everything else degrades to a disabled feature when unset.
	messenger := telegram.NewSender(cfg.Env, cfg.BotToken, cfg.ChatID, logger)
	deps := map[string]health.Pinger{}
	if botSender, ok := messenger.(*telegram.BotSender); ok {
		deps["telegram"] = botSender
	}

	// Keep the client interfaces nil (not a typed nil) when the document
	// database is not configured, so the core's nil checks work.
	var tableClient bot.TableClient
	var storeClient tables.Client
	tablesCfg := tables.Config{}
	if cfg.NotionToken != "" {
		notionClient := notion.NewClient(cfg.NotionToken, logger)
		tableClient = notionClient
		storeClient = notionClient
		deps["notion"] = notionClient
		tablesCfg = tables.Config{
			Todo:      cfg.NotionTodoDB,
			Projects:  cfg.NotionProjectsDB,
			Website:   cfg.NotionWebsiteDB,
			Budget:    cfg.NotionBudgetDB,
			Jobs:      cfg.NotionJobsDB,
			Inspo:     cfg.NotionInspoDB,
			Habits:    cfg.NotionHabitsDB,
			Templates: cfg.NotionTemplatesDB,
			Schedule:  cfg.NotionScheduleDB,
			Log:       cfg.NotionLogDB,
		}
	}

	var provider bot.WeatherProvider
	if cfg.WeatherAPIKey != "" {
		provider = weather.NewClient(cfg.WeatherAPIKey)
	}

	var emailSender email.Sender
	if cfg.EmailEnabled() {
		emailSender = email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	}

	store := tables.NewStore(storeClient, tablesCfg, loc, logger)

	state := bot.NewState(cfg.CityName)
	cache := bot.NewScheduleCache(tableClient, cfg.NotionScheduleDB,
		time.Duration(cfg.ScheduleRefreshSec)*time.Second, logger)
	selector := bot.NewSelector(tableClient, cfg.NotionTemplatesDB, logger)
	courier := bot.NewCourier(messenger, store, logger)

	tick := bot.NewTickLoop(state, cache, selector, courier, provider, loc,
		time.Duration(cfg.TickIntervalSec)*time.Second, logger)

	executor := bot.NewExecutor(state, cache, courier, store,
		emailSender, cfg.DigestEmail, loc, logger)
	drainer := bot.NewDrainer(tableClient, cfg.NotionCommandsDB, executor,
		time.Duration(cfg.DrainIntervalSec)*time.Second, logger)

	metrics.Register()
	checker := health.NewChecker(deps, logger, prometheus.DefaultRegisterer)

	go tick.Start(ctx)
	go drainer.Start(ctx)

	// Interactive slash commands need a real Bot API connection; the local
	// LogSender has no update stream.
	if botSender, ok := messenger.(*telegram.BotSender); ok {
		listener := bot.NewListener(botSender, cfg.ChatID, executor, tick, state, courier, logger)
		go listener.Start(ctx)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, handler.NewKeepAlive(courier, logger)),
	}
	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("keep-alive server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	logger.Info("connor started", "city", cfg.CityName, "tz", cfg.Timezone)

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
