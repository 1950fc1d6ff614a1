package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/config"
	"github.com/yerkanat/wordorder-bot/internal/delivery/telegram"
	"github.com/yerkanat/wordorder-bot/internal/logger"
	"github.com/yerkanat/wordorder-bot/internal/repository"
	"github.com/yerkanat/wordorder-bot/internal/service"
	"github.com/yerkanat/wordorder-bot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "quiz",
			Description: "Start a timed round",
		},
		{
			Command:     "help",
			Description: "How to play",
		},
	}

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: cfg.Bank.FetchTimeout}
	questionRepo := repository.NewQuestionRepository(cfg.Bank.URL, client, zl)

	// The bank may come back on a scheduled refresh; until then starting a
	// quiz surfaces the load error to the user.
	if _, err := questionRepo.Questions(ctx); err != nil {
		zl.Warn("initial question bank load failed", zap.Error(err))
	}

	refresher := service.NewBankRefresher(questionRepo, cfg.Bank.RefreshSchedule, zl)
	go refresher.Start(ctx)

	quizCfg := service.QuizConfig{
		QuestionCount: cfg.Quiz.QuestionCount,
		TimeBudget:    cfg.Quiz.TimeBudget,
	}

	newEngine := func() *service.QuizEngine {
		// Selection and word-pool shuffles get independent sources.
		selectorRNG := rand.New(rand.NewSource(time.Now().UnixNano()))
		poolRNG := rand.New(rand.NewSource(time.Now().UnixNano()))
		return service.NewQuizEngine(questionRepo, service.NewSelector(selectorRNG), poolRNG, quizCfg, zl)
	}

	store := storage.NewSessionStorage()
	handler := telegram.NewHandler(bot, zl, store, newEngine)

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown complete")
}
