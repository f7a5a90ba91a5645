package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gopkg.in/telebot.v4"

	"github.com/uzquiz/quizbot/internal/app/handlers/http/get_test_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/http/submit_result_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/admin_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/delete_test_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/ingest_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/rating_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/start_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/tests_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/unlock_handler"
	"github.com/uzquiz/quizbot/internal/app/handlers/telegram/users_count_handler"
	"github.com/uzquiz/quizbot/internal/app/middleware"
	catalogRepo "github.com/uzquiz/quizbot/internal/domain/catalog/repository"
	catalogService "github.com/uzquiz/quizbot/internal/domain/catalog/service"
	quizService "github.com/uzquiz/quizbot/internal/domain/quiz/service"
	referralRepo "github.com/uzquiz/quizbot/internal/domain/referral/repository"
	referralService "github.com/uzquiz/quizbot/internal/domain/referral/service"
	resultsRepo "github.com/uzquiz/quizbot/internal/domain/results/repository"
	resultsService "github.com/uzquiz/quizbot/internal/domain/results/service"
	"github.com/uzquiz/quizbot/internal/infra/config"
	telegramInfra "github.com/uzquiz/quizbot/internal/infra/telegram"
)

type Services struct {
	catalogService  *catalogService.CatalogService
	referralService *referralService.ReferralService
	quizService     *quizService.QuizService
	resultService   *resultsService.ResultService
}

type App struct {
	config *config.Config
	log    *zap.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	Services
}

func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := InitDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("database connected")

	// Бот создается до сервисов: уведомитель оператора отправляет через него.
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.PollInterval},
		OnError: func(err error, c telebot.Context) {
			log.Error("telegram handler error", zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}

	app := &App{
		config: cfg,
		log:    log,
		bot:    bot,
		db:     db,
	}

	app.initServices()

	return app, nil
}

// initServices инициализирует репозитории и сервисы.
func (app *App) initServices() {
	testRepo := catalogRepo.NewTestRepository(app.db)
	userRepo := referralRepo.NewUserRepository(app.db)
	resultRepo := resultsRepo.NewResultRepository(app.db)

	notifier := telegramInfra.NewAdminNotifier(app.bot, app.config.AdminID)

	app.catalogService = catalogService.NewCatalogService(testRepo)
	app.referralService = referralService.NewReferralService(userRepo)
	app.quizService = quizService.NewQuizService(app.catalogService)
	app.resultService = resultsService.NewResultService(resultRepo, notifier, app.log)
}

// ListenAndServeTelegram запускает сервер Telegram бота.
func (app *App) ListenAndServeTelegram() error {
	app.bootstrapHandlersTelegram()

	go app.bot.Start()
	app.log.Info("telegram bot started", zap.String("username", app.bot.Me.Username))

	return nil
}

// bootstrapHandlersTelegram регистрирует обработчики для бота.
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover(app.log))
	if app.config.Debug {
		app.bot.Use(middleware.Logger(app.log))
	}

	adminID := app.config.AdminID

	app.bot.Handle("/start", start_handler.NewStartHandler(app.referralService, adminID, app.config.WebAppURL, app.log).GetHandlerFunc())
	app.bot.Handle("/admin", admin_handler.NewAdminHandler(adminID).GetHandlerFunc())
	app.bot.Handle("/tests", tests_handler.NewTestsHandler(app.catalogService, adminID, app.log).GetHandlerFunc())
	app.bot.Handle("/rating", rating_handler.NewRatingHandler(app.resultService, adminID, app.log).GetHandlerFunc())
	app.bot.Handle("/users_count", users_count_handler.NewUsersCountHandler(app.referralService, adminID, app.log).GetHandlerFunc())
	app.bot.Handle("/delete_test", delete_test_handler.NewDeleteTestHandler(app.catalogService, adminID, app.log).GetHandlerFunc())
	app.bot.Handle("/unlock", unlock_handler.NewUnlockHandler(app.referralService, app.log).GetHandlerFunc())

	// Свободный текст с "|" от оператора — массовая загрузка тестов.
	app.bot.Handle(telebot.OnText, ingest_handler.NewIngestHandler(app.catalogService, adminID, app.log).GetHandlerFunc())
}

// ListenAndServeHTTP запускает HTTP сервер мини-приложения.
func (app *App) ListenAndServeHTTP() error {
	mx := http.NewServeMux()

	mx.Handle("GET /get_test/{code}", get_test_handler.NewGetTestHandler(app.quizService, app.log))
	mx.Handle("POST /submit_result", submit_result_handler.NewSubmitResultHandler(app.resultService, app.log))
	mx.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	app.server = &http.Server{
		Addr:         app.config.ListenAddr,
		Handler:      mx,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	app.log.Info("http server starting", zap.String("addr", app.config.ListenAddr))
	return app.server.ListenAndServe()
}

// ListenAndServe запускает оба сервера (Telegram и HTTP).
func (app *App) ListenAndServe() error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}
