package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twinpersona/internal/config"
	"twinpersona/internal/domain/ports/adapter"
	"twinpersona/internal/domain/ports/repository"
	aiAdapters "twinpersona/internal/infra/adapters/ai"
	"twinpersona/internal/infra/adapters/notify"
	payAdapters "twinpersona/internal/infra/adapters/payment"
	"twinpersona/internal/infra/auth"
	pg "twinpersona/internal/infra/db/postgres"
	"twinpersona/internal/infra/logging"
	"twinpersona/internal/infra/metrics"
	"twinpersona/internal/infra/placeholder"
	red "twinpersona/internal/infra/redis"
	"twinpersona/internal/infra/web"
	"twinpersona/internal/infra/worker"
	"twinpersona/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (relaxed secrets, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	ledger := red.NewCampaignLedger(redisClient, cfg.Campaign.Capacity)
	couponRepo := red.NewCouponRepo(redisClient)
	tokenRepo := red.NewTokenRepo(redisClient)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Optional archive store ----
	var archive repository.ArchiveRepository
	var pool *worker.Pool
	if cfg.Database.URL != "" {
		pgPool, err := pg.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pgPool.Close()
		archive = pg.NewArchiveRepo(pgPool)
		pool = worker.NewPool(4, logger)
		pool.Start(ctx)
		defer pool.Stop()
		logger.Info().Msg("archive store enabled")
	}

	// ---- Ops notifications ----
	var notifier adapter.Notifier = notify.NewNoopNotifier()
	if cfg.Notify.TelegramToken != "" && cfg.Notify.ChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.ChatID, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram notifier disabled")
		} else {
			notifier = tg
		}
	}

	// ---- AI providers (OpenAI -> Gemini failover) ----
	var textProviders []adapter.TextGenerator
	if cfg.AI.OpenAIKey != "" {
		oa, err := aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.TextModel)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		textProviders = append(textProviders, oa)
		logger.Info().
			Str("model", cfg.AI.TextModel).
			Str("key", logging.Redact(cfg.AI.OpenAIKey, cfg.Runtime.Dev)).
			Msg("text provider: openai")
	}
	if cfg.AI.GeminiKey != "" {
		gm, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, "gemini-1.5-flash")
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
		textProviders = append(textProviders, gm)
		logger.Info().Msg("text provider: gemini")
	}
	var textGen adapter.TextGenerator
	if len(textProviders) > 0 {
		textGen = aiAdapters.NewMultiTextGenerator(textProviders...)
	} else {
		textGen = aiAdapters.NoopText{}
		logger.Warn().Msg("no text provider configured; advice serves static fallback")
	}

	var imageGen adapter.ImageGenerator
	if cfg.AI.OpenAIKey != "" {
		ig, err := aiAdapters.NewOpenAIImageAdapter(cfg.AI.OpenAIKey, cfg.AI.ImageModel)
		if err != nil {
			log.Fatalf("openai image adapter: %v", err)
		}
		imageGen = ig
	} else {
		imageGen = aiAdapters.NoopImage{}
		logger.Warn().Msg("no image provider configured; artwork serves placeholder")
	}

	// ---- Payment ----
	var gateway adapter.PaymentGateway
	if cfg.Payment.Stripe.SecretKey != "" {
		gateway, err = payAdapters.NewStripeGateway(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.WebhookSecret)
		if err != nil {
			log.Fatalf("stripe gateway: %v", err)
		}
	} else {
		// config validation only allows this in developer mode
		gateway = payAdapters.NoopGateway{}
		logger.Warn().Msg("no stripe key configured; payments disabled")
	}
	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" && cfg.Runtime.Dev {
		jwtSecret = "dev-only-secret"
	}
	signer, err := auth.NewJWTSigner(jwtSecret)
	if err != nil {
		log.Fatalf("jwt signer: %v", err)
	}

	// ---- Use cases ----
	quizUC := usecase.NewQuizUseCase(logger)
	couponUC := usecase.NewCouponUseCase(couponRepo, logger)
	campaignUC := usecase.NewCampaignUseCase(ledger, couponUC, archive, pool, notifier, logger)
	paymentUC := usecase.NewPaymentUseCase(
		gateway, signer, tokenRepo, ledger, archive, pool, notifier, logger,
		cfg.Payment.Stripe.Amount, cfg.Payment.Stripe.Currency,
	)
	adviceUC := usecase.NewAdviceUseCase(textGen, cfg.AI.TextModel, cfg.AI.MaxPromptTokens, aiAdapters.CountTokens, logger)
	imageUC := usecase.NewImageUseCase(imageGen, placeholder.DataURI, logger)

	// ---- HTTP server ----
	metrics.MustRegister()
	srv, err := web.NewServer(cfg.Server.Port, web.Deps{
		Quiz:            quizUC,
		Campaign:        campaignUC,
		Coupons:         couponUC,
		Payments:        paymentUC,
		Advice:          adviceUC,
		Images:          imageUC,
		Limiter:         rateLimiter,
		Logger:          logger,
		CORSAllowOrigin: cfg.Server.CORSAllowOrigin,
		RateLimitPerMin: cfg.Campaign.RateLimitPerMin,
	})
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
