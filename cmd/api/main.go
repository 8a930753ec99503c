package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"fanlens/internal/catalog"
	"fanlens/internal/config"
	"fanlens/internal/db"
	"fanlens/internal/email"
	apihttp "fanlens/internal/http"
	"fanlens/internal/repository"
	"fanlens/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	cat := catalog.Default()

	signalRepo := repository.NewPgSignalRepository(pool)
	visitRepo := repository.NewPgVisitRepository(pool)
	estimateRepo := repository.NewPgEstimateRepository(pool)
	assignRepo := repository.NewPgAssignmentRepository(pool)

	predCache := service.NewMemoryPredictionCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory cache", zap.Error(err))
		} else {
			predCache = service.NewRedisPredictionCache(redisClient, cfg.PredictionStaleness())
		}
		cancel()
	}

	selector := service.NewItemSelector(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	scorer := service.NewTraitScorer(cat)
	classifier := service.NewArchetypeClassifier(cat, service.ClassifierConfig{
		Temperature:     cfg.SoftmaxTemperature,
		AestheticWeight: cfg.AestheticWeight,
	})
	predictor := service.NewEngagementPredictor(cat, service.PredictorConfig{
		HalfLife:          cfg.SignalHalfLife(),
		DecayFloor:        cfg.SignalDecayFloor,
		ExpectedMaxSignal: cfg.SignalExpectedMax,
		OrganicWeight:     cfg.ReturnOrganicWeight,
		FrequencyWeight:   cfg.ReturnFreqWeight,
		ConsistencyWeight: cfg.ReturnConsistWeight,
	}, nil)

	predictionSvc := service.NewPredictionService(predictor, predCache, assignRepo, signalRepo, visitRepo, cfg.PredictionStaleness(), logger)
	signalSvc := service.NewSignalService(signalRepo, visitRepo, predictionSvc, service.DeepDiveConfig{
		Threshold: cfg.DeepDiveThreshold,
		Window:    cfg.DeepDiveWindow(),
	}, logger)
	assessmentSvc := service.NewAssessmentService(selector, scorer, classifier, estimateRepo, assignRepo, logger)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}
	digestSvc := service.NewDigestService(signalSvc, emailSender, logger)

	if cfg.ServiceTokenSecret == "" {
		logger.Warn("service token secret not configured, write endpoints unguarded")
	}

	assessHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc)
	signalHandler := apihttp.NewSignalHandler(logger, signalSvc)
	predHandler := apihttp.NewPredictionHandler(logger, predictionSvc)
	profileHandler := apihttp.NewProfileHandler(logger, estimateRepo, assignRepo)
	digestHandler := apihttp.NewDigestHandler(logger, digestSvc)
	router := apihttp.NewRouter(logger, assessHandler, signalHandler, predHandler, profileHandler, digestHandler, cfg.ServiceTokenSecret)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
