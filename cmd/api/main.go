package main

import (
	"context"
	"math/rand"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkvault-api/infrastructure/integrator/ipapi"
	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/api"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/ratelimit"
	"github.com/vfg2006/linkvault-api/internal/scheduler"
	"github.com/vfg2006/linkvault-api/internal/usecases/authenticating"
	"github.com/vfg2006/linkvault-api/internal/usecases/optimizing"
	"github.com/vfg2006/linkvault-api/internal/usecases/redirecting"
	"github.com/vfg2006/linkvault-api/internal/usecases/shortening"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	linkRepo := repository.NewLinkRepository(pgConn)
	clickRepo := repository.NewClickRepository(pgConn)
	earningRepo := repository.NewEarningRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	planRepo := repository.NewPlanRepository(pgConn)
	blacklistRepo := repository.NewBlacklistRepository(pgConn)
	analyticsRepo := repository.NewAnalyticsRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, planRepo, cfg)

	// Geolocalização com fallback para US em caso de timeout ou falha
	ipapiClient := ipapi.NewClient(cfg)
	geoLocator := ipapi.New(cfg, ipapiClient)

	// Motor de otimização: registro de redes validado no startup
	registry, err := optimizing.NewRegistry(optimizing.DefaultNetworks())
	if err != nil {
		logrus.WithError(err).Fatal("Registro de redes de anúncio inválido")
	}
	optimizer := optimizing.NewService(registry, rand.New(rand.NewSource(time.Now().UnixNano())))

	limiter, err := ratelimit.New(cfg.RateLimit.Strategy, cfg.RateLimit.Window, cfg.RateLimit.MaxUniqueTokens)
	if err != nil {
		logrus.WithError(err).Fatal("Configuração de rate limit inválida")
	}

	redirectService := redirecting.NewService(
		cfg,
		linkRepo,
		clickRepo,
		earningRepo,
		userRepo,
		blacklistRepo,
		analyticsRepo,
		geoLocator,
		optimizer,
		limiter,
	)

	shortenService := shortening.NewService(cfg, linkRepo, analyticsRepo, optimizer)

	// Agendador de reconstrução dos agregados diários
	analyticsSyncService := scheduler.NewAnalyticsSyncService(analyticsRepo, cfg)

	if err := analyticsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de analytics")
	} else {
		logrus.Info("Agendador de sincronização de analytics iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		redirectService,
		shortenService,
		authenticator,
		earningRepo,
		planRepo,
		limiter,
		analyticsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
