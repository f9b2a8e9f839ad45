package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/config"
)

// AnalyticsSyncConfig representa a configuração do agendador de analytics
type AnalyticsSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// AnalyticsSyncService reconstrói os agregados diários a partir da tabela de
// cliques. Os incrementos por clique são a fonte em tempo real; a
// reconstrução noturna corrige qualquer deriva causada por falhas parciais
// de persistência durante o dia.
type AnalyticsSyncService struct {
	scheduler           *gocron.Scheduler
	config              AnalyticsSyncConfig
	analyticsRepo       repository.AnalyticsRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAnalyticsSyncService cria uma nova instância do serviço de sincronização de analytics
func NewAnalyticsSyncService(
	analyticsRepo repository.AnalyticsRepository,
	appConfig *config.Config,
) *AnalyticsSyncService {
	syncConfig := AnalyticsSyncConfig{
		CronSchedule: appConfig.AnalyticsSync.CronSchedule,
		LookbackDays: appConfig.AnalyticsSync.LookbackDays,
		SyncEnabled:  appConfig.AnalyticsSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de analytics carregada")

	return &AnalyticsSyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		analyticsRepo: analyticsRepo,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *AnalyticsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de analytics desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de analytics")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAnalytics()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de analytics: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de analytics")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAnalytics reconstrói os agregados de cada dia da janela de lookback
func (s *AnalyticsSyncService) syncAnalytics() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de analytics já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	dates := s.getDatesToProcess()
	logrus.WithFields(logrus.Fields{
		"days":       s.config.LookbackDays,
		"start_date": dates[len(dates)-1].Format(time.DateOnly),
		"end_date":   dates[0].Format(time.DateOnly),
	}).Info("Período para reconstrução dos agregados diários")

	for _, date := range dates {
		if err := s.analyticsRepo.RebuildDay(date); err != nil {
			logrus.WithFields(logrus.Fields{
				"date":  date.Format(time.DateOnly),
				"error": err.Error(),
			}).Error("Erro ao reconstruir agregados do dia")
			continue
		}

		logrus.WithField("date", date.Format(time.DateOnly)).Info("Agregados do dia reconstruídos")
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"days":     s.config.LookbackDays,
	}).Info("Sincronização de analytics concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getDatesToProcess cria um conjunto de datas para processar
func (s *AnalyticsSyncService) getDatesToProcess() []time.Time {
	days := s.config.LookbackDays
	if days < 1 {
		days = 1
	}

	dates := make([]time.Time, days)
	for i := 0; i < days; i++ {
		dates[i] = time.Now().AddDate(0, 0, -i-1) // Começar de ontem e ir para trás
	}
	return dates
}

// TriggerManualSync inicia manualmente uma reconstrução dos agregados
func (s *AnalyticsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de analytics já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de analytics")
	go s.syncAnalytics()
}

// GetStatus retorna o status atual do agendador
func (s *AnalyticsSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
