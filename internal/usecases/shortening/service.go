package shortening

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/domain"
	"github.com/vfg2006/linkvault-api/internal/usecases/optimizing"
	"github.com/vfg2006/linkvault-api/pkg/utils"
)

var (
	ErrInvalidURL   = errors.New("URL inválida: somente http(s) absoluta é aceita")
	ErrAliasInUse   = errors.New("alias customizado já está em uso")
	ErrLinkNotFound = errors.New("link não encontrado")
	ErrNotLinkOwner = errors.New("link pertence a outro usuário")
)

// Tentativas de regenerar o short code em caso de colisão
const maxCodeAttempts = 5

// LinkStats agrega o link com sua série diária para o painel do usuário
type LinkStats struct {
	Link      *domain.Link             `json:"link"`
	Daily     []*domain.DailyAnalytics `json:"daily"`
	ShortURL  string                   `json:"short_url"`
	TotalDays int                      `json:"total_days"`
}

type Shortener interface {
	CreateShortLink(userID int, req *domain.CreateLinkRequest) (*domain.Link, error)
	ListLinks(userID int) ([]*domain.Link, error)
	GetLinkStats(userID int, code string, from, to time.Time) (*LinkStats, error)
	PredictEarnings(planName string, estimatedClicks int) *domain.EarningsPrediction
	RecommendPlan(expectedMonthlyClicks int) *domain.PlanRecommendation
}

// Service cria e consulta links encurtados. A geração de código usa nanoid
// de 6 caracteres com nova tentativa em caso de colisão de índice único.
type Service struct {
	cfg           *config.Config
	linkRepo      repository.LinkRepository
	analyticsRepo repository.AnalyticsRepository
	optimizer     optimizing.Optimizer
}

func NewService(
	cfg *config.Config,
	linkRepo repository.LinkRepository,
	analyticsRepo repository.AnalyticsRepository,
	optimizer optimizing.Optimizer,
) *Service {
	return &Service{
		cfg:           cfg,
		linkRepo:      linkRepo,
		analyticsRepo: analyticsRepo,
		optimizer:     optimizer,
	}
}

// CreateShortLink valida e persiste um novo link encurtado para o usuário
func (s *Service) CreateShortLink(userID int, req *domain.CreateLinkRequest) (*domain.Link, error) {
	if !req.ValidateURL() {
		return nil, ErrInvalidURL
	}

	if req.CustomAlias != nil && *req.CustomAlias != "" {
		existing, err := s.linkRepo.GetLinkByCode(*req.CustomAlias)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrAliasInUse
		}
	} else {
		req.CustomAlias = nil
	}

	link := &domain.Link{
		UserID:      &userID,
		OriginalURL: req.OriginalURL,
		CustomAlias: req.CustomAlias,
		Password:    req.Password,
		ClickLimit:  req.ClickLimit,
		ExpiresAt:   req.ExpiresAt,
		IsActive:    true,
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}

		existing, err := s.linkRepo.GetLinkByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logrus.WithField("short_code", code).Warn("Colisão de short code, gerando novamente")
			continue
		}

		link.ShortCode = code

		created, err := s.linkRepo.CreateLink(link)
		if err != nil {
			lastErr = err
			continue
		}

		return created, nil
	}

	if lastErr == nil {
		lastErr = errors.New("não foi possível gerar um short code único")
	}
	return nil, lastErr
}

func (s *Service) ListLinks(userID int) ([]*domain.Link, error) {
	return s.linkRepo.ListLinksByUser(userID)
}

// GetLinkStats retorna o link e a série diária agregada no intervalo.
// Somente o dono do link pode consultar as estatísticas.
func (s *Service) GetLinkStats(userID int, code string, from, to time.Time) (*LinkStats, error) {
	link, err := s.linkRepo.GetLinkByCode(code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	if link.UserID == nil || *link.UserID != userID {
		return nil, ErrNotLinkOwner
	}

	daily, err := s.analyticsRepo.ListDailyByLink(link.ID, from, to)
	if err != nil {
		return nil, err
	}

	link.Password = nil

	return &LinkStats{
		Link:      link,
		Daily:     daily,
		ShortURL:  s.cfg.App.BaseURL + "/r/" + link.ShortCode,
		TotalDays: len(daily),
	}, nil
}

// PredictEarnings delega a estimativa ao motor de otimização
func (s *Service) PredictEarnings(planName string, estimatedClicks int) *domain.EarningsPrediction {
	return s.optimizer.PredictEarnings(planName, estimatedClicks)
}

// RecommendPlan delega a recomendação de plano ao motor de otimização
func (s *Service) RecommendPlan(expectedMonthlyClicks int) *domain.PlanRecommendation {
	return s.optimizer.RecommendPlan(expectedMonthlyClicks)
}
