package redirecting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/infrastructure/integrator/ipapi"
	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/domain"
	"github.com/vfg2006/linkvault-api/internal/ratelimit"
	"github.com/vfg2006/linkvault-api/internal/usecases/optimizing"
	"github.com/vfg2006/linkvault-api/pkg/useragent"
)

// referralBonusRate é a fração do ganho repassada ao indicador
const referralBonusRate = 0.10

// RedirectStatus classifica o desfecho do pipeline de redirecionamento.
// Todos são resultados de negócio; erro só sobe quando o próprio link
// não pode ser resolvido.
type RedirectStatus string

const (
	StatusRedirect         RedirectStatus = "redirect"
	StatusNotFound         RedirectStatus = "not_found"
	StatusBlacklisted      RedirectStatus = "blacklisted"
	StatusClickLimit       RedirectStatus = "click_limit_reached"
	StatusPasswordRequired RedirectStatus = "password_required"
	StatusRateLimited      RedirectStatus = "rate_limited"
)

// RedirectRequest reúne o que o handler extrai da requisição HTTP
type RedirectRequest struct {
	Code           string
	ClientIP       string
	UserAgent      string
	Referrer       string
	AcceptLanguage string
	Password       string
}

// RedirectResult é o desfecho do pipeline para o handler traduzir em HTTP
type RedirectResult struct {
	Status    RedirectStatus
	TargetURL string
	RateLimit *ratelimit.Decision
	Earnings  *domain.EarningsResult
}

type Redirector interface {
	Redirect(ctx context.Context, req RedirectRequest) (*RedirectResult, error)
}

// Service orquestra o pipeline de monetização por clique:
// blacklist → link → rate limit → geo/UA/unicidade → otimizador → persistência.
// Colaboradores lentos (geolocalização, unicidade) rodam com timeout e
// degradam para os padrões documentados; o caminho de redirecionamento
// nunca trava por causa deles.
type Service struct {
	cfg           *config.Config
	linkRepo      repository.LinkRepository
	clickRepo     repository.ClickRepository
	earningRepo   repository.EarningRepository
	userRepo      repository.UserRepository
	blacklistRepo repository.BlacklistRepository
	analyticsRepo repository.AnalyticsRepository
	geoLocator    ipapi.GeoLocator
	optimizer     optimizing.Optimizer
	limiter       ratelimit.Limiter

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickRepository,
	earningRepo repository.EarningRepository,
	userRepo repository.UserRepository,
	blacklistRepo repository.BlacklistRepository,
	analyticsRepo repository.AnalyticsRepository,
	geoLocator ipapi.GeoLocator,
	optimizer optimizing.Optimizer,
	limiter ratelimit.Limiter,
) *Service {
	return &Service{
		cfg:           cfg,
		linkRepo:      linkRepo,
		clickRepo:     clickRepo,
		earningRepo:   earningRepo,
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		analyticsRepo: analyticsRepo,
		geoLocator:    geoLocator,
		optimizer:     optimizer,
		limiter:       limiter,
		now:           time.Now,
	}
}

// Redirect executa o pipeline completo para um evento de clique
func (s *Service) Redirect(ctx context.Context, req RedirectRequest) (*RedirectResult, error) {
	// IPs banidos são barrados antes de qualquer outra coisa
	blacklisted, err := s.blacklistRepo.IsBlacklisted(req.ClientIP)
	if err != nil {
		// Falha de persistência degrada para "não banido": nunca derrubar
		// tráfego legítimo por indisponibilidade nossa
		logrus.WithError(err).Warn("Erro ao consultar blacklist, seguindo sem bloqueio")
	}
	if blacklisted {
		return &RedirectResult{Status: StatusBlacklisted}, nil
	}

	link, err := s.linkRepo.GetLinkByCode(req.Code)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if link == nil || link.Expired(now) {
		return &RedirectResult{Status: StatusNotFound}, nil
	}

	if link.ClickLimitReached() {
		return &RedirectResult{Status: StatusClickLimit}, nil
	}

	if link.Password != nil && req.Password != *link.Password {
		return &RedirectResult{Status: StatusPasswordRequired}, nil
	}

	decision := s.limiter.Check(req.ClientIP, s.cfg.RateLimit.RedirectLimit)
	if !decision.Allowed {
		return &RedirectResult{
			Status:    StatusRateLimited,
			RateLimit: &decision,
		}, nil
	}

	location := s.geoLocator.ResolveLocation(ctx, req.ClientIP)
	deviceInfo := useragent.Parse(req.UserAgent)

	isUnique := s.checkUniqueness(ctx, link.ID, req.ClientIP, now)

	earnings := s.computeEarnings(link, location, deviceInfo, isUnique, now, req.ClientIP)

	s.persistClick(link, req, location, deviceInfo, isUnique, earnings, now)

	return &RedirectResult{
		Status:    StatusRedirect,
		TargetURL: link.OriginalURL,
		RateLimit: &decision,
		Earnings:  earnings,
	}, nil
}

// checkUniqueness consulta a janela de 24h com timeout curto. Falha do
// colaborador conta o clique como único (paga o bônus em vez de travar
// o redirecionamento ou penalizar o dono do link).
func (s *Service) checkUniqueness(ctx context.Context, linkID int, clientIP string, now time.Time) bool {
	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.Optimizer.UniquenessTimeout)
	defer cancel()

	since := now.Add(-s.cfg.Optimizer.UniquenessWindow)

	hasRecent, err := s.clickRepo.HasRecentClick(checkCtx, linkID, clientIP, since)
	if err != nil {
		logrus.WithError(err).WithField("link_id", linkID).Warn("Verificação de unicidade indisponível, assumindo clique único")
		return true
	}

	return !hasRecent
}

// computeEarnings monta o contexto de clique e chama o motor de otimização.
// Link sem dono (ou dono sem plano) não gera ganhos: amount = 0.
func (s *Service) computeEarnings(
	link *domain.Link,
	location *domain.GeoLocation,
	deviceInfo domain.DeviceInfo,
	isUnique bool,
	now time.Time,
	clientIP string,
) *domain.EarningsResult {
	if link.UserID == nil {
		return &domain.EarningsResult{Amount: 0, Reason: domain.RejectionNone}
	}

	owner, err := s.userRepo.GetUserByID(*link.UserID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", *link.UserID).Warn("Erro ao buscar dono do link, clique sem remuneração")
		return &domain.EarningsResult{Amount: 0, Reason: domain.RejectionNone}
	}

	if owner == nil || owner.PlanName == "" {
		return &domain.EarningsResult{Amount: 0, Reason: domain.RejectionNone}
	}

	result := s.optimizer.CalculateEarnings(domain.ClickContext{
		CountryCode:   location.Country,
		Device:        deviceInfo.Device,
		HourOfDay:     now.Hour(),
		PlanID:        owner.PlanName,
		IsUniqueClick: isUnique,
		ClientIP:      clientIP,
		UserID:        owner.ID,
	})

	return &result
}

// persistClick grava o clique, as estatísticas do link, o ledger de ganhos
// (com bônus de indicação) e o agregado diário. Falhas de persistência são
// logadas e não interrompem o redirecionamento.
func (s *Service) persistClick(
	link *domain.Link,
	req RedirectRequest,
	location *domain.GeoLocation,
	deviceInfo domain.DeviceInfo,
	isUnique bool,
	earnings *domain.EarningsResult,
	now time.Time,
) {
	click := &domain.Click{
		LinkID:    link.ID,
		UserID:    link.UserID,
		IPAddress: req.ClientIP,
		UserAgent: req.UserAgent,
		Country:   location.Country,
		Region:    location.Region,
		City:      location.City,
		Device:    deviceInfo.Device,
		Browser:   deviceInfo.Browser,
		OS:        deviceInfo.OS,
		Referrer:  req.Referrer,
		Language:  firstLanguage(req.AcceptLanguage),
		IsUnique:  isUnique,
		Earnings:  earnings.Amount,
		AdNetwork: earnings.AdNetworkID,
	}

	click, err := s.clickRepo.CreateClick(click)
	if err != nil {
		logrus.WithError(err).WithField("link_id", link.ID).Error("Erro ao registrar clique")
		return
	}

	if err := s.linkRepo.RegisterClick(link.ID, isUnique, earnings.Amount, now); err != nil {
		logrus.WithError(err).WithField("link_id", link.ID).Error("Erro ao atualizar estatísticas do link")
	}

	if earnings.Amount > 0 && link.UserID != nil {
		s.recordEarnings(link, click, earnings)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	err = s.analyticsRepo.IncrementDaily(&domain.DailyAnalytics{
		LinkID:   link.ID,
		Date:     day,
		Country:  location.Country,
		Device:   string(deviceInfo.Device),
		Browser:  deviceInfo.Browser,
		Earnings: earnings.Amount,
	})
	if err != nil {
		logrus.WithError(err).WithField("link_id", link.ID).Error("Erro ao acumular analytics diário")
	}
}

// recordEarnings lança o ganho do clique no ledger e propaga o bônus de
// indicação. O ledger é idempotente por (clique, tipo): o bônus nunca é
// aplicado duas vezes para o mesmo evento.
func (s *Service) recordEarnings(link *domain.Link, click *domain.Click, earnings *domain.EarningsResult) {
	source := ""
	if earnings.AdNetworkID != nil {
		source = *earnings.AdNetworkID
	}

	created, err := s.earningRepo.CreateEarning(&domain.Earning{
		UserID:      *link.UserID,
		LinkID:      &link.ID,
		ClickID:     click.ID,
		Amount:      earnings.Amount,
		Type:        domain.EarningTypeClick,
		Source:      source,
		Country:     click.Country,
		Description: fmt.Sprintf("Ganhos de clique do link %s", link.ShortCode),
	})
	if err != nil {
		logrus.WithError(err).WithField("click_id", click.ID).Error("Erro ao lançar ganho de clique")
		return
	}

	if !created {
		logrus.WithField("click_id", click.ID).Warn("Ganho de clique já lançado, ignorando")
		return
	}

	if err := s.userRepo.CreditEarnings(*link.UserID, earnings.Amount); err != nil {
		logrus.WithError(err).WithField("user_id", *link.UserID).Error("Erro ao creditar ganhos do dono do link")
	}

	owner, err := s.userRepo.GetUserByID(*link.UserID)
	if err != nil || owner == nil || owner.ReferredBy == nil {
		return
	}

	bonus := math.Round(earnings.Amount*referralBonusRate*10000) / 10000
	if bonus <= 0 {
		return
	}

	created, err = s.earningRepo.CreateEarning(&domain.Earning{
		UserID:      *owner.ReferredBy,
		ClickID:     click.ID,
		Amount:      bonus,
		Type:        domain.EarningTypeReferral,
		Source:      "referral_system",
		Country:     click.Country,
		Description: fmt.Sprintf("Bônus de indicação do clique de %s", owner.Email),
	})
	if err != nil {
		logrus.WithError(err).WithField("click_id", click.ID).Error("Erro ao lançar bônus de indicação")
		return
	}

	if created {
		if err := s.userRepo.CreditEarnings(*owner.ReferredBy, bonus); err != nil {
			logrus.WithError(err).WithField("user_id", *owner.ReferredBy).Error("Erro ao creditar bônus de indicação")
		}
	}
}

// firstLanguage extrai o idioma preferido do cabeçalho Accept-Language
func firstLanguage(acceptLanguage string) string {
	for i := 0; i < len(acceptLanguage); i++ {
		if acceptLanguage[i] == ',' || acceptLanguage[i] == ';' {
			return acceptLanguage[:i]
		}
	}
	return acceptLanguage
}
