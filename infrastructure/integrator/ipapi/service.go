package ipapi

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

// GeoLocator resolve o país de um IP para o pipeline de cliques
type GeoLocator interface {
	ResolveLocation(ctx context.Context, ipAddress string) *domain.GeoLocation
}

// GeoIntegrator encapsula o cliente ip-api com a política de fallback:
// qualquer falha ou timeout degrada para {country: "US"} — o pipeline de
// redirecionamento nunca pode travar nem propagar erro por causa de
// geolocalização.
type GeoIntegrator struct {
	cfg    *config.Config
	client Client
}

func New(cfg *config.Config, client Client) GeoLocator {
	return &GeoIntegrator{
		cfg:    cfg,
		client: client,
	}
}

// DefaultLocation é o fallback documentado quando a geolocalização falha.
// US por padrão: o CPM mais alto, para não penalizar o dono do link por
// uma falha de infraestrutura nossa.
func DefaultLocation(ipAddress string) *domain.GeoLocation {
	return &domain.GeoLocation{
		Country:     "US",
		CountryName: "United States",
		IP:          ipAddress,
	}
}

// ResolveLocation consulta a geolocalização com timeout próprio e aplica o
// fallback em qualquer falha
func (g *GeoIntegrator) ResolveLocation(ctx context.Context, ipAddress string) *domain.GeoLocation {
	lookupCtx, cancel := context.WithTimeout(ctx, g.cfg.Geolocation.Timeout)
	defer cancel()

	location, err := g.client.Lookup(lookupCtx, ipAddress)
	if err != nil {
		logrus.WithError(err).WithField("ip", ipAddress).Warn("Geolocalização indisponível, usando fallback US")
		return DefaultLocation(ipAddress)
	}

	if location.Country == "" {
		return DefaultLocation(ipAddress)
	}

	return location
}
