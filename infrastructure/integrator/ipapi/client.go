package ipapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/linkvault-api/internal/config"
	"github.com/vfg2006/linkvault-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const lookupFields = "status,message,country,countryCode,region,regionName,city,lat,lon,timezone,isp"

type Client interface {
	Lookup(ctx context.Context, ipAddress string) (*domain.GeoLocation, error)
}

type IPAPIClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &IPAPIClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Geolocation.Timeout,
		},
	}
}

// lookupResponse é o payload do ip-api.com
type lookupResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
}

// Lookup consulta a geolocalização de um IP no ip-api.com
func (c *IPAPIClient) Lookup(ctx context.Context, ipAddress string) (*domain.GeoLocation, error) {
	url := fmt.Sprintf("%s/json/%s?fields=%s", c.cfg.Geolocation.BaseURL, ipAddress, lookupFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar requisição de geolocalização")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro na chamada ao serviço de geolocalização")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("serviço de geolocalização retornou status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta de geolocalização")
	}

	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de geolocalização")
	}

	if payload.Status != "success" {
		return nil, errors.Errorf("geolocalização falhou para %s: %s", ipAddress, payload.Message)
	}

	return &domain.GeoLocation{
		Country:     payload.CountryCode,
		CountryName: payload.Country,
		Region:      payload.RegionName,
		City:        payload.City,
		Latitude:    payload.Lat,
		Longitude:   payload.Lon,
		Timezone:    payload.Timezone,
		ISP:         payload.ISP,
		IP:          ipAddress,
	}, nil
}
