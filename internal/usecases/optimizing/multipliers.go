package optimizing

import (
	"strings"

	"github.com/vfg2006/linkvault-api/internal/domain"
)

// defaultCountryMultiplier é o piso aplicado a países desconhecidos —
// deliberadamente baixo para não pagar demais por geografias não verificadas.
const defaultCountryMultiplier = 0.1

// countryMultipliers mapeia código ISO do país para o multiplicador de CPM
var countryMultipliers = map[string]float64{
	// Tier 1 - CPM mais alto
	"US": 2.5, "CA": 2.0, "GB": 2.0, "AU": 1.8, "DE": 1.8, "CH": 1.8,
	"NO": 1.7, "SE": 1.6, "DK": 1.6, "NL": 1.5, "FI": 1.5, "AT": 1.4,
	"BE": 1.4, "FR": 1.3, "IT": 1.2, "ES": 1.2, "JP": 1.5, "KR": 1.3,
	"SG": 1.4, "HK": 1.3,

	// Tier 2 - CPM médio
	"IE": 1.1, "PT": 1.0, "GR": 1.0, "CZ": 0.9, "PL": 0.8, "HU": 0.8,
	"SK": 0.8, "SI": 0.8, "EE": 0.7, "LV": 0.7, "LT": 0.7, "HR": 0.7,
	"BG": 0.6, "RO": 0.6, "RS": 0.6, "MK": 0.5, "ME": 0.5, "BA": 0.5,
	"AL": 0.4,

	// Outros países desenvolvidos
	"NZ": 1.4, "IL": 1.1, "AE": 1.0, "SA": 0.9, "QA": 0.9, "KW": 0.9,
	"BH": 0.8, "OM": 0.8,

	// Mercados asiáticos
	"TW": 0.9, "MY": 0.7, "TH": 0.6, "ID": 0.5, "PH": 0.5, "VN": 0.4,
	"IN": 0.3, "PK": 0.2, "BD": 0.2, "LK": 0.2,
	"CN": 0.8, // Caso especial: volume alto, taxas médias

	// América Latina
	"BR": 0.4, "MX": 0.4, "AR": 0.3, "CL": 0.3, "CO": 0.3, "PE": 0.3,
	"UY": 0.3, "CR": 0.3, "PA": 0.3, "EC": 0.2, "BO": 0.2, "PY": 0.2,
	"VE": 0.2, "GT": 0.2, "HN": 0.2, "NI": 0.2, "SV": 0.2, "DO": 0.2,
	"CU": 0.2, "JM": 0.2, "TT": 0.2,

	// África e outros
	"ZA": 0.3, "EG": 0.2, "MA": 0.2, "TN": 0.2, "KE": 0.2, "GH": 0.2,
	"NG": 0.2, "DZ": 0.2, "LY": 0.2, "ET": 0.1, "UG": 0.1, "TZ": 0.1,
	"ZW": 0.1, "ZM": 0.1, "MW": 0.1, "MZ": 0.1, "AO": 0.1, "CD": 0.1,
	"CM": 0.1, "CI": 0.1, "SN": 0.1, "ML": 0.1, "BF": 0.1, "NE": 0.1,
	"TD": 0.1, "CF": 0.1, "GN": 0.1, "SL": 0.1, "LR": 0.1, "GM": 0.1,
	"GW": 0.1, "CV": 0.1, "ST": 0.1, "GQ": 0.1, "GA": 0.1, "CG": 0.1,
	"DJ": 0.1, "SO": 0.1, "ER": 0.1, "SS": 0.1, "SD": 0.1, "RW": 0.1,
	"BI": 0.1, "KM": 0.1, "SC": 0.1, "MU": 0.1, "MG": 0.1, "RE": 0.1,
	"YT": 0.1,

	// Leste europeu e CIS
	"RU": 0.4, "UA": 0.3, "BY": 0.3, "MD": 0.2, "AM": 0.2, "AZ": 0.2,
	"GE": 0.2, "KZ": 0.2, "KG": 0.1, "TJ": 0.1, "TM": 0.1, "UZ": 0.1,
	"MN": 0.1,
}

// deviceMultipliers mapeia tipo de dispositivo para o multiplicador de CPM.
// Mobile costuma ter CPM mais alto; desktop é a linha de base.
var deviceMultipliers = map[domain.DeviceType]float64{
	domain.DeviceMobile:  1.2,
	domain.DeviceTablet:  1.1,
	domain.DeviceDesktop: 1.0,
}

// timeRule é uma regra de janela horária com multiplicador associado
type timeRule struct {
	fromHour   int // inclusivo
	toHour     int // inclusivo
	multiplier float64
}

// timeRules são avaliadas em ordem fixa e a primeira que casar vence.
// As janelas se sobrepõem de propósito: horário comercial (09-21) tem
// prioridade sobre fim de noite (18-23) no trecho 18-21. Não reordenar.
var timeRules = []timeRule{
	{fromHour: 9, toHour: 21, multiplier: 1.3},  // horário comercial + início da noite
	{fromHour: 18, toHour: 23, multiplier: 1.5}, // fim de noite: engajamento maior
}

// defaultTimeMultiplier vale para madrugada/início da manhã
const defaultTimeMultiplier = 0.8

// planMultipliers mapeia o nome do plano de assinatura para o multiplicador
var planMultipliers = map[string]float64{
	"free":         1.0,
	"starter":      1.5,
	"professional": 2.0,
	"enterprise":   3.0,
}

// nonUniqueMultiplier paga cliques repetidos a 30% para desencorajar
// farming de cliques sem zerar o engajamento parcial.
const nonUniqueMultiplier = 0.3

// highValueCountries é o conjunto fixo de países premium usado para
// direcionar a seleção para redes especializadas.
var highValueCountries = map[string]bool{
	"US": true, "CA": true, "GB": true, "AU": true, "DE": true,
	"FR": true, "IT": true, "ES": true, "NL": true, "CH": true,
	"SE": true, "NO": true, "DK": true, "FI": true, "AT": true,
	"BE": true, "JP": true, "KR": true, "SG": true, "HK": true,
}

// CountryMultiplier retorna o multiplicador do país (código ISO, qualquer caixa)
func CountryMultiplier(countryCode string) float64 {
	if m, ok := countryMultipliers[strings.ToUpper(countryCode)]; ok {
		return m
	}
	return defaultCountryMultiplier
}

// DeviceMultiplier retorna o multiplicador do tipo de dispositivo
func DeviceMultiplier(device domain.DeviceType) float64 {
	if m, ok := deviceMultipliers[domain.DeviceType(strings.ToLower(string(device)))]; ok {
		return m
	}
	return 1.0
}

// TimeMultiplier avalia as regras horárias em ordem; a primeira que casar vence
func TimeMultiplier(hour int) float64 {
	for _, rule := range timeRules {
		if hour >= rule.fromHour && hour <= rule.toHour {
			return rule.multiplier
		}
	}
	return defaultTimeMultiplier
}

// PlanMultiplier retorna o multiplicador do plano; plano desconhecido vale 1.0
func PlanMultiplier(planName string) float64 {
	if m, ok := planMultipliers[planName]; ok {
		return m
	}
	return 1.0
}

// IsHighValueCountry indica se o país pertence ao conjunto premium
func IsHighValueCountry(countryCode string) bool {
	return highValueCountries[strings.ToUpper(countryCode)]
}

// ResolveMultipliers deriva todos os multiplicadores de um contexto de clique.
// Função pura sobre tabelas imutáveis.
func ResolveMultipliers(click domain.ClickContext) domain.MultiplierBreakdown {
	unique := 1.0
	if !click.IsUniqueClick {
		unique = nonUniqueMultiplier
	}

	return domain.MultiplierBreakdown{
		Country: CountryMultiplier(click.CountryCode),
		Device:  DeviceMultiplier(click.Device),
		Time:    TimeMultiplier(click.HourOfDay),
		Plan:    PlanMultiplier(click.PlanID),
		Unique:  unique,
	}
}
