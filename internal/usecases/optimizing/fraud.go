package optimizing

import (
	"regexp"
	"strings"
)

// Padrões de prefixos de IP associados a bots conhecidos, avaliados em ordem.
// Lista heurística: falsos negativos são esperados e aceitáveis.
var botIPPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^66\.249\.`), // Googlebot
	regexp.MustCompile(`^157\.55\.`), // Bing bot
	regexp.MustCompile(`^54\.`),      // AWS (comum para bots)
	regexp.MustCompile(`^18\.`),      // AWS
}

// IsSuspicious classifica um IP como tráfego suspeito antes de qualquer
// cálculo monetário. Função pura: o mesmo IP sempre produz o mesmo veredito
// dentro de uma mesma versão da tabela de padrões.
//
// Endereços privados/loopback nunca são sinalizados — tráfego local de
// desenvolvimento é explicitamente permitido.
func IsSuspicious(clientIP string) bool {
	if clientIP == "127.0.0.1" || clientIP == "::1" || strings.HasPrefix(clientIP, "192.168.") {
		return false
	}

	for _, pattern := range botIPPatterns {
		if pattern.MatchString(clientIP) {
			return true
		}
	}

	return false
}
