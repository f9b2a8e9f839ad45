package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extrai o IP real do cliente considerando os cabeçalhos de proxy
// mais comuns, na ordem de confiança: CDN, proxy reverso, cadeia de
// encaminhamento e por fim o endereço remoto da conexão.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	// X-Forwarded-For pode conter uma cadeia; o primeiro é o cliente original
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// IsValidIP verifica se a string é um endereço IPv4 ou IPv6 válido
func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
