package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{
			name:     "CF-Connecting-IP tem prioridade sobre os demais",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Real-IP": "198.51.100.9"},
			remote:   "10.0.0.1:34567",
			expected: "203.0.113.7",
		},
		{
			name:     "X-Real-IP vem antes do X-Forwarded-For",
			headers:  map[string]string{"X-Real-IP": "198.51.100.9", "X-Forwarded-For": "203.0.113.7"},
			remote:   "10.0.0.1:34567",
			expected: "198.51.100.9",
		},
		{
			name:     "X-Forwarded-For usa o primeiro endereço da cadeia",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"},
			remote:   "10.0.0.1:34567",
			expected: "203.0.113.7",
		},
		{
			name:     "Sem cabeçalhos de proxy cai no RemoteAddr sem porta",
			remote:   "203.0.113.7:34567",
			expected: "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/r/aB3xYz", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, ClientIP(r))
		})
	}
}

func TestIsValidIP(t *testing.T) {
	assert.True(t, IsValidIP("203.0.113.7"))
	assert.True(t, IsValidIP("::1"))
	assert.False(t, IsValidIP("não-é-ip"))
	assert.False(t, IsValidIP(""))
}
