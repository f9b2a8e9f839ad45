package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/internal/domain"
	"github.com/vfg2006/linkvault-api/internal/usecases/shortening"
	"github.com/vfg2006/linkvault-api/pkg/apiErrors"
	"github.com/vfg2006/linkvault-api/pkg/middleware"
	"github.com/vfg2006/linkvault-api/pkg/utils"
)

// CreateLink encurta uma nova URL para o usuário autenticado
func CreateLink(service shortening.Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateLink")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		link, err := service.CreateShortLink(userClaims.UserID, &req)
		if err != nil {
			logrus.Error(err)

			switch {
			case errors.Is(err, shortening.ErrInvalidURL):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

			case errors.Is(err, shortening.ErrAliasInUse):
				apiErrors.WriteError(w, apiErrors.ErrAliasAlreadyExists, err.Error(), nil)

			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar link", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(link); err != nil {
			logrus.Error(err)
		}
	}
}

// ListLinks lista os links do usuário autenticado
func ListLinks(service shortening.Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		links, err := service.ListLinks(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar links", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(links); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetLinkStats retorna o link e sua série diária agregada. Os parâmetros
// from/to (YYYY-MM-DD) limitam o intervalo; o padrão são os últimos 30 dias.
func GetLinkStats(service shortening.Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		code := httprouter.ParamsFromContext(r.Context()).ByName("code")
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Código do link não fornecido", nil)
			return
		}

		to := time.Now()
		from := to.AddDate(0, 0, -30)

		if fromStr := r.URL.Query().Get("from"); fromStr != "" {
			parsed, err := utils.ParseDate(fromStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inicial inválida", nil)
				return
			}
			from = *parsed
		}

		if toStr := r.URL.Query().Get("to"); toStr != "" {
			parsed, err := utils.ParseDate(toStr)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data final inválida", nil)
				return
			}
			to = *parsed
		}

		stats, err := service.GetLinkStats(userClaims.UserID, code, from, to)
		if err != nil {
			switch {
			case errors.Is(err, shortening.ErrLinkNotFound):
				apiErrors.WriteError(w, apiErrors.ErrLinkNotFound, "Link não encontrado", nil)

			case errors.Is(err, shortening.ErrNotLinkOwner):
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Link pertence a outro usuário", nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar estatísticas", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// PredictEarnings estima os ganhos para um volume de cliques no plano do
// usuário autenticado
func PredictEarnings(service shortening.Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		clicksStr := r.URL.Query().Get("clicks")
		clicks, err := strconv.Atoi(clicksStr)
		if err != nil || clicks < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro clicks inválido", nil)
			return
		}

		prediction := service.PredictEarnings(userClaims.UserPlan, clicks)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(prediction); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// RecommendPlan sugere o plano mais adequado para o volume mensal informado
func RecommendPlan(service shortening.Shortener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clicksStr := r.URL.Query().Get("monthly_clicks")
		clicks, err := strconv.Atoi(clicksStr)
		if err != nil || clicks < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro monthly_clicks inválido", nil)
			return
		}

		recommendation := service.RecommendPlan(clicks)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(recommendation); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
