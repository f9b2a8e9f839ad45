package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkvault-api/infrastructure/repository"
	"github.com/vfg2006/linkvault-api/internal/domain"
	"github.com/vfg2006/linkvault-api/pkg/apiErrors"
	"github.com/vfg2006/linkvault-api/pkg/middleware"
	"github.com/vfg2006/linkvault-api/pkg/utils"
)

// GetEarningsSummary retorna o agregado de ganhos do usuário autenticado
func GetEarningsSummary(earningRepo repository.EarningRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		summary, err := earningRepo.GetSummaryByUser(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao agregar ganhos", nil)
			return
		}

		// CPM médio exibido com duas casas; o ledger guarda quatro
		summary.AverageCPM = utils.RoundWithTwoDecimalPlace(summary.AverageCPM)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ListPlans lista os planos ativos da plataforma
func ListPlans(planRepo repository.PlanRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plans, err := planRepo.ListPlans()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar planos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plans); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
