package controllers

import (
	"net/http"

	"github.com/branchstock/branchstock-backend/api/responses"
	"github.com/branchstock/branchstock-backend/api/validators"
	"github.com/branchstock/branchstock-backend/internal/reports"
	"github.com/branchstock/branchstock-backend/pkg/logger"
)

func reportHandler(svc reports.Service, logg *logger.Logger, period reports.Period, anchorParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		anchor := validators.QueryString(r, anchorParam)
		branch := validators.QueryString(r, "branch")

		dto, err := svc.Report(r.Context(), caller, period, anchor, branch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// ReportDaily aggregates one calendar day, anchored by the date parameter.
func ReportDaily(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return reportHandler(svc, logg, reports.PeriodDaily, "date")
}

// ReportMonthly aggregates one calendar month, anchored by the month parameter.
func ReportMonthly(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return reportHandler(svc, logg, reports.PeriodMonthly, "month")
}

// ReportYearly aggregates one calendar year, anchored by the year parameter.
func ReportYearly(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return reportHandler(svc, logg, reports.PeriodYearly, "year")
}
