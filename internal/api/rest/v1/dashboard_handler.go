package v1

import (
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler defines the interface for the dashboard endpoints
type DashboardHandler interface {
	Stats(ctx *gin.Context)
	RecentActivity(ctx *gin.Context)
	Revenue(ctx *gin.Context)
}

type dashboardHandler struct {
	dashboardService dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /dashboard/stats
func (handler *dashboardHandler) Stats(ctx *gin.Context) {
	stats, err := handler.dashboardService.Stats(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatsResponse{
		TotalCustomers:               stats.TotalCustomers,
		NewCustomers:                 stats.NewCustomers,
		ReturningCustomersPercentage: stats.ReturningPercentage,
		ScheduledAppointments:        stats.ScheduledAppointments,
		TotalCustomersTrend:          toTrendResponse(stats.TotalCustomersTrend),
		NewCustomersTrend:            toTrendResponse(stats.NewCustomersTrend),
		ReturningCustomersTrend:      toTrendResponse(stats.ReturningCustomersTrend),
		ScheduledAppointmentsTrend:   toTrendResponse(stats.ScheduledAppointmentsTrend),
	})
}

// RecentActivity handles GET /dashboard/recent-activity?limit
func (handler *dashboardHandler) RecentActivity(ctx *gin.Context) {
	limit, err := boundedIntQuery(ctx, "limit", 10, 1, 100)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, err.Error())
		return
	}

	list, err := handler.dashboardService.RecentActivity(ctx.Request.Context(), limit)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	items := toActivityResponses(list)
	ctx.JSON(http.StatusOK, RecentActivityResponse{Activities: items, Total: len(items)})
}

// Revenue handles GET /dashboard/revenue?period=week|month|year
func (handler *dashboardHandler) Revenue(ctx *gin.Context) {
	report, err := handler.dashboardService.Revenue(ctx.Request.Context(), ctx.DefaultQuery("period", dashboard.PeriodMonth))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	points := make([]ChartPointResponse, 0, len(report.ChartData))
	for _, point := range report.ChartData {
		points = append(points, ChartPointResponse{Date: point.Label, Revenue: point.Revenue, Count: point.Count})
	}

	ctx.JSON(http.StatusOK, RevenueResponse{
		Period:       report.Period,
		TotalRevenue: report.TotalRevenue,
		ChartData:    points,
	})
}
