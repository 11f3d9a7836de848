package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/taller/backend/internal/application/report"
)

// DashboardHandler handles dashboard and report API endpoints. Every
// report takes an optional date query parameter and defaults to today.
type DashboardHandler struct {
	BaseHandler
	service *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDailyRevenue returns the revenue figures of one day
func (h *DashboardHandler) GetDailyRevenue(c *gin.Context) {
	res, err := h.service.DailyRevenue(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetWeeklyServices returns per-service tallies over the week of a day
func (h *DashboardHandler) GetWeeklyServices(c *gin.Context) {
	res, err := h.service.WeeklyServiceCompletions(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetWeeklyClients returns the top clients of the week by job count
func (h *DashboardHandler) GetWeeklyClients(c *gin.Context) {
	res, err := h.service.WeeklyClients(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetPendingJobs returns open work orders with their line items
func (h *DashboardHandler) GetPendingJobs(c *gin.Context) {
	res, err := h.service.PendingJobs(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetRevenueByDayOfWeek returns a zero-seeded revenue series over the week
func (h *DashboardHandler) GetRevenueByDayOfWeek(c *gin.Context) {
	res, err := h.service.RevenueByDayOfWeek(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetRevenueByDayOfMonth returns a zero-seeded revenue series over the month
func (h *DashboardHandler) GetRevenueByDayOfMonth(c *gin.Context) {
	res, err := h.service.RevenueByDayOfMonth(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetGeneralStatistics returns all-time workshop counters
func (h *DashboardHandler) GetGeneralStatistics(c *gin.Context) {
	res, err := h.service.GeneralStatistics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetRevenueByPaymentMethod splits a day's revenue across payment methods
func (h *DashboardHandler) GetRevenueByPaymentMethod(c *gin.Context) {
	res, err := h.service.RevenueByPaymentMethod(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetDayExpenses itemizes a day's expenses
func (h *DashboardHandler) GetDayExpenses(c *gin.Context) {
	res, err := h.service.DayExpenses(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetFinancialSummary returns revenue, expense, net and margin for a day
func (h *DashboardHandler) GetFinancialSummary(c *gin.Context) {
	res, err := h.service.FinancialSummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// GetWeekOverview returns the composite weekly report
func (h *DashboardHandler) GetWeekOverview(c *gin.Context) {
	res, err := h.service.WeekOverview(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, res)
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/revenue/daily", h.GetDailyRevenue)
		dashboard.GET("/revenue/week", h.GetRevenueByDayOfWeek)
		dashboard.GET("/revenue/month", h.GetRevenueByDayOfMonth)
		dashboard.GET("/revenue/payment-methods", h.GetRevenueByPaymentMethod)
		dashboard.GET("/services/weekly", h.GetWeeklyServices)
		dashboard.GET("/clients/weekly", h.GetWeeklyClients)
		dashboard.GET("/jobs/pending", h.GetPendingJobs)
		dashboard.GET("/expenses/day", h.GetDayExpenses)
		dashboard.GET("/statistics", h.GetGeneralStatistics)
		dashboard.GET("/financial-summary", h.GetFinancialSummary)
		dashboard.GET("/week-overview", h.GetWeekOverview)
	}
}
