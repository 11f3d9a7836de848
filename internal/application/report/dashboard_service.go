package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
	"github.com/taller/backend/internal/domain/report"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/domain/workshop"
)

// DashboardService builds the read-only reports. Every report takes an
// optional day string and defaults to "today" in the workshop's zone.
type DashboardService struct {
	repo  report.DashboardRepository
	clock *localtime.Normalizer
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo report.DashboardRepository, clock *localtime.Normalizer) *DashboardService {
	return &DashboardService{repo: repo, clock: clock}
}

// DailyRevenueResponse is the day's revenue headline
type DailyRevenueResponse struct {
	Date       string          `json:"date"`
	Total      decimal.Decimal `json:"total"`
	OrderCount int             `json:"order_count"`
}

// ServiceTallyResponse is one per-service grouping row
type ServiceTallyResponse struct {
	ServiceName string          `json:"service_name"`
	Count       int64           `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ClientTallyResponse is one per-client grouping row
type ClientTallyResponse struct {
	ClientName string          `json:"client_name"`
	Jobs       int64           `json:"jobs"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// PendingItemResponse is a line item inside a pending job row
type PendingItemResponse struct {
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
	Completed   bool            `json:"completed"`
}

// PendingJobResponse is one open order in the pending-jobs report
type PendingJobResponse struct {
	ID         uuid.UUID             `json:"id"`
	ClientName string                `json:"client_name"`
	Vehicle    string                `json:"vehicle"`
	Plate      string                `json:"plate,omitempty"`
	Status     string                `json:"status"`
	Total      decimal.Decimal       `json:"total"`
	Items      []PendingItemResponse `json:"items"`
}

// DayBucketResponse is one day of a revenue series, zero when nothing
// qualified
type DayBucketResponse struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GeneralStatisticsResponse is the all-time headline counters
type GeneralStatisticsResponse struct {
	TotalOrders         int64           `json:"total_orders"`
	DistinctClients     int64           `json:"distinct_clients"`
	ActiveServices      int64           `json:"active_services"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	CompletedOrders     int64           `json:"completed_orders"`
	PendingOrders       int64           `json:"pending_orders"`
	CompletedPercentage decimal.Decimal `json:"completed_percentage"`
}

// PaymentMethodRowResponse is one row of the payment-method split. The
// enumeration is fixed; methods with no orders still appear at zero.
type PaymentMethodRowResponse struct {
	Method     string          `json:"method"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DayExpenseResponse is one expense row in the day's expense report
type DayExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DayExpensesResponse lists a day's expenses with their total
type DayExpensesResponse struct {
	Date     string               `json:"date"`
	Total    decimal.Decimal      `json:"total"`
	Expenses []DayExpenseResponse `json:"expenses"`
}

// FinancialSummaryResponse is the day's revenue/expense/margin snapshot
type FinancialSummaryResponse struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	Expense    decimal.Decimal `json:"expense"`
	NetBalance decimal.Decimal `json:"net_balance"`
	Margin     decimal.Decimal `json:"margin"`
}

// WeekOverviewResponse is the composite weekly report
type WeekOverviewResponse struct {
	WeekStart  string                 `json:"week_start"`
	WeekEnd    string                 `json:"week_end"`
	Revenue    []DayBucketResponse    `json:"revenue"`
	TopService []ServiceTallyResponse `json:"top_services"`
	TopClients []ClientTallyResponse  `json:"top_clients"`
}

// DailyRevenue sums the totals of completed or delivered orders whose last
// update falls on the given day
func (s *DashboardService) DailyRevenue(ctx context.Context, day string) (*DailyRevenueResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.RevenueOrders(ctx, s.clock.DayRange(localDay))
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range orders {
		total = total.Add(orders[i].Total)
	}
	return &DailyRevenueResponse{
		Date:       s.clock.FormatDay(localDay),
		Total:      total.Round(2),
		OrderCount: len(orders),
	}, nil
}

// WeeklyServiceCompletions groups the week's line items by service
func (s *DashboardService) WeeklyServiceCompletions(ctx context.Context, day string) ([]ServiceTallyResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	tallies, err := s.repo.ServiceCompletions(ctx, s.clock.WeekRange(localDay))
	if err != nil {
		return nil, err
	}
	return toServiceTallies(tallies), nil
}

// WeeklyClients returns the week's top five clients by job count
func (s *DashboardService) WeeklyClients(ctx context.Context, day string) ([]ClientTallyResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.OrdersCreated(ctx, s.clock.WeekRange(localDay))
	if err != nil {
		return nil, err
	}
	return topClients(orders, 5), nil
}

// PendingJobs lists the open orders created on a day, with their items
func (s *DashboardService) PendingJobs(ctx context.Context, day string) ([]PendingJobResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.OpenOrders(ctx, s.clock.DayRange(localDay))
	if err != nil {
		return nil, err
	}

	out := make([]PendingJobResponse, len(orders))
	for i := range orders {
		items := make([]PendingItemResponse, len(orders[i].Items))
		for j, item := range orders[i].Items {
			items[j] = PendingItemResponse{
				ServiceName: item.ServiceName,
				Price:       item.Price,
				Completed:   item.Completed,
			}
		}
		out[i] = PendingJobResponse{
			ID:         orders[i].ID,
			ClientName: orders[i].ClientName,
			Vehicle:    orders[i].Vehicle,
			Plate:      orders[i].Plate,
			Status:     orders[i].Status.String(),
			Total:      orders[i].Total,
			Items:      items,
		}
	}
	return out, nil
}

// RevenueByDayOfWeek returns the week's revenue series, one bucket per
// calendar day, pre-seeded at zero
func (s *DashboardService) RevenueByDayOfWeek(ctx context.Context, day string) ([]DayBucketResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	return s.revenueSeries(ctx, s.clock.WeekRange(localDay))
}

// RevenueByDayOfMonth returns the month's revenue series, one bucket per
// calendar day, pre-seeded at zero
func (s *DashboardService) RevenueByDayOfMonth(ctx context.Context, day string) ([]DayBucketResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	return s.revenueSeries(ctx, s.clock.MonthRange(localDay))
}

// GeneralStatistics returns the all-time counters. The completed percentage
// is 0 when no orders exist.
func (s *DashboardService) GeneralStatistics(ctx context.Context) (*GeneralStatisticsResponse, error) {
	totals, err := s.repo.GeneralTotals(ctx)
	if err != nil {
		return nil, err
	}

	pct := decimal.Zero
	if totals.Orders > 0 {
		pct = decimal.NewFromInt(totals.CompletedOrders).
			Div(decimal.NewFromInt(totals.Orders)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return &GeneralStatisticsResponse{
		TotalOrders:         totals.Orders,
		DistinctClients:     totals.DistinctClients,
		ActiveServices:      totals.ActiveServices,
		TotalRevenue:        totals.Revenue,
		CompletedOrders:     totals.CompletedOrders,
		PendingOrders:       totals.PendingOrders,
		CompletedPercentage: pct,
	}, nil
}

// RevenueByPaymentMethod splits a day's revenue across the fixed payment
// method enumeration. Percentages are 0 when the day's total is zero.
func (s *DashboardService) RevenueByPaymentMethod(ctx context.Context, day string) ([]PaymentMethodRowResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.RevenueOrders(ctx, s.clock.DayRange(localDay))
	if err != nil {
		return nil, err
	}

	counts := make(map[workshop.PaymentMethod]int)
	sums := make(map[workshop.PaymentMethod]decimal.Decimal)
	total := decimal.Zero
	for i := range orders {
		m := orders[i].PaymentMethod
		counts[m]++
		sums[m] = sums[m].Add(orders[i].Total)
		total = total.Add(orders[i].Total)
	}

	methods := workshop.AllPaymentMethods()
	out := make([]PaymentMethodRowResponse, len(methods))
	for i, m := range methods {
		revenue := sums[m]
		pct := decimal.Zero
		if total.IsPositive() {
			pct = revenue.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out[i] = PaymentMethodRowResponse{
			Method:     m.String(),
			Count:      counts[m],
			Revenue:    revenue.Round(2),
			Percentage: pct,
		}
	}
	return out, nil
}

// DayExpenses lists a day's expenses with their total
func (s *DashboardService) DayExpenses(ctx context.Context, day string) (*DayExpensesResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ExpensesInRange(ctx, s.clock.DayRange(localDay))
	if err != nil {
		return nil, err
	}

	rows := make([]DayExpenseResponse, len(expenses))
	for i := range expenses {
		rows[i] = DayExpenseResponse{
			ID:          expenses[i].ID,
			Description: expenses[i].Description(),
			Amount:      expenses[i].Amount,
			CreatedAt:   expenses[i].CreatedAt,
		}
	}
	return &DayExpensesResponse{
		Date:     s.clock.FormatDay(localDay),
		Total:    finance.TotalExpenses(expenses),
		Expenses: rows,
	}, nil
}

// FinancialSummary reports a day's revenue against its expenses. Margin is
// 0 when revenue is zero.
func (s *DashboardService) FinancialSummary(ctx context.Context, day string) (*FinancialSummaryResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	period := s.clock.DayRange(localDay)

	orders, err := s.repo.RevenueOrders(ctx, period)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for i := range orders {
		revenue = revenue.Add(orders[i].Total)
	}

	expenses, err := s.repo.ExpensesInRange(ctx, period)
	if err != nil {
		return nil, err
	}
	expense := finance.TotalExpenses(expenses)

	net := revenue.Sub(expense)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = net.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &FinancialSummaryResponse{
		Date:       s.clock.FormatDay(localDay),
		Revenue:    revenue.Round(2),
		Expense:    expense.Round(2),
		NetBalance: net.Round(2),
		Margin:     margin,
	}, nil
}

// WeekOverview combines the week's revenue series, top services, and top
// clients into one report
func (s *DashboardService) WeekOverview(ctx context.Context, day string) (*WeekOverviewResponse, error) {
	localDay, err := s.localDay(day)
	if err != nil {
		return nil, err
	}
	week := s.clock.WeekRange(localDay)

	revenue, err := s.revenueSeries(ctx, week)
	if err != nil {
		return nil, err
	}
	tallies, err := s.repo.ServiceCompletions(ctx, week)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.OrdersCreated(ctx, week)
	if err != nil {
		return nil, err
	}

	return &WeekOverviewResponse{
		WeekStart:  s.clock.FormatDay(week.Start),
		WeekEnd:    s.clock.FormatDay(week.End.AddDate(0, 0, -1)),
		Revenue:    revenue,
		TopService: toServiceTallies(tallies),
		TopClients: topClients(orders, 5),
	}, nil
}

// revenueSeries buckets revenue-eligible order totals by local day over the
// period. Every day appears, zero when nothing qualified, so series sums
// always match the period's aggregate revenue.
func (s *DashboardService) revenueSeries(ctx context.Context, period localtime.Range) ([]DayBucketResponse, error) {
	orders, err := s.repo.RevenueOrders(ctx, period)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]decimal.Decimal)
	var days []string
	for d := period.Start; d.Before(period.End); d = d.AddDate(0, 0, 1) {
		key := s.clock.FormatDay(d)
		buckets[key] = decimal.Zero
		days = append(days, key)
	}
	for i := range orders {
		key := s.clock.FormatDay(s.clock.LocalDay(orders[i].UpdatedAt))
		if _, ok := buckets[key]; ok {
			buckets[key] = buckets[key].Add(orders[i].Total)
		}
	}

	out := make([]DayBucketResponse, len(days))
	for i, key := range days {
		out[i] = DayBucketResponse{Date: key, Revenue: buckets[key].Round(2)}
	}
	return out, nil
}

func (s *DashboardService) localDay(day string) (time.Time, error) {
	date, err := s.clock.ResolveDay(day)
	if err != nil {
		return time.Time{}, err
	}
	return s.clock.LocalDay(date), nil
}

func toServiceTallies(tallies []report.ServiceTally) []ServiceTallyResponse {
	out := make([]ServiceTallyResponse, len(tallies))
	for i, t := range tallies {
		out[i] = ServiceTallyResponse{
			ServiceName: t.ServiceName,
			Count:       t.Count,
			Revenue:     t.Revenue.Round(2),
		}
	}
	return out
}

// topClients maps the domain's top-client grouping onto response rows
func topClients(orders []workshop.WorkOrder, n int) []ClientTallyResponse {
	tallies := report.TopClients(orders, n)
	out := make([]ClientTallyResponse, len(tallies))
	for i, t := range tallies {
		out[i] = ClientTallyResponse{
			ClientName: t.ClientName,
			Jobs:       t.Jobs,
			TotalSpent: t.TotalSpent,
		}
	}
	return out
}
