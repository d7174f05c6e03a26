package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "sangam-backend/internal/adapter/middleware"
	"sangam-backend/internal/domain/member"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Base        *Handler
	Auth        *AuthHandler
	Member      *MemberHandler
	Meeting     *MeetingHandler
	Payment     *PaymentHandler
	Loan        *LoanHandler
	LoanRequest *LoanRequestHandler
	Activity    *ActivityHandler
}

// RegisterRoutes wires the API surface. authMW must validate the bearer token;
// extra middleware (idempotency, activity log) applies to the whole /api group.
func RegisterRoutes(e *echo.Echo, h Handlers, authMW echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
	e.GET("/health", h.Base.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/auth/login", h.Auth.Login)

	officers := mw.RequireRoles(string(member.RoleSecretary), string(member.RolePresident))

	api := e.Group("/api", append([]echo.MiddlewareFunc{authMW}, extra...)...)

	// members
	api.GET("/member", h.Member.List)
	api.POST("/member", h.Member.Create, officers)
	api.GET("/member/:id", h.Member.Get)
	api.PUT("/member/:id", h.Member.Update, officers)
	api.DELETE("/member/:id", h.Member.Delete, officers)

	// meetings & attendance
	api.GET("/meeting", h.Meeting.List)
	api.POST("/meeting", h.Meeting.Create, officers)
	api.GET("/meeting/:id", h.Meeting.Get)
	api.PUT("/meeting/:id", h.Meeting.Update, officers)
	api.DELETE("/meeting/:id", h.Meeting.Delete, officers)
	api.GET("/meeting/:id/attendance", h.Meeting.Attendance)
	api.PUT("/meeting/:id/attendance", h.Meeting.SetAttendance, officers)
	api.GET("/attendance/summary", h.Meeting.Summary)

	// dues payments
	api.GET("/payment", h.Payment.List)
	api.POST("/payment", h.Payment.Create, officers)
	api.GET("/payment/:id", h.Payment.Get)
	api.PUT("/payment/:id", h.Payment.Update, officers)
	api.POST("/payment/:id/paid", h.Payment.MarkPaid, officers)
	api.DELETE("/payment/:id", h.Payment.Delete, officers)

	// loans
	api.GET("/loantype", h.Loan.ListTypes)
	api.GET("/loan", h.Loan.List)
	api.POST("/loan", h.Loan.Create, officers)
	api.GET("/loan/:loan_id", h.Loan.Get)
	api.POST("/loan/:loan_id/interest", h.Loan.ReceiveInterest, officers)
	api.POST("/loan/:loan_id/close", h.Loan.Close, officers)
	api.DELETE("/loan/:loan_id", h.Loan.Delete, officers)

	// loan requests & dashboard
	api.POST("/loan-request", h.LoanRequest.Submit)
	api.GET("/dashboard/loan-requests", h.LoanRequest.ListPending, officers)
	api.POST("/dashboard/loan-requests/:request_id/action", h.LoanRequest.Act, officers)
	api.GET("/dashboard/loans-due", h.Loan.LoansDue)

	// activity audit read side
	api.POST("/useractivity/filter", h.Activity.Filter, officers)
	api.GET("/useractivity/statistics", h.Activity.Statistics, officers)
}
