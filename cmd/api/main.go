package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "sangam-backend/internal/adapter/http"
	mw "sangam-backend/internal/adapter/middleware"
	"sangam-backend/internal/adapter/repository/mysql"
	"sangam-backend/internal/audit"
	"sangam-backend/internal/auth"
	"sangam-backend/internal/config"
	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/infrastructure/cache"
	"sangam-backend/internal/infrastructure/db"
	"sangam-backend/internal/jobs"
	"sangam-backend/internal/mail"
	"sangam-backend/internal/metrics"
	ucactivity "sangam-backend/internal/usecase/activity"
	"sangam-backend/internal/usecase/authn"
	ucloan "sangam-backend/internal/usecase/loan"
	"sangam-backend/internal/usecase/loanrequest"
	ucmeeting "sangam-backend/internal/usecase/meeting"
	ucmember "sangam-backend/internal/usecase/member"
	ucpayment "sangam-backend/internal/usecase/payment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	members := mysql.NewMemberRepository(gdb)
	meetings := mysql.NewMeetingRepository(gdb)
	payments := mysql.NewPaymentRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	loanTypes := mysql.NewLoanTypeRepository(gdb)
	loanRequests := mysql.NewLoanRequestRepository(gdb)
	activities := mysql.NewActivityRepository(gdb)
	unitOfWork := mysql.NewGormUoW(gdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loanTypes.Seed(ctx, []loan.LoanType{
		{Name: "personal", MonthlyRatePercent: 1.16},
		{Name: "emergency", MonthlyRatePercent: 0.58},
		{Name: "business", MonthlyRatePercent: 2.5},
	}); err != nil {
		log.Fatalf("seed loan types: %v", err)
	}

	// audit sidecar: bounded queue, single writer with its own storage context
	auditWorker := audit.NewWorker(activities, cfg.AuditQueueSize, cfg.AuditWriteTimeout)
	auditWorker.Start()

	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)

	var mailer mail.Sender = &mail.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	}

	// usecases
	h := httpadp.Handlers{
		Base:        httpadp.NewHandler(),
		Auth:        httpadp.NewAuthHandler(authn.NewUsecase(members, tokens)),
		Member:      httpadp.NewMemberHandler(ucmember.NewUsecase(members)),
		Meeting:     httpadp.NewMeetingHandler(ucmeeting.NewUsecase(meetings)),
		Payment:     httpadp.NewPaymentHandler(ucpayment.NewUsecase(payments)),
		Loan:        httpadp.NewLoanHandler(ucloan.NewUsecase(loans, loanTypes)),
		LoanRequest: httpadp.NewLoanRequestHandler(loanrequest.NewUsecase(loanRequests, loanTypes, members, unitOfWork, mailer)),
		Activity:    httpadp.NewActivityHandler(ucactivity.NewUsecase(activities)),
	}

	// weekly dues job
	dues := jobs.NewWeeklyDuesGenerator(payments, members, cfg.WeeklyDuesAmount, cfg.WeeklyDuesInterval)
	go dues.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), metrics.HTTPMiddleware())

	httpadp.RegisterRoutes(e, h,
		mw.JWTAuth(tokens),
		mw.ActivityLog(auditWorker),
		mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	dues.Stop()
	// drain whatever audit entries are still queued
	if err := auditWorker.Close(shutdownCtx); err != nil {
		log.Printf("audit drain: %v", err)
	}
}
