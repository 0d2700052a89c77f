package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"staffly/config"
	_ "staffly/docs"
	"staffly/handlers"
	"staffly/pkg/authz"
	"staffly/pkg/mailer"
	"staffly/pkg/paseto"
	"staffly/pkg/presence"
	"staffly/pkg/realtime"
	"staffly/repository"
	"staffly/router"
	"staffly/seeder"
	"staffly/services"
	_ "time/tzdata"
)

const (
	tokenTTL       = 24 * time.Hour
	sweepInterval  = 5 * time.Minute
	shutdownPeriod = 10 * time.Second
)

// @title Staffly HR API
// @version 1.0
// @description Multi-tenant HR backend: attendance, leave balances, payroll, assets, documents and recruitment.
//
// @contact.name API Support
// @contact.email support@staffly.dev
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := config.MongoConnect(ctx, cfg.MongoString)
	if err != nil {
		zlog.Fatal("mongo connect failed", zap.Error(err))
	}
	defer config.DisconnectDB(client)

	db := client.Database(cfg.DBName)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		zlog.Fatal("ensure indexes failed", zap.Error(err))
	}

	companyRepo := repository.NewCompanyRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	qrRepo := repository.NewQRCodeRepository(db)
	leaveRepo := repository.NewLeaveRequestRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	scheduleRepo := repository.NewWorkScheduleRepository(db)

	if cfg.SeedDemo {
		err := seeder.SeedDemo(ctx, seeder.Repositories{
			Companies:   companyRepo,
			Employees:   employeeRepo,
			Departments: deptRepo,
		}, zlog.Named("seeder"))
		if err != nil {
			zlog.Fatal("seeding failed", zap.Error(err))
		}
	}

	var sender mailer.Sender = mailer.LogSender{Log: zlog.Named("mail")}
	if cfg.MailEnabled() {
		smtp, err := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.FromEmail,
		})
		if err != nil {
			zlog.Fatal("smtp setup failed", zap.Error(err))
		}
		sender = smtp
	}
	dispatcher := mailer.NewDispatcher(sender, zlog.Named("mail"))
	notifier := mailer.NewNotifier(dispatcher, zlog.Named("mail"))
	hub := realtime.NewHub(presence.NewMemory(), zlog.Named("realtime"))

	tokens, err := paseto.NewMaker(cfg.PasetoSecret, tokenTTL)
	if err != nil {
		zlog.Fatal("token maker setup failed", zap.Error(err))
	}
	authorizer, err := authz.NewAuthorizer()
	if err != nil {
		zlog.Fatal("authorizer setup failed", zap.Error(err))
	}

	clock := services.NewClock(cfg.Location)
	attendanceSvc := services.NewAttendanceService(attendanceRepo, employeeRepo, leaveRepo, clock, zlog)
	qrSvc := services.NewQRService(qrRepo, attendanceSvc, attendanceRepo, clock, zlog)
	leaveSvc := services.NewLeaveService(leaveRepo, employeeRepo, cfg.LeavePolicy, notifier, hub, clock, zlog)
	payrollSvc := services.NewPayrollService(payrollRepo, employeeRepo, notifier, hub, clock, zlog)
	authSvc := services.NewAuthService(companyRepo, employeeRepo, deptRepo, notifier, clock, zlog)
	employeeSvc := services.NewEmployeeService(employeeRepo, deptRepo, assetRepo, notifier, clock, zlog)
	deptSvc := services.NewDepartmentService(deptRepo, employeeRepo)
	assetSvc := services.NewAssetService(assetRepo, employeeRepo, clock)
	candidateSvc := services.NewCandidateService(candidateRepo, hub, clock)
	documentSvc := services.NewDocumentService(documentRepo, employeeRepo, cfg.UploadMaxBytes)
	scheduleSvc := services.NewScheduleService(scheduleRepo, clock)

	if cfg.AbsenceSweep {
		absenceSvc := services.NewAbsenceService(scheduleRepo, employeeRepo, leaveRepo, attendanceRepo, clock, zlog.Named("absence"))
		services.NewScheduler(absenceSvc, sweepInterval, zlog.Named("scheduler")).Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName: "Staffly HR API",
		// Leave room for multipart framing around the largest upload.
		BodyLimit: int(cfg.UploadMaxBytes) + 1<<20,
	})
	app.Use(recover.New())
	config.SetupCORS(app, config.AllowedOrigins(cfg.ClientURL))
	app.Use(logger.New())

	router.SetupRoutes(app, router.Handlers{
		Auth:        handlers.NewAuthHandler(authSvc, tokens, zlog),
		Employees:   handlers.NewEmployeeHandler(employeeSvc, zlog),
		Departments: handlers.NewDepartmentHandler(deptSvc, zlog),
		Attendance:  handlers.NewAttendanceHandler(attendanceSvc, qrSvc, zlog),
		Leaves:      handlers.NewLeaveRequestHandler(leaveSvc, zlog),
		Payroll:     handlers.NewPayrollHandler(payrollSvc, zlog),
		Assets:      handlers.NewAssetHandler(assetSvc, zlog),
		Candidates:  handlers.NewCandidateHandler(candidateSvc, zlog),
		Documents:   handlers.NewDocumentHandler(documentSvc, zlog),
		Schedules:   handlers.NewWorkScheduleHandler(scheduleSvc, cfg.Location, zlog),
		Socket:      handlers.NewSocketHandler(hub, zlog.Named("socket")),
	}, tokens, employeeRepo, authorizer, zlog)

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownPeriod); err != nil {
			zlog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("docs", "http://localhost:"+cfg.Port+"/docs/index.html"),
		zap.Strings("cors_origins", config.AllowedOrigins(cfg.ClientURL)),
		zap.Bool("mail", cfg.MailEnabled()),
		zap.Bool("absence_sweep", cfg.AbsenceSweep),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}

	dispatcher.Wait()
}
