package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"staffly/config/middleware"
	"staffly/handlers"
	"staffly/pkg/authz"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Employees   *handlers.EmployeeHandler
	Departments *handlers.DepartmentHandler
	Attendance  *handlers.AttendanceHandler
	Leaves      *handlers.LeaveRequestHandler
	Payroll     *handlers.PayrollHandler
	Assets      *handlers.AssetHandler
	Candidates  *handlers.CandidateHandler
	Documents   *handlers.DocumentHandler
	Schedules   *handlers.WorkScheduleHandler
	Socket      *handlers.SocketHandler
}

func SetupRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, users middleware.UserLookup, authorizer middleware.Authorizer, log *zap.Logger) {
	log.Info("registering routes")

	auth := middleware.AuthMiddleware(tokens, users)
	can := func(obj, act string) fiber.Handler {
		return middleware.RequirePermission(authorizer, log, obj, act)
	}

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Staffly HR API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/ws", h.Socket.Upgrade, middleware.SocketAuth(tokens, users), h.Socket.Serve())

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/logout", auth, h.Auth.Logout)
	authGroup.Get("/me", auth, h.Auth.Me)

	employees := api.Group("/employees", auth)
	employees.Get("/", can(authz.ObjEmployees, authz.ActRead), h.Employees.GetAll)
	employees.Get("/org-chart", can(authz.ObjEmployees, authz.ActRead), h.Employees.OrgChart)
	employees.Get("/department-stats", can(authz.ObjEmployees, authz.ActRead), h.Employees.DepartmentStats)
	employees.Post("/", can(authz.ObjEmployees, authz.ActManage), h.Employees.Create)
	employees.Put("/:id", can(authz.ObjEmployees, authz.ActManage), h.Employees.Update)
	employees.Delete("/:id", can(authz.ObjEmployees, authz.ActManage), h.Employees.Delete)

	departments := api.Group("/departments", auth)
	departments.Get("/", can(authz.ObjDepartments, authz.ActRead), h.Departments.GetAll)
	departments.Post("/", can(authz.ObjDepartments, authz.ActManage), h.Departments.Create)
	departments.Put("/:id", can(authz.ObjDepartments, authz.ActManage), h.Departments.Update)
	departments.Delete("/:id", can(authz.ObjDepartments, authz.ActManage), h.Departments.Delete)

	attendance := api.Group("/attendance", auth)
	attendance.Post("/check-in", can(authz.ObjAttendance, authz.ActWrite), h.Attendance.CheckIn)
	attendance.Post("/check-out", can(authz.ObjAttendance, authz.ActWrite), h.Attendance.CheckOut)
	attendance.Post("/scan", can(authz.ObjAttendance, authz.ActWrite), h.Attendance.ScanQRCode)
	attendance.Get("/today", can(authz.ObjAttendance, authz.ActRead), h.Attendance.GetToday)
	attendance.Get("/my-history", can(authz.ObjAttendance, authz.ActRead), h.Attendance.GetMyHistory)
	attendance.Get("/all", can(authz.ObjAttendance, authz.ActManage), h.Attendance.GetAll)
	attendance.Get("/team-status", can(authz.ObjAttendance, authz.ActManage), h.Attendance.TeamStatus)
	attendance.Get("/recent", can(authz.ObjAttendance, authz.ActManage), h.Attendance.RecentActivity)
	attendance.Get("/generate-qr", can(authz.ObjAttendance, authz.ActManage), h.Attendance.GenerateQRCode)

	leaves := api.Group("/leaves", auth)
	leaves.Post("/", can(authz.ObjLeaves, authz.ActWrite), h.Leaves.Create)
	leaves.Get("/me", can(authz.ObjLeaves, authz.ActRead), h.Leaves.GetMine)
	leaves.Get("/balance", can(authz.ObjLeaves, authz.ActRead), h.Leaves.GetBalance)
	leaves.Get("/all", can(authz.ObjLeaves, authz.ActManage), h.Leaves.GetAll)
	leaves.Put("/:id/status", can(authz.ObjLeaves, authz.ActManage), h.Leaves.UpdateStatus)

	payroll := api.Group("/payroll", auth)
	payroll.Post("/", can(authz.ObjPayroll, authz.ActManage), h.Payroll.Generate)
	payroll.Put("/:id/pay", can(authz.ObjPayroll, authz.ActManage), h.Payroll.MarkPaid)
	payroll.Get("/me", can(authz.ObjPayroll, authz.ActRead), h.Payroll.GetMine)
	payroll.Get("/all", can(authz.ObjPayroll, authz.ActManage), h.Payroll.GetAll)

	assets := api.Group("/assets", auth)
	assets.Get("/", can(authz.ObjAssets, authz.ActRead), h.Assets.GetAll)
	assets.Post("/", can(authz.ObjAssets, authz.ActWrite), h.Assets.Create)
	assets.Put("/:id", can(authz.ObjAssets, authz.ActWrite), h.Assets.Update)
	assets.Delete("/:id", can(authz.ObjAssets, authz.ActManage), h.Assets.Delete)

	candidates := api.Group("/candidates", auth)
	candidates.Get("/", can(authz.ObjCandidates, authz.ActRead), h.Candidates.GetAll)
	candidates.Get("/board", can(authz.ObjCandidates, authz.ActRead), h.Candidates.GetBoard)
	candidates.Post("/", can(authz.ObjCandidates, authz.ActWrite), h.Candidates.Create)
	candidates.Put("/:id/status", can(authz.ObjCandidates, authz.ActWrite), h.Candidates.UpdateStatus)
	candidates.Delete("/:id", can(authz.ObjCandidates, authz.ActManage), h.Candidates.Delete)

	// Ownership of a single document is checked by the service.
	documents := api.Group("/documents", auth)
	documents.Post("/", can(authz.ObjDocuments, authz.ActWrite), h.Documents.Upload)
	documents.Get("/", can(authz.ObjDocuments, authz.ActRead), h.Documents.GetAll)
	documents.Get("/employee/:id", can(authz.ObjDocuments, authz.ActManage), h.Documents.GetByEmployee)
	documents.Get("/:id/download", can(authz.ObjDocuments, authz.ActRead), h.Documents.Download)
	documents.Delete("/:id", can(authz.ObjDocuments, authz.ActWrite), h.Documents.Delete)

	schedules := api.Group("/schedules", auth)
	schedules.Get("/", can(authz.ObjSchedules, authz.ActRead), h.Schedules.GetAll)
	schedules.Get("/occurrences", can(authz.ObjSchedules, authz.ActRead), h.Schedules.GetOccurrences)
	schedules.Get("/:id", can(authz.ObjSchedules, authz.ActRead), h.Schedules.GetByID)
	schedules.Post("/", can(authz.ObjSchedules, authz.ActManage), h.Schedules.Create)
	schedules.Put("/:id", can(authz.ObjSchedules, authz.ActManage), h.Schedules.Update)
	schedules.Delete("/:id", can(authz.ObjSchedules, authz.ActManage), h.Schedules.Delete)

	for _, r := range app.GetRoutes(true) {
		log.Debug("route", zap.String("method", r.Method), zap.String("path", r.Path))
	}
	log.Info("routes registered", zap.Int("count", len(app.GetRoutes(true))))
}
