package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signdesk/signdesk/internal/auth"
	authdomain "github.com/signdesk/signdesk/internal/auth/domain"
	"github.com/signdesk/signdesk/internal/auth/token"
	"github.com/signdesk/signdesk/internal/authorization"
	"github.com/signdesk/signdesk/internal/ccemail"
	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
	"github.com/signdesk/signdesk/internal/config"
	"github.com/signdesk/signdesk/internal/notify"
	obslogger "github.com/signdesk/signdesk/internal/observability/logger"
	obsmetrics "github.com/signdesk/signdesk/internal/observability/metrics"
	obstracing "github.com/signdesk/signdesk/internal/observability/tracing"
	"github.com/signdesk/signdesk/internal/office"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	"github.com/signdesk/signdesk/internal/order"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	"github.com/signdesk/signdesk/internal/providers/email"
	"github.com/signdesk/signdesk/internal/reorder"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	"github.com/signdesk/signdesk/internal/report"
	"github.com/signdesk/signdesk/internal/user"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"github.com/signdesk/signdesk/internal/vendors"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	authorization.Module,
	auth.Module,
	email.Module,
	notify.Module,
	office.Module,
	user.Module,
	vendors.Module,
	order.Module,
	reorder.Module,
	ccemail.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, notifySvc notify.Service) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			// Let in-flight notification sends finish before the
			// process exits.
			notifySvc.Wait()
			return nil
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	tokens     *token.Manager
	authsvc    authdomain.Service
	authzSvc   authorization.Service
	orderSvc   orderdomain.Service
	reorderSvc reorderdomain.Service
	ccemailSvc ccemaildomain.Service
	officeSvc  officedomain.Service
	userSvc    userdomain.Service
	vendorSvc  vendordomain.Service
	reportSvc  report.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Tokens     *token.Manager
	Authsvc    authdomain.Service
	AuthzSvc   authorization.Service
	OrderSvc   orderdomain.Service
	ReorderSvc reorderdomain.Service
	CCEmailSvc ccemaildomain.Service
	OfficeSvc  officedomain.Service
	UserSvc    userdomain.Service
	VendorSvc  vendordomain.Service
	ReportSvc  report.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		tokens:     p.Tokens,
		authsvc:    p.Authsvc,
		authzSvc:   p.AuthzSvc,
		orderSvc:   p.OrderSvc,
		reorderSvc: p.ReorderSvc,
		ccemailSvc: p.CCEmailSvc,
		officeSvc:  p.OfficeSvc,
		userSvc:    p.UserSvc,
		vendorSvc:  p.VendorSvc,
		reportSvc:  p.ReportSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/api/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/register", s.AuthRequired(), s.authorize(authorization.ObjectUser, authorization.ActionRegister), s.Register)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
	authGroup.POST("/refresh", s.AuthRequired(), s.Refresh)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	// -------- Orders --------
	api.GET("/orders", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListOrders)
	api.POST("/orders", s.authorize(authorization.ObjectOrder, authorization.ActionCreate), s.CreateOrder)
	api.GET("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.GetOrderByID)
	api.PUT("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionUpdate), s.UpdateOrder)
	api.DELETE("/orders/:id", s.authorize(authorization.ObjectOrder, authorization.ActionDelete), s.DeleteOrder)
	api.GET("/orders/eligible-for-reorder/:id", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.CheckReorderEligibility)

	// -------- Sign requests --------
	api.GET("/sign-requests", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.ListSignRequests)
	api.GET("/sign-requests/stats", s.authorize(authorization.ObjectOrder, authorization.ActionView), s.SignRequestStats)

	// -------- Reorders --------
	api.GET("/reorders/order/:orderId", s.authorize(authorization.ObjectReorder, authorization.ActionView), s.ListReordersByOrder)
	api.POST("/reorders", s.authorize(authorization.ObjectReorder, authorization.ActionCreate), s.CreateReorder)
	api.PUT("/reorders/:id", s.authorize(authorization.ObjectReorder, authorization.ActionUpdate), s.UpdateReorder)
	api.DELETE("/reorders/:id", s.authorize(authorization.ObjectReorder, authorization.ActionDelete), s.DeleteReorder)

	// -------- CC emails --------
	api.GET("/ccemails", s.authorize(authorization.ObjectCCEmail, authorization.ActionView), s.ListCCEmails)
	api.POST("/ccemails", s.authorize(authorization.ObjectCCEmail, authorization.ActionCreate), s.CreateCCEmail)
	api.GET("/ccemails/:id", s.authorize(authorization.ObjectCCEmail, authorization.ActionView), s.GetCCEmailByID)
	api.PUT("/ccemails/:id", s.authorize(authorization.ObjectCCEmail, authorization.ActionUpdate), s.UpdateCCEmail)
	api.DELETE("/ccemails/:id", s.authorize(authorization.ObjectCCEmail, authorization.ActionDelete), s.DeleteCCEmail)

	// -------- Lookups --------
	api.GET("/lookups/offices", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListOffices)
	api.POST("/lookups/offices", s.authorize(authorization.ObjectOffice, authorization.ActionCreate), s.CreateOffice)
	api.GET("/lookups/agents", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListAgents)
	api.GET("/lookups/vendors", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListVendors)
	api.POST("/lookups/vendors", s.authorize(authorization.ObjectVendor, authorization.ActionCreate), s.CreateVendor)
	api.PUT("/lookups/vendors/:id", s.authorize(authorization.ObjectVendor, authorization.ActionUpdate), s.UpdateVendor)
	api.GET("/lookups/installation-types", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListInstallationTypes)
	api.GET("/lookups/property-types", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListPropertyTypes)
	api.GET("/lookups/states", s.authorize(authorization.ObjectLookup, authorization.ActionView), s.ListStates)

	// -------- Reports --------
	api.POST("/reports/preview", s.authorize(authorization.ObjectReport, authorization.ActionGenerate), s.PreviewReport)
	api.POST("/reports/generate", s.authorize(authorization.ObjectReport, authorization.ActionGenerate), s.GenerateReport)
	api.GET("/reports/download/:filename", s.authorize(authorization.ObjectReport, authorization.ActionDownload), s.DownloadReport)
}
