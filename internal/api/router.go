package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"motor-audit/internal/api/handlers"
	"motor-audit/internal/api/middleware"
	"motor-audit/internal/api/models"
	"motor-audit/internal/audit"
	"motor-audit/internal/config"
)

// NewRouter wires the HTTP surface for one configured motor and tariff.
// reg receives the Prometheus collectors; pass prometheus.NewRegistry() in tests.
func NewRouter(cfg *config.Config, log *logrus.Logger, reg *prometheus.Registry) (*gin.Engine, error) {
	cache, err := audit.NewResultCache(cfg.Server.CacheSize)
	if err != nil {
		return nil, err
	}
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	motor := cfg.ToMotorProfile()
	tariff := cfg.ToTariffTable()
	engine := audit.New(motor, tariff, log)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.Logger(log))
	router.Use(metrics.Handler())
	router.Use(middleware.ErrorHandler(log))

	motorHandler := handlers.NewMotorHandler(cfg.Motor.Name, motor)
	tariffHandler := handlers.NewTariffHandler(tariff, cfg.Tariff.CurrencyUnit)
	reportHandler := handlers.NewReportHandler(engine, cache, handlers.ReportOptions{
		CurrencyUnit:   cfg.Tariff.CurrencyUnit,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
		Observer:       metrics,
		Logger:         log,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.GET("/motor", motorHandler.GetMotor)
		api.POST("/classify", motorHandler.Classify)

		api.GET("/tariff", tariffHandler.GetTariff)
		api.GET("/tariff/rate", tariffHandler.GetRate)

		api.POST("/reports", reportHandler.CreateReport)
		api.GET("/reports/:id", reportHandler.GetReport)
		api.GET("/reports/:id/ledger", reportHandler.GetLedger)
		api.GET("/reports/:id/export", reportHandler.ExportReport)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router, nil
}
