package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	customerapp "github.com/wyfcoding/defaultmanagement/internal/customer/application"
	customerdomain "github.com/wyfcoding/defaultmanagement/internal/customer/domain"
	customermysql "github.com/wyfcoding/defaultmanagement/internal/customer/infrastructure/persistence/mysql"
	customerhttp "github.com/wyfcoding/defaultmanagement/internal/customer/interfaces/http"
	defaultapp "github.com/wyfcoding/defaultmanagement/internal/defaultapp/application"
	defaultdomain "github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
	defaultmsg "github.com/wyfcoding/defaultmanagement/internal/defaultapp/infrastructure/messaging"
	defaultmysql "github.com/wyfcoding/defaultmanagement/internal/defaultapp/infrastructure/persistence/mysql"
	defaulthttp "github.com/wyfcoding/defaultmanagement/internal/defaultapp/interfaces/http"
	identityapp "github.com/wyfcoding/defaultmanagement/internal/identity/application"
	identitydomain "github.com/wyfcoding/defaultmanagement/internal/identity/domain"
	identitymsg "github.com/wyfcoding/defaultmanagement/internal/identity/infrastructure/messaging"
	identitymysql "github.com/wyfcoding/defaultmanagement/internal/identity/infrastructure/persistence/mysql"
	identityhttp "github.com/wyfcoding/defaultmanagement/internal/identity/interfaces/http"
	reasonapp "github.com/wyfcoding/defaultmanagement/internal/reason/application"
	reasondomain "github.com/wyfcoding/defaultmanagement/internal/reason/domain"
	reasonmysql "github.com/wyfcoding/defaultmanagement/internal/reason/infrastructure/persistence/mysql"
	reasonhttp "github.com/wyfcoding/defaultmanagement/internal/reason/interfaces/http"
	renewalapp "github.com/wyfcoding/defaultmanagement/internal/renewal/application"
	renewaldomain "github.com/wyfcoding/defaultmanagement/internal/renewal/domain"
	renewalmsg "github.com/wyfcoding/defaultmanagement/internal/renewal/infrastructure/messaging"
	renewalmysql "github.com/wyfcoding/defaultmanagement/internal/renewal/infrastructure/persistence/mysql"
	renewalhttp "github.com/wyfcoding/defaultmanagement/internal/renewal/interfaces/http"
	statsapp "github.com/wyfcoding/defaultmanagement/internal/statistics/application"
	statsmysql "github.com/wyfcoding/defaultmanagement/internal/statistics/infrastructure/persistence/mysql"
	statshttp "github.com/wyfcoding/defaultmanagement/internal/statistics/interfaces/http"
	"github.com/wyfcoding/defaultmanagement/pkg/auth"
	"github.com/wyfcoding/defaultmanagement/pkg/cache"
	"github.com/wyfcoding/defaultmanagement/pkg/config"
	"github.com/wyfcoding/defaultmanagement/pkg/db"
	"github.com/wyfcoding/defaultmanagement/pkg/logger"
	"github.com/wyfcoding/defaultmanagement/pkg/metrics"
	"github.com/wyfcoding/defaultmanagement/pkg/middleware"
	"github.com/wyfcoding/defaultmanagement/pkg/mq"
	"github.com/wyfcoding/defaultmanagement/pkg/ratelimit"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(cfg.Logger); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}
	ctx := context.Background()
	logger.Info(ctx, "starting service",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. Database
	database, err := db.Init(cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "init database failed", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&identitydomain.User{},
		&customerdomain.Customer{},
		&reasondomain.DefaultReason{},
		&reasondomain.RenewalReason{},
		&defaultdomain.DefaultApplication{},
		&defaultdomain.ApplicationReason{},
		&defaultdomain.Attachment{},
		&defaultdomain.DefaultCustomer{},
		&defaultdomain.DefaultCustomerReason{},
		&renewaldomain.RenewalApplication{},
	); err != nil {
		logger.Fatal(ctx, "migrate database failed", "error", err)
	}

	// 4. Infrastructure
	producer, err := mq.NewProducer(cfg.Kafka)
	if err != nil {
		logger.Fatal(ctx, "init kafka producer failed", "error", err)
	}
	defer producer.Close()

	redisCache, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "init redis failed", "error", err)
	}
	defer redisCache.Close()

	m := metrics.New(cfg.ServiceName)
	tokens := auth.NewTokenManager(cfg.JWT)

	userRepo := identitymysql.NewUserRepository(database.DB)
	customerRepo := customermysql.NewCustomerRepository(database.DB)
	defaultReasonRepo := reasonmysql.NewDefaultReasonRepository(database.DB)
	renewalReasonRepo := reasonmysql.NewRenewalReasonRepository(database.DB)
	applicationRepo := defaultmysql.NewApplicationRepository(database)
	renewalRepo := renewalmysql.NewRenewalRepository(database)
	statsRepo := statsmysql.NewStatsRepository(database)

	seedUsers(ctx, userRepo)
	seedReasons(ctx, defaultReasonRepo, renewalReasonRepo)

	// 5. Application
	authService := identityapp.NewAuthService(userRepo, tokens, identitymsg.NewKafkaPublisher(producer))
	customerService := customerapp.NewCustomerQueryService(customerRepo)
	reasonService := reasonapp.NewReasonService(defaultReasonRepo, renewalReasonRepo)
	applicationService := defaultapp.NewDefaultApplicationService(
		applicationRepo,
		defaultmysql.NewDefaultReasonGateway(defaultReasonRepo),
		defaultmsg.NewKafkaPublisher(producer),
		m,
	)
	renewalService := renewalapp.NewRenewalService(
		renewalRepo,
		renewalmysql.NewDefaultRecordGateway(customerRepo, database),
		renewalmysql.NewRenewalReasonGateway(renewalReasonRepo),
		renewalmsg.NewKafkaPublisher(producer),
		m,
	)
	statsService := statsapp.NewStatisticsService(statsRepo, redisCache)

	// 6. HTTP
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinMetricsMiddleware(m),
	)
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRedisRateLimiter(redisCache.Client())
		r.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimit))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	public := r.Group("/api/v1")
	identityhttp.NewHandler(authService).RegisterRoutes(public)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(tokens))
	customerhttp.NewHandler(customerService).RegisterRoutes(api)
	reasonhttp.NewHandler(reasonService).RegisterRoutes(api)
	defaulthttp.NewHandler(applicationService).RegisterRoutes(api)
	renewalhttp.NewHandler(renewalService).RegisterRoutes(api)
	statshttp.NewHandler(statsService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	// 7. Start
	go func() {
		logger.Info(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "http server failed", "error", err)
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "http server shutdown failed", "error", err)
	}
	logger.Info(ctx, "server stopped")
}

// seedUsers 初始化内置账号，已存在则跳过。默认口令仅用于开发环境。
func seedUsers(ctx context.Context, repo identitydomain.UserRepository) {
	seeds := []struct {
		username    string
		password    string
		displayName string
		role        identitydomain.Role
	}{
		{"admin", "admin123", "系统管理员", identitydomain.RoleAdmin},
		{"operator", "operator123", "业务操作员", identitydomain.RoleOperator},
		{"auditor", "auditor123", "审核员", identitydomain.RoleAuditor},
	}

	for _, s := range seeds {
		existing, err := repo.GetByUsername(ctx, s.username)
		if err != nil {
			logger.Warn(ctx, "seed user lookup failed", "username", s.username, "error", err)
			continue
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Warn(ctx, "seed user hash failed", "username", s.username, "error", err)
			continue
		}
		user := identitydomain.NewUser(s.username, string(hash), s.displayName, s.role)
		if err := repo.Save(ctx, user); err != nil {
			logger.Warn(ctx, "seed user save failed", "username", s.username, "error", err)
			continue
		}
		logger.Info(ctx, "seeded user", "username", s.username, "role", s.role)
	}
}

// seedReasons 初始化违约/重生原因目录，目录非空则跳过
func seedReasons(ctx context.Context, defaults reasondomain.DefaultReasonRepository, renewals reasondomain.RenewalReasonRepository) {
	existing, err := defaults.ListAll(ctx)
	if err == nil && len(existing) == 0 {
		for i, reason := range []string{
			"头寸缺口过多",
			"技术性或资金等原因造成头寸缺口",
			"对外负债数额巨大",
			"关联集团内出现风险事件",
			"进入破产及其他关闭程序",
			"被监管机构接管或出现重大监管处罚",
		} {
			if serr := defaults.Save(ctx, reasondomain.NewDefaultReason(reason, i+1)); serr != nil {
				logger.Warn(ctx, "seed default reason failed", "reason", reason, "error", serr)
			}
		}
	}

	existingRenewal, err := renewals.ListAll(ctx)
	if err == nil && len(existingRenewal) == 0 {
		for i, reason := range []string{
			"正常结算后解除",
			"在非违约方同意的情况下，结清全部违约金额",
			"通过重组、清算等方式恢复履约能力",
			"监管措施解除且经营恢复正常",
		} {
			if serr := renewals.Save(ctx, reasondomain.NewRenewalReason(reason, i+1)); serr != nil {
				logger.Warn(ctx, "seed renewal reason failed", "reason", reason, "error", serr)
			}
		}
	}
}
