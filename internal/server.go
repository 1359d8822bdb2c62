package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/strenvy/strenvy/internal/catalog"
	"github.com/strenvy/strenvy/internal/config"
	"github.com/strenvy/strenvy/internal/middleware"
	"github.com/strenvy/strenvy/internal/programs"
	"github.com/strenvy/strenvy/internal/progress"
	"github.com/strenvy/strenvy/internal/session"
	"github.com/strenvy/strenvy/internal/storage"
	"github.com/strenvy/strenvy/internal/telemetry/metrics"
	"github.com/strenvy/strenvy/internal/workouts"
	"github.com/strenvy/strenvy/pkg"
)

type Server struct {
	config      *config.Config
	httpServer  *http.Server
	versionInfo string

	redisClient *redis.Client

	sessionService  *session.Service
	loginChecker    *session.LoginChecker
	catalogIndex    *catalog.Index
	programsService *programs.Service
	progressService *progress.Service
	workoutsService *workouts.Service

	metricsManager    *metrics.Manager
	promRegistry      *prometheus.Registry
	metricsHttpServer *http.Server
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string

	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	cfg := params.Config

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("strenvy", "backend", promRegistry)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})
	if rdb := redisClient.Conn(ctx); rdb == nil {
		return nil, errors.New("failed to get redis connection")
	} else {
		if statusCmd := rdb.Ping(ctx); statusCmd.Err() != nil {
			return nil, fmt.Errorf("ping redis: %w", statusCmd.Err())
		}
		log.Debugln("redis connection ok")
	}

	fileStore, err := storage.NewFileStore(cfg.StorageRootPath)
	if err != nil {
		return nil, fmt.Errorf("create file store: %w", err)
	}

	if gifsRootFound, err := pkg.PathExists(cfg.GifsRootPath, true); err != nil || !gifsRootFound {
		log.Warnf("gifs root [%s] not found, exercise animations will not be served", cfg.GifsRootPath)
	}

	datasetFile, err := os.Open(cfg.CatalogDatasetPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog dataset: %w", err)
	}
	defer datasetFile.Close()
	catalogIndex, err := catalog.NewIndex(datasetFile)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}

	sessionService := session.NewService(
		ctx,
		&session.Admin{
			Username:     params.AdminUsername,
			PasswordHash: params.AdminPasswordHash,
		},
		session.DefaultTTL,
		redisClient,
		fileStore,
	)
	go func() {
		sessionService.ScanAndClean(ctx)
		ticker := time.NewTicker(8 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Warnln("server context closed, stopping sessions scan and clean")
				return
			case <-ticker.C:
				sessionService.ScanAndClean(ctx)
			}
		}
	}()

	return &Server{
		config:          cfg,
		versionInfo:     params.VersionInfo,
		redisClient:     redisClient,
		sessionService:  sessionService,
		loginChecker:    session.NewLoginChecker(session.DefaultTTL, redisClient),
		catalogIndex:    catalogIndex,
		programsService: programs.NewService(ctx, fileStore),
		progressService: progress.NewService(ctx, fileStore),
		workoutsService: workouts.NewService(ctx, fileStore),
		metricsManager:  metricsManager,
		promRegistry:    promRegistry,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("strenvy-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	})
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	})

	catalogHandler := catalog.NewHandler(s.catalogIndex)
	catalogHandler.SetupRoutes(r)

	programsHandler := programs.NewHandler(s.programsService, s.sessionService, s.metricsManager)
	programsHandler.SetupRoutes(r)

	progressHandler := progress.NewHandler(s.progressService, s.metricsManager)
	progressHandler.SetupRoutes(r)

	workoutsHandler := workouts.NewHandler(s.workoutsService)
	workoutsHandler.SetupRoutes(r)

	sessionHandler := session.NewHandler(s.sessionService)
	sessionHandler.SetupRoutes(
		r,
		redis_rate.NewLimiter(s.redisClient),
		s.config.LoginRateLimitAllowedPerMin,
	)

	// exercise animations, served as plain static files
	r.PathPrefix("/gifs/").Handler(
		http.StripPrefix("/gifs/", http.FileServer(http.Dir(s.config.GifsRootPath))),
	)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Warnf("unknown path: %s", r.URL.Path)
		http.Error(w, "unknown path", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("server setup failed: %s", err)
	}

	ipAndPort := fmt.Sprintf("%s:%d", host, port)
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := fmt.Sprintf("%s:%s", s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	s.metricsHttpServer = &http.Server{
		Handler: metricsRouter,
		Addr:    metricsAddr,
	}
	go func() {
		log.Infof(" > metrics server listening on: [%s]", metricsAddr)
		if err := s.metricsHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server error: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)

	log.Infof(" > server listening on: [%s]", ipAndPort)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server listen and serve: %s", err)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.CounterConnStateNew.Inc()
	case http.StateClosed:
		s.metricsManager.CounterConnStateClosed.Inc()
	}
}

func (s *Server) GracefulShutdown() {
	log.Debugln("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if err := s.redisClient.Close(); err != nil {
		log.Errorf("failed to close redis client: %s", err)
	}

	sentry.Flush(5 * time.Second)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics server")
		}
	}
	log.Warnln("server shut down")
}
