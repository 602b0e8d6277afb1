package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/audit"
	"github.com/2beens/fitflow/internal/auth"
	"github.com/2beens/fitflow/internal/config"
	"github.com/2beens/fitflow/internal/db"
	"github.com/2beens/fitflow/internal/middleware"
	"github.com/2beens/fitflow/internal/telemetry/metrics"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/internal/training/analytics"
	"github.com/2beens/fitflow/internal/training/bodyweight"
	"github.com/2beens/fitflow/internal/training/cardio"
	"github.com/2beens/fitflow/internal/training/exercises"
	"github.com/2beens/fitflow/internal/training/programs"
	"github.com/2beens/fitflow/internal/training/recovery"
	"github.com/2beens/fitflow/internal/training/sets"
	"github.com/2beens/fitflow/internal/training/workouts"
	"github.com/2beens/fitflow/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient *redis.Client
	authService *auth.Service

	programsService *programs.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	JWTSecret               string
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.RunMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
		log.Debugln("db schema migrated")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitflow", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitflow-backend", rdb)
	if err != nil {
		return nil, err
	}

	tokenService, err := auth.NewTokenService(params.JWTSecret, params.Config.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("new token service: %w", err)
	}

	programsService := programs.NewService(programs.NewRepo(dbPool))
	authService := auth.NewService(
		auth.NewRepo(dbPool),
		tokenService,
		auth.NewRevoker(rdb),
		programsService,
		audit.NewRepo(dbPool),
		metricsManager,
	)

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:     rdb,
		authService:     authService,
		programsService: programsService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitflow-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS").Name("health")

	authHandler := auth.NewHandler(s.authService)
	authRateLimit := middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"auth",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	)
	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.Use(authRateLimit)
	r.HandleFunc("/api/auth/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/api/users/me", authHandler.HandleMe).Methods("GET", "OPTIONS").Name("me")
	r.HandleFunc("/api/users/me", authHandler.HandleUpdateMe).Methods("PATCH", "OPTIONS").Name("update-me")
	r.HandleFunc("/api/users/me/audit-events", authHandler.HandleAuditEvents).Methods("GET", "OPTIONS").Name("my-audit-events")
	r.HandleFunc("/api/users/{id}", authHandler.HandleDeleteUser).Methods("DELETE", "OPTIONS").Name("delete-user")

	recoveryHandler := recovery.NewHandler(
		recovery.NewService(recovery.NewRepo(s.dbPool), s.metricsManager),
	)
	r.HandleFunc("/api/recovery-assessments", recoveryHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-recovery-assessment")
	r.HandleFunc("/api/recovery-assessments", recoveryHandler.HandleList).Methods("GET", "OPTIONS").Name("list-recovery-assessments")
	r.HandleFunc("/api/recovery-assessments/{user_id}/today", recoveryHandler.HandleGetToday).Methods("GET", "OPTIONS").Name("today-recovery-assessment")

	setsHandler := sets.NewHandler(
		sets.NewService(sets.NewRepo(s.dbPool), s.metricsManager),
	)
	r.HandleFunc("/api/sets", setsHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-set")
	r.HandleFunc("/api/sets", setsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sets")
	r.HandleFunc("/api/sets/{id}", setsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-set")

	workoutsHandler := workouts.NewHandler(
		workouts.NewService(workouts.NewRepo(s.dbPool), s.metricsManager),
	)
	r.HandleFunc("/api/workouts", workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/api/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/api/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/api/workouts/{id}", workoutsHandler.HandleUpdateStatus).Methods("PATCH", "OPTIONS").Name("update-workout-status")

	exercisesHandler := exercises.NewHandler(
		exercises.NewService(exercises.NewRepo(s.dbPool), s.config.ExercisesCacheSizeMB),
	)
	r.HandleFunc("/api/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/api/exercises/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/api/exercises/{id}/last-performance", exercisesHandler.HandleLastPerformance).Methods("GET", "OPTIONS").Name("exercise-last-performance")

	programsHandler := programs.NewHandler(s.programsService)
	r.HandleFunc("/api/programs", programsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-program")
	r.HandleFunc("/api/programs", programsHandler.HandleGetLatest).Methods("GET", "OPTIONS").Name("latest-program")
	r.HandleFunc("/api/programs/{id}/advance-phase", programsHandler.HandleAdvancePhase).Methods("PATCH", "OPTIONS").Name("advance-program-phase")
	r.HandleFunc("/api/program-exercises", programsHandler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-program-exercise")
	r.HandleFunc("/api/program-exercises/batch-reorder", programsHandler.HandleReorderExercises).Methods("PATCH", "OPTIONS").Name("reorder-program-exercises")
	r.HandleFunc("/api/program-exercises/{id}/swap", programsHandler.HandleSwapExercise).Methods("PUT", "OPTIONS").Name("swap-program-exercise")
	r.HandleFunc("/api/program-exercises/{id}", programsHandler.HandleUpdateExercise).Methods("PATCH", "OPTIONS").Name("update-program-exercise")
	r.HandleFunc("/api/program-exercises/{id}", programsHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-program-exercise")
	r.HandleFunc("/api/program-days", programsHandler.HandleListDays).Methods("GET", "OPTIONS").Name("list-program-days")
	r.HandleFunc("/api/program-days/recommended", programsHandler.HandleRecommendedDay).Methods("GET", "OPTIONS").Name("recommended-program-day")

	bodyWeightHandler := bodyweight.NewHandler(
		bodyweight.NewService(bodyweight.NewRepo(s.dbPool)),
	)
	r.HandleFunc("/api/body-weight", bodyWeightHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-body-weight")
	r.HandleFunc("/api/body-weight", bodyWeightHandler.HandleList).Methods("GET", "OPTIONS").Name("list-body-weight")
	r.HandleFunc("/api/body-weight/latest", bodyWeightHandler.HandleLatest).Methods("GET", "OPTIONS").Name("latest-body-weight")
	r.HandleFunc("/api/body-weight/{id}", bodyWeightHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-body-weight")

	cardioHandler := cardio.NewHandler(
		cardio.NewService(cardio.NewRepo(s.dbPool)),
	)
	r.HandleFunc("/api/vo2max-sessions", cardioHandler.HandleCreate).Methods("POST", "OPTIONS").Name("create-vo2max-session")
	r.HandleFunc("/api/vo2max-sessions", cardioHandler.HandleList).Methods("GET", "OPTIONS").Name("list-vo2max-sessions")
	r.HandleFunc("/api/vo2max-sessions/progression", cardioHandler.HandleProgression).Methods("GET", "OPTIONS").Name("vo2max-progression")
	r.HandleFunc("/api/vo2max-sessions/{id}", cardioHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-vo2max-session")
	r.HandleFunc("/api/vo2max-sessions/{id}", cardioHandler.HandleUpdate).Methods("PATCH", "OPTIONS").Name("update-vo2max-session")

	analyticsHandler := analytics.NewHandler(
		analytics.NewAnalyzer(analytics.NewRepo(s.dbPool), programs.NewRepo(s.dbPool), s.metricsManager),
	)
	analyticsRouter := r.PathPrefix("/api/analytics").Subrouter()
	analyticsRouter.HandleFunc("/1rm-progression", analyticsHandler.HandleOneRMProgression).Methods("GET", "OPTIONS").Name("1rm-progression")
	analyticsRouter.HandleFunc("/volume-trends", analyticsHandler.HandleVolumeTrends).Methods("GET", "OPTIONS").Name("volume-trends")
	analyticsRouter.HandleFunc("/volume-by-week", analyticsHandler.HandleVolumeByWeek).Methods("GET", "OPTIONS").Name("volume-by-week")
	analyticsRouter.HandleFunc("/volume-current-week", analyticsHandler.HandleCurrentWeekVolume).Methods("GET", "OPTIONS").Name("volume-current-week")
	analyticsRouter.HandleFunc("/program-volume-analysis", analyticsHandler.HandleProgramVolumeAnalysis).Methods("GET", "OPTIONS").Name("program-volume-analysis")
	analyticsRouter.HandleFunc("/vo2max-progression", cardioHandler.HandleProgression).Methods("GET", "OPTIONS").Name("analytics-vo2max-progression")
	analyticsRouter.HandleFunc("/consistency", analyticsHandler.HandleConsistency).Methods("GET", "OPTIONS").Name("consistency")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperr.WriteMessage(w, "Not found", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.versionInfo != "" {
		w.Header().Set("X-Fitflow-Version", s.versionInfo)
	}
	pkg.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the pool and redis go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
