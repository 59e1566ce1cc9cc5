package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/fairwaylink/golf-services/configs"
	nats "github.com/fairwaylink/golf-services/internal/nats"
	"github.com/fairwaylink/golf-services/internal/scoresvc/broker"
	"github.com/fairwaylink/golf-services/internal/scoresvc/db"
	handlers "github.com/fairwaylink/golf-services/internal/scoresvc/handlers"
	"github.com/fairwaylink/golf-services/internal/scoresvc/service"
	"github.com/fairwaylink/golf-services/internal/scoresvc/store"
)

const SERVICE_NAME = "score"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	env, err := config.Parse()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	scoreStore := store.NewScoreStore(dbpool)
	participantStore := store.NewParticipantStore(dbpool)
	roundStore := store.NewRoundStore(dbpool)
	courseStore := store.NewCourseStore(dbpool)
	tournamentStore := store.NewTournamentStore(dbpool)
	competitionStore := store.NewCompetitionStore(dbpool)
	awardStore := store.NewAwardStore(dbpool)
	decisionStore := store.NewDecisionStore(dbpool)
	teamStore := store.NewTeamStore(dbpool)

	statusService := service.NewStatusService(scoreStore, roundStore, tournamentStore)
	scoreService := service.NewScoreService(scoreStore, participantStore,
		roundStore, courseStore, tournamentStore, statusService)
	roundService := service.NewRoundService(roundStore, participantStore,
		courseStore, scoreStore, tournamentStore, statusService)
	competitionService := service.NewCompetitionService(competitionStore,
		decisionStore, awardStore, roundStore, participantStore)
	leaderboardService := service.NewLeaderboardService(competitionStore,
		scoreStore, roundStore, courseStore, participantStore, teamStore,
		awardStore, decisionStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// init peer message broker
	b := broker.NewBroker(n.Conn, scoreService, roundService,
		competitionService, leaderboardService)

	// subscribe to score intents relayed by the socket service
	sub, err := b.SubscribeSocketService(broker.TopicInbound)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(env.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(scoreService, roundService, leaderboardService, b)
	h.InitAuth(env.JWTSecretKey)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + env.ScorePort,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
