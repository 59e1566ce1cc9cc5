package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the typed view over the process environment. LoadEnv reads the
// .env file first, then Parse maps the variables here.
type Env struct {
	ScorePort  string `env:"SCORE_SERVICE_PORT" envDefault:"8091"`
	SocketPort string `env:"SOCKET_SERVICE_PORT" envDefault:"8092"`

	PostgresURL string `env:"POSTGRES_URL"`
	MongoURI    string `env:"MONGODB_URI"`
	NatsURL     string `env:"NATS_URL" envDefault:"nats://localhost:4224"`
	NatsToken   string `env:"NATS_TOKEN"`

	JWTSecretKey string `env:"JWT_SECRET_KEY"`
	RateLimit    int    `env:"RATE_LIMIT" envDefault:"120"`

	// markersvc only
	DeviceID  string `env:"DEVICE_ID" envDefault:"marker-001"`
	SocketURL string `env:"SOCKET_URL" envDefault:"ws://localhost:8092/v1/ws"`

	// markersvc scoring loop: the round the device joins on startup and
	// the group it scores for. The loop stays off until both are set.
	MarkerRoundID      int64         `env:"MARKER_ROUND_ID"`
	MarkerUserID       int64         `env:"MARKER_USER_ID"`
	MarkerParticipants []int64       `env:"MARKER_PARTICIPANTS" envSeparator:","`
	MarkerHoles        int           `env:"MARKER_HOLES" envDefault:"18"`
	MarkerPace         time.Duration `env:"MARKER_PACE" envDefault:"45s"`

	// side games the device also records, when the round has them
	MarkerWolfCompetition  int64 `env:"MARKER_WOLF_COMPETITION"`
	MarkerBonusCompetition int64 `env:"MARKER_BONUS_COMPETITION"`
	MarkerBonusHole        int   `env:"MARKER_BONUS_HOLE"`
}

func Parse() (*Env, error) {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
