package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	config "github.com/fairwaylink/golf-services/configs"
	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
	"github.com/fairwaylink/golf-services/internal/syncsvc"
)

const SERVICE_NAME = "marker"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

// markersvc is the on-course scoring agent. It keeps a local view of the
// active round, queues edits made while the signal drops, and replays
// them through the socket service once the link returns.
func main() {
	env, err := config.Parse()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	mongoDB, cancelMongo, err := syncsvc.ConnectLocal(env.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to local store: %v", err)
	}
	defer cancelMongo()
	log.Printf("local store connection established successfully")

	activeRounds, err := syncsvc.NewActiveRoundStore(mongoDB)
	if err != nil {
		log.Fatalf("Failed to init active round store: %v", err)
	}

	transport := syncsvc.NewSocketTransport()
	coordinator := syncsvc.NewCoordinator(transport)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runLink(ctx, env, transport, coordinator, activeRounds)
	})

	// scoring loop: walks the configured group's card through the
	// coordinator, so scores queue while the link is down
	if env.MarkerRoundID != 0 && len(env.MarkerParticipants) > 0 {
		sim := syncsvc.NewSimulator(coordinator, syncsvc.SimulatorConfig{
			RoundID:            env.MarkerRoundID,
			MarkerUserID:       env.MarkerUserID,
			Participants:       env.MarkerParticipants,
			Holes:              env.MarkerHoles,
			Pace:               env.MarkerPace,
			WolfCompetitionID:  env.MarkerWolfCompetition,
			BonusCompetitionID: env.MarkerBonusCompetition,
			BonusHole:          env.MarkerBonusHole,
		})
		g.Go(func() error {
			return sim.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("%s service stopped: %v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

// runLink owns the websocket session. Each iteration dials, resumes the
// active round, flushes the queue, then reads until the link drops.
func runLink(ctx context.Context, env *config.Env, transport *syncsvc.SocketTransport,
	coordinator *syncsvc.Coordinator, activeRounds *syncsvc.ActiveRoundStore) error {

	backoff := time.Second
	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, env.SocketURL, nil)
		if err != nil {
			log.Errorf("Error: unable to reach socket service %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		transport.SetConn(conn)
		coordinator.SetOnline(true)
		log.Infof("socket link established %s", env.SocketURL)

		if ar, err := activeRounds.Get(ctx, env.DeviceID); err != nil {
			log.Errorf("Error reading active round: %v", err)
		} else if ar != nil {
			if err := transport.JoinRound(ar.RoundID, env.MarkerUserID); err != nil {
				log.Errorf("Error rejoining round %d: %v", ar.RoundID, err)
			} else {
				log.Infof("resumed round %d of tournament %d", ar.RoundID, ar.TournamentID)
			}
		} else if env.MarkerRoundID != 0 {
			if err := transport.JoinRound(env.MarkerRoundID, env.MarkerUserID); err != nil {
				log.Errorf("Error joining round %d: %v", env.MarkerRoundID, err)
			}
		}

		// replay whatever queued while offline, oldest first
		if err := coordinator.Flush(ctx); err != nil {
			log.Errorf("Error flushing queued scores: %v", err)
		}

		err = readLoop(ctx, conn, coordinator, activeRounds, env.DeviceID)

		coordinator.SetOnline(false)
		transport.SetConn(nil)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Errorf("socket link lost: %v", err)
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn,
	coordinator *syncsvc.Coordinator, activeRounds *syncsvc.ActiveRoundStore, deviceID string) error {

	for {
		var msg comm.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		switch msg.Type {
		case comm.TypeScoreEntryEvent:
			var entry models.ScoreEntry
			if err := json.Unmarshal(msg.Data, &entry); err != nil {
				log.Errorf("Error decoding score event: %s", err)
				continue
			}
			coordinator.MergeRemote(entry)

		case comm.TypeJoinedRound:
			var joined comm.JoinedRound
			if err := json.Unmarshal(msg.Data, &joined); err != nil {
				log.Errorf("Error decoding join ack: %s", err)
				continue
			}
			log.Infof("joined round %d of tournament %q at %q (%d holes)",
				joined.RoundId, joined.TournamentName, joined.CourseName, joined.Holes)
			saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := activeRounds.Save(saveCtx, syncsvc.ActiveRound{
				DeviceID:     deviceID,
				TournamentID: joined.TournamentId,
				RoundID:      joined.RoundId,
			})
			cancel()
			if err != nil {
				log.Errorf("Error saving active round: %v", err)
			}

		case comm.TypeRoundFinalized:
			var fin comm.RoundFinalized
			if err := json.Unmarshal(msg.Data, &fin); err != nil {
				log.Errorf("Error decoding finalize event: %s", err)
				continue
			}
			log.Infof("round %d finalized, clearing active round", fin.RoundId)
			dropCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := activeRounds.Invalidate(dropCtx, deviceID); err != nil {
				log.Errorf("Error clearing active round: %v", err)
			}
			cancel()

		case comm.TypeErrorResponse:
			var errData comm.ErrorData
			if err := json.Unmarshal(msg.Data, &errData); err != nil {
				log.Errorf("Error decoding error response: %s", err)
				continue
			}
			log.Errorf("score service rejected a write: %s %s", errData.Code, errData.Message)
		}
	}
}
