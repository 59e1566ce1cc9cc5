package syncsvc

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activeRoundCollection = "active_rounds"

// activeRoundTTL bounds how long a device keeps resuming a round after the
// last touch. A tournament round never spans longer than this.
const activeRoundTTL = 36 * time.Hour

// ActiveRound is the device's record of which round it is scoring, so a
// restart resumes the same round without asking. Mongo evicts it via the
// TTL index once ExpiresAt passes.
type ActiveRound struct {
	DeviceID     string    `bson:"device_id"`
	TournamentID int64     `bson:"tournament_id"`
	RoundID      int64     `bson:"round_id"`
	ExpiresAt    time.Time `bson:"expires_at"`
}

type ActiveRoundStore struct {
	coll *mongo.Collection
}

// ConnectLocal opens the device-local mongo database named in the URI.
func ConnectLocal(mongoURI string) (*mongo.Database, context.CancelFunc, error) {
	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, err
	}

	return client.Database(dbName), cancel, nil
}

// NewActiveRoundStore wires the collection and its TTL index on
// expires_at. ExpireAfterSeconds of 0 makes mongo evict at the document's
// own ExpiresAt.
func NewActiveRoundStore(db *mongo.Database) (*ActiveRoundStore, error) {
	coll := db.Collection(activeRoundCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := coll.Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		log.Errorf("unable to create TTL index on %s: %v", activeRoundCollection, err)
		return nil, err
	}

	return &ActiveRoundStore{coll: coll}, nil
}

// Save upserts the device's active round and pushes ExpiresAt out by the
// TTL window. Called on join and on every accepted local mutation.
func (s *ActiveRoundStore) Save(ctx context.Context, ar ActiveRound) error {
	ar.ExpiresAt = time.Now().UTC().Add(activeRoundTTL)

	filter := bson.M{"device_id": ar.DeviceID}
	update := bson.M{"$set": ar}
	opts := options.Update().SetUpsert(true)

	_, err := s.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// Get returns the device's active round, or nil when none survives.
func (s *ActiveRoundStore) Get(ctx context.Context, deviceID string) (*ActiveRound, error) {
	var ar ActiveRound
	err := s.coll.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&ar)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

// Invalidate drops the record, used when the round is finalized so the
// device stops resuming into a closed round.
func (s *ActiveRoundStore) Invalidate(ctx context.Context, deviceID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"device_id": deviceID})
	return err
}
