package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hotelchain/booking-portal/internal/core/ports"
)

const collectionSessions = "sessions"

// SessionRepository implements ports.SessionRepository using MongoDB.
// Each session is one document keyed by _id, so token and identity are
// always written together.
type SessionRepository struct {
	col *mongo.Collection
}

// NewSessionRepository creates a SessionRepository on the sessions collection.
func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

func (r *SessionRepository) Load(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec ports.SessionRecord
	err := r.col.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.SessionRecord{}, ports.ErrSessionNotFound
		}
		return ports.SessionRecord{}, err
	}
	return rec, nil
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, rec ports.SessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"token":    rec.Token,
		"identity": rec.Identity,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": sessionID}, update, opts)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}
