package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolrecords/records-portal/internal/core/domain"
)

const resetOutboxCollection = "reset_outbox"

// ResetOutbox stores reset notices for the mail relay to pick up. Documents
// expire with the token they carry.
type ResetOutbox struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewResetOutbox(db *mongo.Database) *ResetOutbox {
	return &ResetOutbox{coll: db.Collection(resetOutboxCollection), now: time.Now}
}

type outboxDoc struct {
	domain.ResetNotice `bson:",inline"`
	CreatedAt          time.Time  `bson:"created_at"`
	SentAt             *time.Time `bson:"sent_at,omitempty"`
}

// EnsureIndexes adds a TTL index on expires_at.
func (o *ResetOutbox) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := o.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
		},
		{Keys: bson.D{{Key: "sent_at", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ensure outbox indexes: %w", err)
	}
	return nil
}

// Deliver implements the delivery sink.
func (o *ResetOutbox) Deliver(ctx context.Context, notice domain.ResetNotice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := o.coll.InsertOne(ctx, outboxDoc{ResetNotice: notice, CreatedAt: o.now().UTC()})
	if err != nil {
		return fmt.Errorf("insert reset notice: %w", err)
	}
	return nil
}
