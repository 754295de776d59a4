package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/pkg/metrics"
)

// PaymentRepository handles the payments collection. Append-only: payments
// are never updated or deleted.
type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(s *Store) *PaymentRepository {
	return &PaymentRepository{coll: s.Collection(CollPayments)}
}

// Insert appends a payment record and returns its generated id.
func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) (string, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	defer metrics.ObserveStoreQuery(CollPayments, "insert", time.Now())

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("payments: insert: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}
