package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medizo/models"
	"medizo/store"
)

type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{collection: db.Collection("orders")}
}

// Create inserts the order with the next sequential order number. The unique
// index on orderNumber turns a lost race into a duplicate-key error, which is
// retried with a freshly read number.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) error {
	if o.Status == "" {
		o.Status = models.StatusPending
	}

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		number, err := s.nextOrderNumber(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		o.OrderNumber = number
		o.CreatedAt = now
		o.UpdatedAt = now

		doc := toOrderDoc(o)
		doc.ID = primitive.NewObjectID()

		_, err = s.collection.InsertOne(ctx, doc)
		if err == nil {
			o.ID = doc.ID.Hex()
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert order: %w", err)
		}
		lastErr = err
	}
	return fmt.Errorf("insert order: order number contention: %w", lastErr)
}

func (s *OrderStore) nextOrderNumber(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var last orderDoc
	err := s.collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "000001", nil
	}
	if err != nil {
		return "", fmt.Errorf("find last order: %w", err)
	}

	n, err := strconv.Atoi(last.OrderNumber)
	if err != nil {
		n = 0
	}
	return fmt.Sprintf("%06d", n+1), nil
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc orderDoc
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	o := doc.toModel()
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, upd store.StatusUpdate) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	set := bson.M{
		"status":    string(upd.Status),
		"updatedAt": time.Now().UTC(),
	}
	if upd.EstimatedDelivery != nil {
		set["estimatedDelivery"] = *upd.EstimatedDelivery
	}
	if upd.TrackingInfo != "" {
		set["trackingInfo"] = upd.TrackingInfo
	}

	// The filter carries the transition precondition: the write only lands
	// when the current status is one the requested status is reachable
	// from, so concurrent updates cannot push an order backward.
	sources := models.TransitionSources(upd.Status)
	fromStatuses := make([]string, len(sources))
	for i, st := range sources {
		fromStatuses[i] = string(st)
	}
	filter := bson.M{"_id": oid, "status": bson.M{"$in": fromStatuses}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc orderDoc
	err = s.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing order from a transition conflict.
		count, cntErr := s.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if cntErr != nil {
			return nil, fmt.Errorf("update order status: %w", cntErr)
		}
		if count == 0 {
			return nil, store.ErrNotFound
		}
		return nil, store.ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	o := doc.toModel()
	return &o, nil
}
