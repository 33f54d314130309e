package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medizo/models"
	"medizo/store"
)

type ReviewStore struct {
	collection *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{collection: db.Collection("reviews")}
}

func (s *ReviewStore) Create(ctx context.Context, r *models.Review) error {
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Replies == nil {
		r.Replies = []models.ReviewReply{}
	}

	doc := toReviewDoc(r)
	doc.ID = primitive.NewObjectID()

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	r.ID = doc.ID.Hex()
	return nil
}

func (s *ReviewStore) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.list(ctx, bson.M{"productId": productID})
}

func (s *ReviewStore) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.list(ctx, bson.M{})
}

func (s *ReviewStore) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var doc reviewDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewStore) AddReply(ctx context.Context, reviewID string, reply models.ReviewReply) (*models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, store.ErrNotFound
	}

	update := bson.M{
		"$push": bson.M{"replies": replyDoc(reply)},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reviewDoc
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add reply: %w", err)
	}

	r := doc.toModel()
	return &r, nil
}

func (s *ReviewStore) Delete(ctx context.Context, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return store.ErrNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
