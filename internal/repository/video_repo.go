package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-hub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type VideoRepo struct {
	collection *mongo.Collection
}

func NewVideoRepo(db *mongo.Database) *VideoRepo {
	return &VideoRepo{
		collection: db.Collection("videos"),
	}
}

func (r *VideoRepo) Insert(ctx context.Context, video *models.VideoDocument) error {
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now
	video.Version = 0
	result, err := r.collection.InsertOne(ctx, video)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	video.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// FindByID returns nil, nil when no video has that id, including ids that are
// not valid ObjectIDs.
func (r *VideoRepo) FindByID(ctx context.Context, id string) (*models.VideoDocument, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var video models.VideoDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find video %s: %w", id, err)
	}
	return &video, nil
}

// FindAll materializes the whole collection.
func (r *VideoRepo) FindAll(ctx context.Context) ([]models.VideoDocument, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}
	defer cursor.Close(ctx)

	videos := []models.VideoDocument{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}
	return videos, nil
}

// ReplaceIfVersion overwrites the stored document only if it still carries
// expectedVersion, then bumps the version. Returns ErrVersionConflict when
// another writer got there first.
func (r *VideoRepo) ReplaceIfVersion(ctx context.Context, video *models.VideoDocument, expectedVersion int64) error {
	video.Version = expectedVersion + 1
	video.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{
		"_id":     video.ID,
		"version": expectedVersion,
	}, video)
	if err != nil {
		video.Version = expectedVersion
		return fmt.Errorf("replace video %s: %w", video.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		video.Version = expectedVersion
		return ErrVersionConflict
	}
	return nil
}

// EnsureIndexes creates necessary indexes for the videos collection
func (r *VideoRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "day", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
