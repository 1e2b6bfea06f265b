package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chirper/chirp-api/internal/core/domain"
)

const collectionChirps = "chirps"

type ChirpRepository struct {
	col *mongo.Collection
}

func NewChirpRepository(db *mongo.Database) *ChirpRepository {
	return &ChirpRepository{col: db.Collection(collectionChirps)}
}

// ListAll returns every chirp sorted by creation time descending. Mongo's sort
// is stable for equal keys within a single cursor, which is all the listing
// contract requires for ties.
func (r *ChirpRepository) ListAll(ctx context.Context) ([]*domain.Chirp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	chirps := make([]*domain.Chirp, 0)
	if err := cursor.All(ctx, &chirps); err != nil {
		return nil, err
	}
	return chirps, nil
}

// CountByOwner returns the number of chirps owned by ownerID.
func (r *ChirpRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
}

// Insert persists a new chirp document.
func (r *ChirpRepository) Insert(ctx context.Context, chirp *domain.Chirp) error {
	_, err := r.col.InsertOne(ctx, chirp)
	return err
}

// FindByID retrieves a chirp by id.
func (r *ChirpRepository) FindByID(ctx context.Context, id string) (*domain.Chirp, error) {
	var c domain.Chirp
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChirpNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update replaces the message and refreshes updated_at.
func (r *ChirpRepository) Update(ctx context.Context, id, message string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"message":    message,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrChirpNotFound
	}
	return nil
}

// Delete removes the chirp document.
func (r *ChirpRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrChirpNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repository queries rely on.
func (r *ChirpRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
