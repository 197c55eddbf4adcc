package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greennest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("plant not found")

// InsufficientStockError carries the quantity still available so the caller
// can report it.
type InsufficientStockError struct {
	Plant     string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d", e.Plant, e.Available)
}

// Store is the catalog accessor over the plants collection.
type Store struct {
	plants *mongo.Collection
}

func NewStore(plants *mongo.Collection) *Store {
	return &Store{plants: plants}
}

// Resolve looks a plant up by its public slug, falling back to the internal
// object id when the reference parses as one. All identifier normalization
// happens here; callers never try both paths themselves.
func (s *Store) Resolve(ctx context.Context, ref string) (models.Plant, error) {
	var plant models.Plant
	err := s.plants.FindOne(ctx, bson.M{"plantid": ref}).Decode(&plant)
	if err == nil {
		return plant, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Plant{}, err
	}

	oid, oidErr := primitive.ObjectIDFromHex(ref)
	if oidErr != nil {
		return models.Plant{}, ErrNotFound
	}
	err = s.plants.FindOne(ctx, bson.M{"_id": oid}).Decode(&plant)
	if err == mongo.ErrNoDocuments {
		return models.Plant{}, ErrNotFound
	}
	if err != nil {
		return models.Plant{}, err
	}
	return plant, nil
}

// Reserve decrements stock for a placed order. The decrement is a single
// conditional update so two concurrent reservations can never drive stock
// negative: the filter only matches while stock >= qty.
func (s *Store) Reserve(ctx context.Context, plantID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("invalid reserve quantity %d", qty)
	}

	res, err := s.plants.UpdateOne(ctx,
		bson.M{"plantid": plantID, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// No match: either the plant is gone or stock ran out under us.
	plant, lookupErr := s.Resolve(ctx, plantID)
	if lookupErr != nil {
		return lookupErr
	}
	return &InsufficientStockError{Plant: plantID, Available: plant.Stock}
}

// Release returns previously reserved stock; the order builder uses it to
// compensate when a later reservation in the same order fails.
func (s *Store) Release(ctx context.Context, plantID string, qty int) error {
	_, err := s.plants.UpdateOne(ctx,
		bson.M{"plantid": plantID},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// List returns a page of catalog entries matching the filter, sorted per
// ListFilter.Sort.
func (s *Store) List(ctx context.Context, f ListFilter, skip, limit int64) ([]models.Plant, error) {
	opts := options.Find().SetSort(f.sort()).SetSkip(skip).SetLimit(limit)
	cursor, err := s.plants.Find(ctx, f.filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plants []models.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, err
	}
	if plants == nil {
		plants = []models.Plant{}
	}
	return plants, nil
}

func (s *Store) Insert(ctx context.Context, plant models.Plant) error {
	_, err := s.plants.InsertOne(ctx, plant)
	return err
}

// Update applies the given fields to a plant and returns the updated document.
func (s *Store) Update(ctx context.Context, plantID string, fields bson.M) (models.Plant, error) {
	fields["updated_at"] = time.Now()

	res := s.plants.FindOneAndUpdate(ctx,
		bson.M{"plantid": plantID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Plant
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Plant{}, ErrNotFound
		}
		return models.Plant{}, err
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, plantID string) error {
	res, err := s.plants.DeleteOne(ctx, bson.M{"plantid": plantID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	raw, err := s.plants.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}
