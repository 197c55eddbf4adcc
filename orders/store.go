package orders

import (
	"context"
	"time"

	"greennest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists order snapshots. Orders are created once; afterwards only
// status and payment fields ever change.
type Store struct {
	orders *mongo.Collection
}

func NewStore(orders *mongo.Collection) *Store {
	return &Store{orders: orders}
}

func (s *Store) Create(ctx context.Context, order models.Order) error {
	_, err := s.orders.InsertOne(ctx, order)
	return err
}

func (s *Store) GetByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.list(ctx, bson.M{"userid": userID})
}

func (s *Store) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateStatus applies a transition-validated status change. The update is
// conditional on the status it validated against, so two concurrent admin
// updates cannot both apply.
func (s *Store) UpdateStatus(ctx context.Context, orderID, newStatus string) (models.Order, error) {
	if !ValidStatus(newStatus) {
		return models.Order{}, ErrInvalidStatus
	}

	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if !CanTransition(order.Status, newStatus) {
		return models.Order{}, ErrInvalidTransition
	}

	res := s.orders.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID, "status": order.Status},
		bson.M{"$set": statusUpdate(newStatus, time.Now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Order
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost a race with another transition.
			return models.Order{}, ErrInvalidTransition
		}
		return models.Order{}, err
	}
	return updated, nil
}

// statusUpdate builds the fields a status change writes. Reaching delivered
// also records the delivery flag and timestamp.
func statusUpdate(status string, now time.Time) bson.M {
	set := bson.M{"status": status}
	if status == models.OrderDelivered {
		set["isdelivered"] = true
		set["deliveredat"] = now
	}
	return set
}

// paymentUpdate builds the fields a payment-status change writes; "paid"
// also records the paid flag and timestamp.
func paymentUpdate(paymentStatus string, now time.Time) bson.M {
	set := bson.M{"paymentstatus": paymentStatus}
	if paymentStatus == "paid" {
		set["ispaid"] = true
		set["paidat"] = now
	}
	return set
}

func (s *Store) UpdatePayment(ctx context.Context, orderID, paymentStatus string) (models.Order, error) {
	res := s.orders.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": paymentUpdate(paymentStatus, time.Now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Order
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return updated, nil
}
