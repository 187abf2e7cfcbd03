// Package analytics provides the MongoDB-backed daily rollup store.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/analytics"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// dailyStatDoc is the BSON shape of one rollup document. Money is stored
// as float64 so $inc can accumulate it server-side; the domain converts
// back to decimals on read.
type dailyStatDoc struct {
	Date            time.Time        `bson:"date"`
	Sales           float64          `bson:"sales"`
	Orders          int64            `bson:"orders"`
	CancelledOrders int64            `bson:"cancelled_orders"`
	NewCustomers    int64            `bson:"new_customers"`
	Traffic         int64            `bson:"traffic"`
	Products        []productDoc     `bson:"products"`
	Locations       []locationDoc    `bson:"locations"`
	PaymentMethods  map[string]int64 `bson:"payment_methods"`
}

type productDoc struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Quantity  int64   `bson:"quantity"`
	Revenue   float64 `bson:"revenue"`
}

type locationDoc struct {
	City   string `bson:"city"`
	Orders int64  `bson:"orders"`
}

// MongoDailyStatRepository implements analytics.DailyStatRepository on a
// single MongoDB collection with one document per calendar day
type MongoDailyStatRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     *zap.Logger
}

// NewMongoClient connects to MongoDB and verifies the connection
func NewMongoClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// NewMongoDailyStatRepository creates the repository and ensures the
// unique index on the day key
func NewMongoDailyStatRepository(client *mongo.Client, cfg config.MongoConfig, logger *zap.Logger) (*MongoDailyStatRepository, error) {
	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create daily stat index: %w", err)
	}

	return &MongoDailyStatRepository{
		collection: collection,
		timeout:    cfg.Timeout,
		logger:     logger,
	}, nil
}

// RecordOrder applies one order's increments to its day document.
// The counters go in a single upsert; the per-product and per-city
// breakdown entries are matched positionally and pushed when absent.
func (r *MongoDailyStatRepository) RecordOrder(ctx context.Context, delta analytics.OrderDelta) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	day := analytics.Day(delta.Occurred)

	inc := bson.M{
		"sales":  delta.Amount.InexactFloat64(),
		"orders": int64(1),
	}
	if delta.NewCustomer {
		inc["new_customers"] = int64(1)
	}
	if delta.PaymentMethod != "" {
		inc["payment_methods."+delta.PaymentMethod] = int64(1)
	}

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"date": day},
		bson.M{"$inc": inc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record order counters: %w", err)
	}

	for _, product := range delta.Products {
		if err := r.incProduct(ctx, day, product); err != nil {
			return err
		}
	}
	if delta.City != "" {
		if err := r.incLocation(ctx, day, delta.City); err != nil {
			return err
		}
	}
	return nil
}

// incProduct increments an existing breakdown entry or pushes a new one
func (r *MongoDailyStatRepository) incProduct(ctx context.Context, day time.Time, product analytics.ProductStat) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"date": day, "products.product_id": product.ProductID},
		bson.M{"$inc": bson.M{
			"products.$.quantity": product.Quantity,
			"products.$.revenue":  product.Revenue.InexactFloat64(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment product stat: %w", err)
	}
	if result.ModifiedCount > 0 {
		return nil
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"date": day},
		bson.M{"$push": bson.M{"products": productDoc{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  product.Quantity,
			Revenue:   product.Revenue.InexactFloat64(),
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to push product stat: %w", err)
	}
	return nil
}

// incLocation increments an existing city entry or pushes a new one
func (r *MongoDailyStatRepository) incLocation(ctx context.Context, day time.Time, city string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"date": day, "locations.city": city},
		bson.M{"$inc": bson.M{"locations.$.orders": int64(1)}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment location stat: %w", err)
	}
	if result.ModifiedCount > 0 {
		return nil
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"date": day},
		bson.M{"$push": bson.M{"locations": locationDoc{City: city, Orders: 1}}},
	)
	if err != nil {
		return fmt.Errorf("failed to push location stat: %w", err)
	}
	return nil
}

// RecordCancellation increments the cancellation counter for the day
func (r *MongoDailyStatRepository) RecordCancellation(ctx context.Context, occurred time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"date": analytics.Day(occurred)},
		bson.M{"$inc": bson.M{"cancelled_orders": int64(1)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record cancellation: %w", err)
	}
	return nil
}

// RecordTraffic increments the visit counter for the day
func (r *MongoDailyStatRepository) RecordTraffic(ctx context.Context, day time.Time, visits int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"date": analytics.Day(day)},
		bson.M{"$inc": bson.M{"traffic": visits}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record traffic: %w", err)
	}
	return nil
}

// FindRange fetches every day document between from and to inclusive,
// ordered by date
func (r *MongoDailyStatRepository) FindRange(ctx context.Context, from, to time.Time) ([]analytics.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"date": bson.M{
		"$gte": analytics.Day(from),
		"$lte": analytics.Day(to),
	}}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []dailyStatDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode daily stats: %w", err)
	}

	stats := make([]analytics.DailyStat, len(docs))
	for i, doc := range docs {
		stats[i] = doc.toDomain()
	}
	return stats, nil
}

func (d dailyStatDoc) toDomain() analytics.DailyStat {
	products := make([]analytics.ProductStat, len(d.Products))
	for i, p := range d.Products {
		products[i] = analytics.ProductStat{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   decimal.NewFromFloat(p.Revenue),
		}
	}
	locations := make([]analytics.LocationStat, len(d.Locations))
	for i, l := range d.Locations {
		locations[i] = analytics.LocationStat{City: l.City, Orders: l.Orders}
	}
	return analytics.DailyStat{
		Date:            d.Date,
		Sales:           decimal.NewFromFloat(d.Sales),
		Orders:          d.Orders,
		CancelledOrders: d.CancelledOrders,
		NewCustomers:    d.NewCustomers,
		Traffic:         d.Traffic,
		Products:        products,
		Locations:       locations,
		PaymentMethods:  d.PaymentMethods,
	}
}

// Ensure MongoDailyStatRepository implements DailyStatRepository
var _ analytics.DailyStatRepository = (*MongoDailyStatRepository)(nil)
