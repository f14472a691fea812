package mongostore

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"vienna_etl/internal/domain"
	"vienna_etl/internal/shared"
)

const connectTimeout = 10 * time.Second

type listingDoc struct {
	ObjectID        primitive.ObjectID `bson:"_id,omitempty"`
	ID              int64              `bson:"id"`
	Name            string             `bson:"name"`
	RoomType        string             `bson:"room_type"`
	Accommodates    *int               `bson:"accommodates"`
	Price           *float64           `bson:"price"`
	Bedrooms        *float64           `bson:"bedrooms"`
	Beds            *float64           `bson:"beds"`
	NumberOfReviews *int               `bson:"number_of_reviews"`
	Date            string             `bson:"date"`
}

type weatherDoc struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	Date      string             `bson:"date"`
	Temp      float64            `bson:"temp"`
	FeelsLike float64            `bson:"feels_like"`
	Pressure  float64            `bson:"pressure"`
	Humidity  float64            `bson:"humidity"`
	TempMin   float64            `bson:"temp_min"`
	TempMax   float64            `bson:"temp_max"`
	WindSpeed float64            `bson:"wind_speed"`
	Clouds    float64            `bson:"clouds"`
	Rain      float64            `bson:"rain"`
	City      string             `bson:"city"`
}

type tripDoc struct {
	ObjectID        primitive.ObjectID `bson:"_id,omitempty"`
	PickupAt        time.Time          `bson:"tpep_pickup_datetime"`
	DropoffAt       time.Time          `bson:"tpep_dropoff_datetime"`
	PassengerCount  float64            `bson:"passenger_count"`
	TripDistance    float64            `bson:"trip_distance"`
	FareAmount      float64            `bson:"fare_amount"`
	TipAmount       float64            `bson:"tip_amount"`
	TripDurationMin float64            `bson:"trip_duration_min"`
}

// Repo writes each table as a collection of the same name.
type Repo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ domain.Store = (*Repo)(nil)

// URI returns MONGO_URI when set, otherwise a mongodb:// URI built from the
// PG* credentials and host.
func URI(cfg shared.DBConfig) string {
	if cfg.MongoURI != "" {
		return cfg.MongoURI
	}
	u := url.URL{
		Scheme: "mongodb",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
	}
	return u.String()
}

func Connect(ctx context.Context, cfg shared.DBConfig) (*Repo, error) {
	if cfg.NeedsCredentials() && !cfg.HasCredentials() {
		return nil, domain.ErrMissingCredentials
	}
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(URI(cfg)))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("connect mongo %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return &Repo{client: client, db: client.Database(cfg.Name)}, nil
}

func (r *Repo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func (r *Repo) ReplaceListings(ctx context.Context, table string, rows []domain.Listing) error {
	docs := make([]listingDoc, len(rows))
	for i, l := range rows {
		docs[i] = listingDoc{
			ID: l.ID, Name: l.Name, RoomType: l.RoomType, Accommodates: l.Accommodates,
			Price: l.Price, Bedrooms: l.Bedrooms, Beds: l.Beds,
			NumberOfReviews: l.NumberOfReviews, Date: l.Date.String(),
		}
	}
	return replace(ctx, r.db.Collection(table), docs)
}

func (r *Repo) ReplaceWeather(ctx context.Context, table string, rows []domain.Weather) error {
	docs := make([]weatherDoc, len(rows))
	for i, w := range rows {
		docs[i] = weatherDoc{
			Date: w.Date.String(), Temp: w.Temp, FeelsLike: w.FeelsLike, Pressure: w.Pressure,
			Humidity: w.Humidity, TempMin: w.TempMin, TempMax: w.TempMax,
			WindSpeed: w.WindSpeed, Clouds: w.Clouds, Rain: w.Rain, City: w.City,
		}
	}
	return replace(ctx, r.db.Collection(table), docs)
}

func (r *Repo) ReplaceTrips(ctx context.Context, table string, rows []domain.Trip) error {
	docs := make([]tripDoc, len(rows))
	for i, t := range rows {
		docs[i] = tripDoc{
			PickupAt: t.PickupAt, DropoffAt: t.DropoffAt, PassengerCount: t.PassengerCount,
			TripDistance: t.TripDistance, FareAmount: t.FareAmount, TipAmount: t.TipAmount,
			TripDurationMin: t.TripDurationMin,
		}
	}
	return replace(ctx, r.db.Collection(table), docs)
}

// replace drops the collection and inserts docs. Mongo has no cross-collection
// DDL transaction, so readers may briefly see an empty collection.
func replace[T any](ctx context.Context, coll *mongo.Collection, docs []T) error {
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", coll.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	batch := make([]any, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	if _, err := coll.InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return nil
}
