package mongo

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tinnova/vehicle-inventory/internal/core/domain"
	"github.com/tinnova/vehicle-inventory/internal/core/ports"
)

const vehicleCollection = "vehicles"

type VehicleRepository struct {
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{coll: db.Collection(vehicleCollection)}
}

// mongoVehicle stores the USD price as Decimal128 so range queries compare
// numerically while the exact decimal representation survives round-trips.
type mongoVehicle struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Brand     string               `bson:"brand"`
	Model     string               `bson:"model"`
	Year      int                  `bson:"year"`
	Color     string               `bson:"color"`
	Plate     string               `bson:"plate"`
	PriceUSD  primitive.Decimal128 `bson:"price_usd"`
	Active    bool                 `bson:"active"`
	CreatedAt int64                `bson:"created_at"`
	UpdatedAt int64                `bson:"updated_at"`
}

func (r *VehicleRepository) FindActive(ctx context.Context, page ports.Page) (*ports.VehiclePage, error) {
	return r.findPage(ctx, bson.M{"active": true}, page)
}

func (r *VehicleRepository) FindByFilter(ctx context.Context, filter ports.VehicleFilter, page ports.Page) (*ports.VehiclePage, error) {
	query := bson.M{"active": true}
	if filter.Brand != "" {
		query["brand"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.Brand) + "$", Options: "i"}
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}
	if filter.Color != "" {
		query["color"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.Color) + "$", Options: "i"}
	}
	return r.findPage(ctx, query, page)
}

func (r *VehicleRepository) FindByPriceRange(ctx context.Context, minUSD, maxUSD *decimal.Decimal, page ports.Page) (*ports.VehiclePage, error) {
	query := bson.M{"active": true}

	bounds := bson.M{}
	if minUSD != nil {
		d, err := toDecimal128(*minUSD)
		if err != nil {
			return nil, err
		}
		bounds["$gte"] = d
	}
	if maxUSD != nil {
		d, err := toDecimal128(*maxUSD)
		if err != nil {
			return nil, err
		}
		bounds["$lte"] = d
	}
	if len(bounds) > 0 {
		query["price_usd"] = bounds
	}

	return r.findPage(ctx, query, page)
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "active": true}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return fromMongoVehicle(&mv)
}

func (r *VehicleRepository) ExistsByPlate(ctx context.Context, plate, excludeID string) (bool, error) {
	query := bson.M{"plate": plate, "active": true}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			query["_id"] = bson.M{"$ne": oid}
		}
	}

	n, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("count plates: %w", err)
	}
	return n > 0, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	doc, err := toMongoVehicle(vehicle)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicatePlate
		}
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}

	out := *vehicle
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(vehicle.ID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	doc, err := toMongoVehicle(vehicle)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicatePlate
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (r *VehicleRepository) CountByBrand(ctx context.Context) ([]domain.BrandCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$brand", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("brand report: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Brand string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("brand report decode: %w", err)
	}

	report := make([]domain.BrandCount, 0, len(rows))
	for _, row := range rows {
		report = append(report, domain.BrandCount{Brand: row.Brand, Count: row.Count})
	}
	return report, nil
}

func (r *VehicleRepository) findPage(ctx context.Context, query bson.M, page ports.Page) (*ports.VehiclePage, error) {
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page.Number - 1) * page.Size)).
		SetLimit(int64(page.Size))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoVehicle
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}

	items := make([]*domain.Vehicle, 0, len(docs))
	for i := range docs {
		v, err := fromMongoVehicle(&docs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &ports.VehiclePage{
		Items:      items,
		Page:       page.Number,
		Size:       page.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func toMongoVehicle(v *domain.Vehicle) (*mongoVehicle, error) {
	price, err := toDecimal128(v.PriceUSD)
	if err != nil {
		return nil, err
	}
	return &mongoVehicle{
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Plate:     v.Plate,
		PriceUSD:  price,
		Active:    v.Active,
		CreatedAt: v.CreatedAt.Unix(),
		UpdatedAt: v.UpdatedAt.Unix(),
	}, nil
}

func fromMongoVehicle(mv *mongoVehicle) (*domain.Vehicle, error) {
	price, err := decimal.NewFromString(mv.PriceUSD.String())
	if err != nil {
		return nil, fmt.Errorf("decode stored price %q: %w", mv.PriceUSD.String(), err)
	}
	return &domain.Vehicle{
		ID:        mv.ID.Hex(),
		Brand:     mv.Brand,
		Model:     mv.Model,
		Year:      mv.Year,
		Color:     mv.Color,
		Plate:     mv.Plate,
		PriceUSD:  price,
		Active:    mv.Active,
		CreatedAt: unixToTime(mv.CreatedAt),
		UpdatedAt: unixToTime(mv.UpdatedAt),
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode price %s: %w", d, err)
	}
	return out, nil
}
