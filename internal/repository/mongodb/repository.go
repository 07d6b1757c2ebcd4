package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbodji/autodiag/internal/domain/models"
)

const (
	mileageCollection     = "mileage_entries"
	maintenanceCollection = "maintenance_events"
	summaryCollection     = "maintenance_summaries"
)

// Repository defines the interface for vehicle log storage.
type Repository interface {
	InsertMileageEntry(ctx context.Context, entry models.MileageEntry) error
	ListMileageEntries(ctx context.Context, vehicleID string) ([]models.MileageEntry, error)
	InsertMaintenanceEvent(ctx context.Context, event models.MaintenanceEvent) error
	ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error)
	SaveSummary(ctx context.Context, summary models.MaintenanceSummary) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// InsertMileageEntry stores a single dated odometer reading.
func (r *MongoDBRepository) InsertMileageEntry(ctx context.Context, entry models.MileageEntry) error {
	coll := r.client.Database(r.dbName).Collection(mileageCollection)
	if _, err := coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert mileage entry: %w", err)
	}
	return nil
}

// ListMileageEntries returns all odometer readings for a vehicle, oldest first.
func (r *MongoDBRepository) ListMileageEntries(ctx context.Context, vehicleID string) ([]models.MileageEntry, error) {
	coll := r.client.Database(r.dbName).Collection(mileageCollection)

	cursor, err := coll.Find(ctx,
		bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query mileage entries: %w", err)
	}

	var entries []models.MileageEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode mileage entries: %w", err)
	}
	return entries, nil
}

// InsertMaintenanceEvent stores a service-history event.
func (r *MongoDBRepository) InsertMaintenanceEvent(ctx context.Context, event models.MaintenanceEvent) error {
	coll := r.client.Database(r.dbName).Collection(maintenanceCollection)
	if _, err := coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert maintenance event: %w", err)
	}
	return nil
}

// ListMaintenanceEvents returns the service history for a vehicle, oldest first.
func (r *MongoDBRepository) ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error) {
	coll := r.client.Database(r.dbName).Collection(maintenanceCollection)

	cursor, err := coll.Find(ctx,
		bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance events: %w", err)
	}

	var events []models.MaintenanceEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode maintenance events: %w", err)
	}
	return events, nil
}

// SaveSummary persists a computed maintenance summary for later history views.
func (r *MongoDBRepository) SaveSummary(ctx context.Context, summary models.MaintenanceSummary) error {
	coll := r.client.Database(r.dbName).Collection(summaryCollection)
	if _, err := coll.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("failed to insert maintenance summary: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
