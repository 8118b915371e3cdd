package appointments

import (
	"context"
	"errors"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type appointmentMongoRepository struct {
	Collection *mongo.Collection
	Clock      contracts.Clock
	Log        *zap.Logger
}

func NewAppointmentMongoRepository(db *mongo.Database, clock contracts.Clock, logger *zap.Logger) contracts.AppointmentRepository {
	return &appointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
		Clock:      clock,
		Log:        logger,
	}
}

func (r *appointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if _, err := r.Collection.InsertOne(ctx, appointment); err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (r *appointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *appointmentMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"patientId": patientID})
}

func (r *appointmentMongoRepository) FindByDate(ctx context.Context, date, nutritionistID string) ([]models.Appointment, error) {
	filter := bson.M{"date": date}
	if nutritionistID != "" {
		filter["nutritionistId"] = nutritionistID
	}
	return r.findAll(ctx, filter)
}

func (r *appointmentMongoRepository) FindByStatus(ctx context.Context, status models.AppointmentStatus, nutritionistID string) ([]models.Appointment, error) {
	filter := bson.M{"status": status}
	if nutritionistID != "" {
		filter["nutritionistId"] = nutritionistID
	}
	return r.findAll(ctx, filter)
}

func (r *appointmentMongoRepository) FindAcceptedByDateRange(ctx context.Context, startDate, endDate, nutritionistID string) ([]models.Appointment, error) {
	// Zero-padded ISO dates order lexicographically, so a plain string range
	// matches the calendar range.
	filter := bson.M{
		"status": models.AppointmentStatusAccepted,
		"date":   bson.M{"$gte": startDate, "$lte": endDate},
	}
	if nutritionistID != "" {
		filter["nutritionistId"] = nutritionistID
	}
	return r.findAll(ctx, filter)
}

func (r *appointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": r.Clock(),
	}}
	result, err := r.Collection.UpdateByID(ctx, appointmentID, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrAppointmentNotFound(nil)
	}
	return nil
}

func (r *appointmentMongoRepository) OnPatientAppointmentsChange(ctx context.Context, patientID string, callback func([]models.Appointment)) (func(), error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "fullDocument.patientId", Value: patientID}}}},
	}
	return r.watch(ctx, pipeline, func(streamCtx context.Context) ([]models.Appointment, error) {
		return r.FindByPatient(streamCtx, patientID)
	}, callback)
}

func (r *appointmentMongoRepository) OnNutritionistPendingChange(ctx context.Context, nutritionistID string, callback func([]models.Appointment)) (func(), error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "fullDocument.nutritionistId", Value: nutritionistID}}}},
	}
	return r.watch(ctx, pipeline, func(streamCtx context.Context) ([]models.Appointment, error) {
		return r.FindByStatus(streamCtx, models.AppointmentStatusPending, nutritionistID)
	}, callback)
}

func (r *appointmentMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "timeStart", Value: 1},
		{Key: "createdAt", Value: 1},
	}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

// watch opens a change stream and re-runs the list query on every matching
// event, pushing the full fresh list to the callback. The returned func stops
// the stream; calling it more than once is safe.
func (r *appointmentMongoRepository) watch(
	ctx context.Context,
	pipeline mongo.Pipeline,
	list func(context.Context) ([]models.Appointment, error),
	callback func([]models.Appointment),
) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := r.Collection.Watch(streamCtx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, exceptions.ErrMongoDBWatchCollection(err)
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			appointments, err := list(streamCtx)
			if err != nil {
				r.Log.Warn("appointmentMongoRepository.watch list refresh failed", zap.Error(err))
				continue
			}
			callback(appointments)
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			r.Log.Warn("appointmentMongoRepository.watch stream closed", zap.Error(err))
		}
	}()

	return cancel, nil
}
