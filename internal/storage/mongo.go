package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourname/exercisetracker/internal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d userDocument) toModel() internal.User {
	return internal.User{ID: d.ID.Hex(), Username: d.Username}
}

func (d exerciseDocument) toModel() internal.Exercise {
	return internal.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type MongoStorage struct {
	client    *mongo.Client
	users     *mongo.Collection
	exercises *mongo.Collection
	logger    internal.Logger
}

// NewMongoStorage connects, pings the primary and makes sure the indexes the
// repositories rely on exist.
func NewMongoStorage(ctx context.Context, uri, database string, logger internal.Logger) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("failed to connect to mongo: %v", err)
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorf("failed to ping mongo: %v", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	db := client.Database(database)
	m := &MongoStorage{
		client:    client,
		users:     db.Collection(usersCollection),
		exercises: db.Collection(exercisesCollection),
		logger:    logger,
	}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *MongoStorage) ensureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		m.logger.Errorf("failed to create users.username index: %v", err)
		return fmt.Errorf("storage: users index: %w", err)
	}
	_, err = m.exercises.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		m.logger.Errorf("failed to create exercises.userId index: %v", err)
		return fmt.Errorf("storage: exercises index: %w", err)
	}
	return nil
}

func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// --- UserRepository ---
func (m *MongoStorage) InsertUser(ctx context.Context, user *internal.User) error {
	res, err := m.users.InsertOne(ctx, userDocument{Username: user.Username})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return internal.ErrUsernameTaken
		}
		m.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("storage: unexpected inserted id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()
	return nil
}

func (m *MongoStorage) findOneUser(ctx context.Context, filter bson.M) (*internal.User, error) {
	var doc userDocument
	if err := m.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internal.ErrUserNotFound
		}
		m.logger.Errorf("failed to find user: %v", err)
		return nil, err
	}
	u := doc.toModel()
	return &u, nil
}

func (m *MongoStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return m.findOneUser(ctx, bson.M{"_id": oid})
}

func (m *MongoStorage) FindUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	return m.findOneUser(ctx, bson.M{"username": username})
}

func (m *MongoStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"username": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		m.logger.Errorf("failed to list users: %v", err)
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		m.logger.Errorf("failed to decode users: %v", err)
		return nil, err
	}
	users := make([]internal.User, len(docs))
	for i, d := range docs {
		users[i] = d.toModel()
	}
	return users, nil
}

// --- ExerciseRepository ---
func (m *MongoStorage) InsertExercise(ctx context.Context, ex *internal.Exercise) error {
	uid, err := primitive.ObjectIDFromHex(ex.UserID)
	if err != nil {
		return internal.ErrUserNotFound
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	res, err := m.exercises.InsertOne(ctx, exerciseDocument{
		UserID:      uid,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
		CreatedAt:   ex.CreatedAt,
	})
	if err != nil {
		m.logger.Errorf("failed to insert exercise: %v", err)
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ex.ID = oid.Hex()
	}
	return nil
}

// exerciseQuery translates f into a Mongo filter.
func exerciseQuery(f ExerciseFilter) (bson.M, error) {
	uid, err := primitive.ObjectIDFromHex(f.UserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	filter := bson.M{"userId": uid}
	date := bson.M{}
	if f.From != nil {
		date["$gte"] = *f.From
	}
	if f.To != nil {
		date["$lte"] = *f.To
	}
	if len(date) > 0 {
		filter["date"] = date
	}
	return filter, nil
}

func (m *MongoStorage) FindExercises(ctx context.Context, f ExerciseFilter) ([]internal.Exercise, error) {
	filter, err := exerciseQuery(f)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetProjection(bson.M{"userId": 1, "description": 1, "duration": 1, "date": 1, "createdAt": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := m.exercises.Find(ctx, filter, opts)
	if err != nil {
		m.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	var docs []exerciseDocument
	if err := cur.All(ctx, &docs); err != nil {
		m.logger.Errorf("failed to decode exercises: %v", err)
		return nil, err
	}
	out := make([]internal.Exercise, len(docs))
	for i, d := range docs {
		out[i] = d.toModel()
	}
	return out, nil
}

// --- Compile-time assertions ---
var _ Store = (*MongoStorage)(nil)
