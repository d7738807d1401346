package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) coll() *mongo.Collection {
	return r.db.Collection(CollUsers)
}

// CreateUser inserts a user and returns its external id. The password hash
// is produced by the caller; a raw password never reaches this layer. A
// duplicate username fails with ErrUsernameTaken.
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string, role Role) (string, error) {
	if !role.Valid() {
		return "", ErrInvalidRole
	}

	res, err := r.coll().InsertOne(ctx, User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", conflict(err, ErrUsernameTaken)
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.getUser(ctx, bson.M{"_id": oid})
}

// GetUserByUsername returns (nil, nil) for a username that was never
// inserted; absence is a normal outcome, not an error.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, bson.M{"username": username})
}

func (r *UserRepository) getUser(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	if err := r.coll().FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetCourseStudents returns every student holding an enrollment for the
// course, ordered by username.
func (r *UserRepository) GetCourseStudents(ctx context.Context, courseID string) ([]User, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         CollEnrollment,
			"localField":   "_id",
			"foreignField": "user_id",
			"as":           "enrollments",
		}}},
		{{Key: "$match", Value: bson.M{
			"role":                  RoleStudent,
			"enrollments.course_id": cid,
		}}},
		{{Key: "$project", Value: bson.M{"enrollments": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "username", Value: 1}}}},
	}

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var students []User
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
