package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EnrollmentRepository struct {
	db *mongo.Database
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) coll() *mongo.Collection {
	return r.db.Collection(CollEnrollment)
}

// EnrollStudent records the student's enrollment in the course. The unique
// (user_id, course_id) index arbitrates concurrent attempts: exactly one
// writer succeeds, the rest observe ErrAlreadyEnrolled, which callers treat
// as "already enrolled" rather than a hard failure.
func (r *EnrollmentRepository) EnrollStudent(ctx context.Context, userID, courseID string) (string, error) {
	uid, err := ParseID(userID)
	if err != nil {
		return "", err
	}
	cid, err := ParseID(courseID)
	if err != nil {
		return "", err
	}

	res, err := r.coll().InsertOne(ctx, Enrollment{
		UserID:     uid,
		CourseID:   cid,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		return "", conflict(err, ErrAlreadyEnrolled)
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

// IsEnrolled reports whether the student holds an enrollment for the course.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	uid, err := ParseID(userID)
	if err != nil {
		return false, err
	}
	cid, err := ParseID(courseID)
	if err != nil {
		return false, err
	}

	err = r.coll().FindOne(ctx, bson.M{"user_id": uid, "course_id": cid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) GetEnrollmentByID(ctx context.Context, id string) (*Enrollment, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var e Enrollment
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
