package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseRepository struct {
	db *mongo.Database
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) coll() *mongo.Collection {
	return r.db.Collection(CollCourses)
}

// CreateCourse inserts a course and returns its external id. The caller is
// responsible for teacherID naming a user with the teacher role; the store
// only checks that the id is well formed.
func (r *CourseRepository) CreateCourse(ctx context.Context, title, description, teacherID string) (string, error) {
	tid, err := ParseID(teacherID)
	if err != nil {
		return "", err
	}

	res, err := r.coll().InsertOne(ctx, Course{
		Title:       title,
		Description: description,
		TeacherID:   tid,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var c Course
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetCourseWithTeacher is GetCourseByID annotated with the teacher's
// username, for course pages that display who runs the course.
func (r *CourseRepository) GetCourseWithTeacher(ctx context.Context, id string) (*CourseWithTeacher, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
	}
	pipeline = append(pipeline, teacherNameStages()...)

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var courses []CourseWithTeacher
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return &courses[0], nil
}

// GetTeacherCourses returns every course of the teacher, each carrying a live
// enrollment count joined from the enrollment collection. The count is
// computed per call; nothing is cached on the course document.
func (r *CourseRepository) GetTeacherCourses(ctx context.Context, teacherID string) ([]CourseWithStats, error) {
	tid, err := ParseID(teacherID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"teacher_id": tid}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollEnrollment,
			"localField":   "_id",
			"foreignField": "course_id",
			"as":           "enrollments",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"enrollment_count": bson.M{"$size": "$enrollments"},
		}}},
		{{Key: "$project", Value: bson.M{"enrollments": 0}}},
		creationOrder(),
	}

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var courses []CourseWithStats
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetStudentCourses returns the courses the student is enrolled in, annotated
// with the teacher's username, in course creation order.
func (r *CourseRepository) GetStudentCourses(ctx context.Context, studentID string) ([]CourseWithTeacher, error) {
	sid, err := ParseID(studentID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         CollEnrollment,
			"localField":   "_id",
			"foreignField": "course_id",
			"as":           "enrollments",
		}}},
		{{Key: "$match", Value: bson.M{"enrollments.user_id": sid}}},
	}
	pipeline = append(pipeline, teacherNameStages()...)
	pipeline = append(pipeline, creationOrder())

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var courses []CourseWithTeacher
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetAvailableCourses returns the complement of GetStudentCourses over the
// full course set: every course the student holds no enrollment for, in the
// same creation order.
func (r *CourseRepository) GetAvailableCourses(ctx context.Context, studentID string) ([]CourseWithTeacher, error) {
	sid, err := ParseID(studentID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": CollEnrollment,
			"let":  bson.M{"course_id": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$user_id", sid}},
					bson.M{"$eq": bson.A{"$course_id", "$$course_id"}},
				}}}},
			},
			"as": "enrollments",
		}}},
		{{Key: "$match", Value: bson.M{"enrollments": bson.M{"$size": 0}}}},
	}
	pipeline = append(pipeline, teacherNameStages()...)
	pipeline = append(pipeline, creationOrder())

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var courses []CourseWithTeacher
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// teacherNameStages joins the owning teacher's username onto a course as
// teacher_name and drops the intermediate arrays.
func teacherNameStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         CollUsers,
			"localField":   "teacher_id",
			"foreignField": "_id",
			"as":           "teacher",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"teacher_name": bson.M{"$arrayElemAt": bson.A{"$teacher.username", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"enrollments": 0, "teacher": 0}}},
	}
}

// creationOrder sorts courses by creation time, ties broken by id, so every
// course listing is stable.
func creationOrder() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	}}}
}
