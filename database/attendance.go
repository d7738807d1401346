package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttendanceRepository struct {
	db *mongo.Database
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) coll() *mongo.Collection {
	return r.db.Collection(CollAttendance)
}

// RecordAttendance sets the status for the (student, course, date) key as a
// single conditional write: insert when the key is absent, replace status and
// recorded_at in place when it exists. The unique index keeps the key to one
// record, so calling any number of times with any statuses always leaves
// exactly one record holding the most recent status. No record for a key is
// a distinct state from an explicit "absent" status.
func (r *AttendanceRepository) RecordAttendance(ctx context.Context, studentID, courseID, date string, status AttendanceStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	sid, err := ParseID(studentID)
	if err != nil {
		return err
	}
	cid, err := ParseID(courseID)
	if err != nil {
		return err
	}
	day, err := CanonicalDate(date)
	if err != nil {
		return err
	}

	key := bson.M{"student_id": sid, "course_id": cid, "date": day}
	update := bson.M{"$set": bson.M{
		"student_id":  sid,
		"course_id":   cid,
		"date":        day,
		"status":      status,
		"recorded_at": time.Now().UTC(),
	}}

	_, err = r.coll().UpdateOne(ctx, key, update, options.Update().SetUpsert(true))
	return err
}

// DeleteAttendanceForDate clears the whole course-day: every student's record
// for that course and date, regardless of status. Records for other dates and
// courses are untouched.
func (r *AttendanceRepository) DeleteAttendanceForDate(ctx context.Context, courseID, date string) error {
	cid, err := ParseID(courseID)
	if err != nil {
		return err
	}
	day, err := CanonicalDate(date)
	if err != nil {
		return err
	}

	_, err = r.coll().DeleteMany(ctx, bson.M{"course_id": cid, "date": day})
	return err
}

// GetAttendanceForDate returns the course-day's records, ordered by student
// id for a stable roster view.
func (r *AttendanceRepository) GetAttendanceForDate(ctx context.Context, courseID, date string) ([]Attendance, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return nil, err
	}
	day, err := CanonicalDate(date)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "student_id", Value: 1}})
	cur, err := r.coll().Find(ctx, bson.M{"course_id": cid, "date": day}, opts)
	if err != nil {
		return nil, err
	}

	var records []Attendance
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAttendanceSummary counts the student's presences against all recorded
// days for the course. Dates with no record count in neither number.
func (r *AttendanceRepository) GetAttendanceSummary(ctx context.Context, studentID, courseID string) (*AttendanceSummary, error) {
	sid, err := ParseID(studentID)
	if err != nil {
		return nil, err
	}
	cid, err := ParseID(courseID)
	if err != nil {
		return nil, err
	}

	key := bson.M{"student_id": sid, "course_id": cid}
	total, err := r.coll().CountDocuments(ctx, key)
	if err != nil {
		return nil, err
	}

	key["status"] = StatusPresent
	present, err := r.coll().CountDocuments(ctx, key)
	if err != nil {
		return nil, err
	}

	return &AttendanceSummary{Present: present, Total: total}, nil
}
