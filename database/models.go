package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// The entity documents below are the persisted shapes; their bson field names
// are part of the stored-data contract. Relationships are foreign-id fields,
// never embedded documents.

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Enrollment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	CourseID   primitive.ObjectID `bson:"course_id" json:"course_id"`
	EnrolledAt time.Time          `bson:"enrolled_at" json:"enrolled_at"`
}

type Material struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID primitive.ObjectID `bson:"course_id" json:"course_id"`
	Title    string             `bson:"title" json:"title"`
	// FilePath is an opaque reference to externally stored content; this
	// layer records it and never validates it.
	FilePath   string    `bson:"filepath" json:"filepath"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type Attendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"course_id"`
	// Date is a calendar date in canonical YYYY-MM-DD form, no time of day.
	Date       string           `bson:"date" json:"date"`
	Status     AttendanceStatus `bson:"status" json:"status"`
	RecordedAt time.Time        `bson:"recorded_at" json:"recorded_at"`
}

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"course_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content   string             `bson:"content" json:"content"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Reply struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content   string             `bson:"content" json:"content"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Annotated read shapes produced by the aggregation queries. The extra fields
// are computed per request and never persisted.

type CourseWithStats struct {
	Course          `bson:",inline"`
	EnrollmentCount int64 `bson:"enrollment_count" json:"enrollment_count"`
}

type CourseWithTeacher struct {
	Course      `bson:",inline"`
	TeacherName string `bson:"teacher_name" json:"teacher_name"`
}

type PostWithAuthor struct {
	Post       `bson:",inline"`
	Username   string `bson:"username" json:"username"`
	ReplyCount int64  `bson:"reply_count" json:"reply_count"`
}

type AttendanceSummary struct {
	Present int64 `json:"present"`
	Total   int64 `json:"total"`
}

const dateLayout = "2006-01-02"

// CanonicalDate validates a calendar date and returns it in the exact form
// the attendance unique index compares: zero-padded YYYY-MM-DD. Anything
// else fails with ErrInvalidDate before a write can happen.
func CanonicalDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Format(dateLayout) != s {
		return "", ErrInvalidDate
	}
	return s, nil
}
