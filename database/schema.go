package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names are part of the persisted-state contract: administrative
// tooling outside this repository addresses data by these names.
const (
	CollUsers      = "users"
	CollCourses    = "courses"
	CollEnrollment = "enrollment"
	CollMaterials  = "materials"
	CollAttendance = "attendance"
	CollPosts      = "posts"
	CollReplies    = "replies"
)

var collections = []string{
	CollUsers, CollCourses, CollEnrollment, CollMaterials,
	CollAttendance, CollPosts, CollReplies,
}

// InitSchema creates the entity collections when absent and declares the
// indexes: unique on users.username, unique compound on the enrollment and
// attendance keys, plus the non-unique lookup indexes the aggregation
// queries lean on. Idempotent, so it runs on every process start.
func InitSchema(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range collections {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		CollUsers:      {{Keys: asc("username"), Options: unique}},
		CollEnrollment: {{Keys: asc("user_id", "course_id"), Options: unique}},
		CollAttendance: {{Keys: asc("student_id", "course_id", "date"), Options: unique}},
		CollCourses:    {{Keys: asc("teacher_id")}},
		CollMaterials:  {{Keys: asc("course_id")}},
		CollPosts:      {{Keys: asc("course_id")}},
		CollReplies:    {{Keys: asc("post_id")}},
	}

	for _, name := range collections {
		models, ok := indexes[name]
		if !ok {
			continue
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}

	return nil
}

func asc(keys ...string) bson.D {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}
	return d
}
