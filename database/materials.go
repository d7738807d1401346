package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MaterialRepository struct {
	db *mongo.Database
}

func NewMaterialRepository(db *mongo.Database) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) coll() *mongo.Collection {
	return r.db.Collection(CollMaterials)
}

// AddMaterial records a material's metadata for a course. The filepath is an
// opaque reference into external storage; uploading and serving the bytes is
// a collaborator's job.
func (r *MaterialRepository) AddMaterial(ctx context.Context, courseID, title, filepath string) (string, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return "", err
	}

	res, err := r.coll().InsertOne(ctx, Material{
		CourseID:   cid,
		Title:      title,
		FilePath:   filepath,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

func (r *MaterialRepository) GetMaterialByID(ctx context.Context, id string) (*Material, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var m Material
	if err := r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetCourseMaterials returns the course's materials in upload order.
func (r *MaterialRepository) GetCourseMaterials(ctx context.Context, courseID string) ([]Material, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "uploaded_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := r.coll().Find(ctx, bson.M{"course_id": cid}, opts)
	if err != nil {
		return nil, err
	}

	var materials []Material
	if err := cur.All(ctx, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}
