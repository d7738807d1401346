package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository covers the discussion board: posts and their replies.
type PostRepository struct {
	db *mongo.Database
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) posts() *mongo.Collection {
	return r.db.Collection(CollPosts)
}

func (r *PostRepository) replies() *mongo.Collection {
	return r.db.Collection(CollReplies)
}

func (r *PostRepository) CreatePost(ctx context.Context, courseID, userID, content string) (string, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return "", err
	}
	uid, err := ParseID(userID)
	if err != nil {
		return "", err
	}

	res, err := r.posts().InsertOne(ctx, Post{
		CourseID:  cid,
		UserID:    uid,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

func (r *PostRepository) CreateReply(ctx context.Context, postID, userID, content string) (string, error) {
	pid, err := ParseID(postID)
	if err != nil {
		return "", err
	}
	uid, err := ParseID(userID)
	if err != nil {
		return "", err
	}

	res, err := r.replies().InsertOne(ctx, Reply{
		PostID:    pid,
		UserID:    uid,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	return ExternalID(res.InsertedID.(primitive.ObjectID)), nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id string) (*Post, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var p Post
	if err := r.posts().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) GetReplyByID(ctx context.Context, id string) (*Reply, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var rp Reply
	if err := r.replies().FindOne(ctx, bson.M{"_id": oid}).Decode(&rp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rp, nil
}

// GetCoursePosts returns every post for the course in timestamp order,
// oldest first, each annotated with the author's username and a live reply
// count. The lookups never drop a post: a course with N post documents
// always yields N results here.
func (r *PostRepository) GetCoursePosts(ctx context.Context, courseID string) ([]PostWithAuthor, error) {
	cid, err := ParseID(courseID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"course_id": cid}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         CollReplies,
			"localField":   "_id",
			"foreignField": "post_id",
			"as":           "replies",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"username":    bson.M{"$arrayElemAt": bson.A{"$author.username", 0}},
			"reply_count": bson.M{"$size": "$replies"},
		}}},
		{{Key: "$project", Value: bson.M{"author": 0, "replies": 0}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "timestamp", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := r.posts().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var posts []PostWithAuthor
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
