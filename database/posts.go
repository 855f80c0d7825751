package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grantbelcher/DevConnector/models"
)

// PostStore persists posts with their embedded likes and comments.
//
// Like and unlike are single guarded updates: the membership check is
// part of the update filter, so two concurrent requests cannot both
// pass a stale read of the likes list.
type PostStore struct {
	coll *mongo.Collection
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

// FindAll returns every post, newest first.
func (s *PostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post. Only the author may delete; the post's user
// field is the sole authority for the check.
func (s *PostStore) Delete(ctx context.Context, postID, requester primitive.ObjectID) error {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != requester {
		return ErrForbidden
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Like prepends the requester to the likes list. The filter excludes
// posts the requester already likes, which keeps the set free of
// duplicates without a read-modify-write.
func (s *PostStore) Like(ctx context.Context, postID, requester primitive.ObjectID) ([]models.Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": bson.M{"$ne": requester},
	}
	update := bson.M{
		"$push": bson.M{
			"likes": bson.M{
				"$each":     []models.Like{{User: requester}},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		// No match: either the post is gone or the like already exists.
		if _, ferr := s.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the requester's like, failing when none exists.
func (s *PostStore) Unlike(ctx context.Context, postID, requester primitive.ObjectID) ([]models.Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": requester,
	}
	update := bson.M{
		"$pull": bson.M{
			"likes": bson.M{"user": requester},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		if _, ferr := s.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrNotLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment stamped with a fresh id.
func (s *PostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     []models.Comment{comment},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// RemoveComment splices a comment out of the post. Only the comment's
// author may remove it, and the API distinguishes a missing comment
// from a foreign one, so this reads before pulling. The pull itself is
// keyed by comment id.
func (s *PostStore) RemoveComment(ctx context.Context, postID, commentID, requester primitive.ObjectID) ([]models.Comment, error) {
	post, err := s.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.Comment(commentID)
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.User != requester {
		return nil, ErrForbidden
	}

	update := bson.M{
		"$pull": bson.M{
			"comments": bson.M{"_id": commentID},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Post
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated.Comments, nil
}
