package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grantbelcher/DevConnector/models"
)

// ProfileStore persists profiles, one per user, in the profiles
// collection. Experience and education entries are embedded ordered
// lists, newest first.
type ProfileStore struct {
	coll *mongo.Collection
}

func (s *ProfileStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := s.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileStore) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert applies the sparse update to the requester's profile, creating
// it when absent. The unique index on "user" keeps this at one profile
// per user even under concurrent submissions.
func (s *ProfileStore) Upsert(ctx context.Context, userID primitive.ObjectID, in models.ProfileInput) (*models.Profile, error) {
	update := bson.M{
		"$set": models.BuildProfileUpdate(in),
		"$setOnInsert": bson.M{
			"user":       userID,
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"date":       time.Now().Unix(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddExperience prepends an entry to the requester's experience list.
func (s *ProfileStore) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	return s.push(ctx, userID, "experience", exp)
}

// AddEducation prepends an entry to the requester's education list.
func (s *ProfileStore) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	return s.push(ctx, userID, "education", edu)
}

func (s *ProfileStore) push(ctx context.Context, userID primitive.ObjectID, field string, entry interface{}) (*models.Profile, error) {
	update := bson.M{
		"$push": bson.M{
			field: bson.M{
				"$each":     []interface{}{entry},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// RemoveExperience splices the entry with the given id out of the
// requester's experience list. Ownership is implicit: the filter is
// keyed by the requester's user id.
func (s *ProfileStore) RemoveExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "experience", entryID)
}

// RemoveEducation splices the entry with the given id out of the
// requester's education list.
func (s *ProfileStore) RemoveEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "education", entryID)
}

func (s *ProfileStore) pull(ctx context.Context, userID primitive.ObjectID, field string, entryID primitive.ObjectID) (*models.Profile, error) {
	// The filter requires the entry to be present, so a stale or bogus
	// id reads as NotFound in one atomic write.
	filter := bson.M{"user": userID, field + "._id": entryID}
	update := bson.M{
		"$pull": bson.M{
			field: bson.M{"_id": entryID},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
