// Package mongostore keeps pandals, ratings, visits, badges and users in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	pandalsCollection = "pandals"
	ratingsCollection = "ratings"
	visitsCollection  = "visits"
	badgesCollection  = "user_badges"
	usersCollection   = "users"
)

type Store struct {
	db      *mongo.Database
	pandals *mongo.Collection
	ratings *mongo.Collection
	visits  *mongo.Collection
	badges  *mongo.Collection
	users   *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:      db,
		pandals: db.Collection(pandalsCollection),
		ratings: db.Collection(ratingsCollection),
		visits:  db.Collection(visitsCollection),
		badges:  db.Collection(badgesCollection),
		users:   db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the indexes queries rely on. Existing indexes with
// the same name are left alone.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	plan := map[*mongo.Collection][]mongo.IndexModel{
		s.pandals: {
			{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
			{Keys: bson.D{{Key: "area", Value: 1}}, Options: options.Index().SetName("area_idx")},
		},
		s.ratings: {
			{Keys: bson.D{{Key: "pandal_id", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("pandal_ratings_idx")},
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("user_ratings_idx")},
		},
		s.visits: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("user_visits_idx")},
		},
		s.badges: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "badge_id", Value: 1}}, Options: options.Index().SetName("user_badge_uniq").SetUnique(true)},
		},
	}
	for coll, idx := range plan {
		if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll.Name(), err)
		}
	}
	logrus.Info("MongoDB indexes ensured")
	return nil
}

var byInsertion = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func (s *Store) CreatePandal(ctx context.Context, p *models.Pandal) error {
	doc := toPandalDoc(p)
	doc.ID = primitive.NewObjectID()
	if _, err := s.pandals.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (s *Store) findPandals(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Pandal, error) {
	cur, err := s.pandals.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []pandalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Pandal, len(docs))
	for i := range docs {
		out[i] = docs[i].toModel()
	}
	return out, nil
}

func (s *Store) ListPandals(ctx context.Context, limit int) ([]models.Pandal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.findPandals(ctx, bson.M{}, opts)
}

func (s *Store) GetPandal(ctx context.Context, id string) (*models.Pandal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc pandalDoc
	if err := s.pandals.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p := doc.toModel()
	return &p, nil
}

// UpdatePandal replaces every field except created_at.
func (s *Store) UpdatePandal(ctx context.Context, p *models.Pandal) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	doc := toPandalDoc(p)
	set, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var fields bson.M
	if err := bson.Unmarshal(set, &fields); err != nil {
		return err
	}
	delete(fields, "_id")
	delete(fields, "created_at")
	update := bson.M{"$set": fields}
	if p.Location == nil {
		update["$unset"] = bson.M{"location": ""}
	}
	res, err := s.pandals.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PandalsWithinRadius is the coarse stage: $geoWithin/$centerSphere on the
// 2dsphere index, in insertion order.
func (s *Store) PandalsWithinRadius(ctx context.Context, center location.Point, radiusMeters float64) ([]models.Pandal, error) {
	return s.findPandals(ctx, withinFilter(center, radiusMeters), byInsertion)
}

func (s *Store) CountPandals(ctx context.Context) (int64, error) {
	return s.pandals.CountDocuments(ctx, bson.M{})
}

func (s *Store) CreateRating(ctx context.Context, r *models.Rating) error {
	doc := ratingDoc{
		ID:        primitive.NewObjectID(),
		PandalID:  r.PandalID,
		UserID:    r.UserID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if _, err := s.ratings.InsertOne(ctx, doc); err != nil {
		return err
	}
	r.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListRatings(ctx context.Context, pandalID string) ([]models.Rating, error) {
	cur, err := s.ratings.Find(ctx, bson.M{"pandal_id": pandalID}, byInsertion)
	if err != nil {
		return nil, err
	}
	var docs []ratingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Rating, len(docs))
	for i := range docs {
		out[i] = docs[i].toModel()
	}
	return out, nil
}

func (s *Store) ScoresByPandal(ctx context.Context, pandalIDs []string) (map[string][]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"pandal_id": bson.M{"$in": pandalIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$pandal_id", "scores": bson.M{"$push": "$score"}}}},
	}
	cur, err := s.ratings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		PandalID string `bson:"_id"`
		Scores   []int  `bson:"scores"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string][]int, len(rows))
	for _, r := range rows {
		out[r.PandalID] = r.Scores
	}
	return out, nil
}

func (s *Store) CreateVisit(ctx context.Context, v *models.Visit) error {
	doc := visitDoc{ID: primitive.NewObjectID(), UserID: v.UserID, PandalID: v.PandalID, VisitedAt: v.VisitedAt}
	if _, err := s.visits.InsertOne(ctx, doc); err != nil {
		return err
	}
	v.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error) {
	cur, err := s.visits.Find(ctx, bson.M{"user_id": userID}, byInsertion)
	if err != nil {
		return nil, err
	}
	var docs []visitDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Visit, len(docs))
	for i, d := range docs {
		out[i] = models.Visit{ID: d.ID.Hex(), UserID: d.UserID, PandalID: d.PandalID, VisitedAt: d.VisitedAt}
	}
	return out, nil
}

// AwardBadge upserts on (user_id, badge_id); only a fresh insert counts as awarded.
func (s *Store) AwardBadge(ctx context.Context, b *models.UserBadge) (bool, error) {
	filter, update := awardUpdate(b)
	res, err := s.badges.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (s *Store) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	cur, err := s.badges.Find(ctx, bson.M{"user_id": userID}, byInsertion)
	if err != nil {
		return nil, err
	}
	var docs []userBadgeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.UserBadge, len(docs))
	for i, d := range docs {
		out[i] = models.UserBadge{UserID: d.UserID, BadgeID: d.BadgeID, AwardedAt: d.AwardedAt}
	}
	return out, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	update := bson.M{
		"$set": bson.M{
			"email":         u.Email,
			"name":          u.Name,
			"picture":       u.Picture,
			"role":          u.Role,
			"last_login_at": u.LastLoginAt,
		},
		"$setOnInsert": bson.M{"created_at": u.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc userDoc
	if err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": u.ID}, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	out := doc.toModel()
	return &out, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u := doc.toModel()
	return &u, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
