// Command seed fills a MongoDB instance with generated schools, reviews,
// staff requests and an admin user for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	schoolCount  int
	reviewCount  int
	requestCount int
	reportCount  int
	adminUserID  string
	drop         bool
	randomSeed   int64
}

type collections struct {
	schools       string
	reviews       string
	reports       string
	staffRequests string
	adminUsers    string
}

type schoolDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	URN       int                `bson:"urn"`
	Name      string             `bson:"name"`
	Postcode  string             `bson:"postcode"`
	Town      string             `bson:"town"`
	Phase     string             `bson:"phase"`
	Gender    string             `bson:"gender"`
	Capacity  int                `bson:"capacity"`
	Pupils    int                `bson:"pupils"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type sectionDocument struct {
	SectionKey string   `bson:"sectionKey"`
	Rating     *float64 `bson:"rating,omitempty"`
	Comment    string   `bson:"comment,omitempty"`
}

type reviewDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	SchoolURN      int                `bson:"schoolUrn"`
	UserID         string             `bson:"userId"`
	Title          string             `bson:"title"`
	Body           string             `bson:"body"`
	Rating         *float64           `bson:"rating,omitempty"`
	RatingComputed *float64           `bson:"ratingComputed,omitempty"`
	Sections       []sectionDocument  `bson:"sections,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

type staffRequestDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"userId"`
	SchoolURN int                `bson:"schoolUrn"`
	FullName  string             `bson:"fullName"`
	Position  string             `bson:"position"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type reportDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	ReviewID   primitive.ObjectID `bson:"reviewId"`
	ReporterID string             `bson:"reporterId"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

var (
	townPool = []string{"Leeds", "Sheffield", "Bristol", "Norwich", "York", "Exeter", "Carlisle", "Ipswich"}
	phases   = []string{"Primary", "Secondary", "All-through"}
	genders  = []string{"Mixed", "Mixed", "Mixed", "Boys", "Girls"}
	prefixes = []string{"St Hilda's", "Oakfield", "Riverside", "Hollybank", "Manor Park", "The Grove", "Weston", "Kingsmead"}
	suffixes = []string{"Primary School", "Academy", "High School", "Church of England School", "Community School"}

	sectionKeys = []string{
		"teaching_learning",
		"behaviour_culture",
		"pastoral_safeguarding",
		"send_support",
		"facilities_resources",
		"extra_curricular",
		"parent_communication",
	}

	reviewTitles = []string{
		"A supportive place to learn",
		"Mixed experience overall",
		"Communication could improve",
		"Brilliant teaching staff",
		"Happy child, happy parents",
		"Facilities need attention",
	}
	reviewBodies = []string{
		"Our child has settled in well and the teachers keep us informed.",
		"Some strong departments, although homework policy changes often.",
		"The pastoral team has been excellent through a difficult year.",
		"Clubs and trips are plentiful, the sports hall is dated though.",
		"SEND provision took a while to arrange but works well now.",
	}
	sectionComments = []string{
		"Consistently good in our experience.",
		"Varies a lot between year groups.",
		"Staff respond quickly when contacted.",
		"Could do with more investment.",
		"",
	}
)

func main() {
	opts := parseFlags()

	_ = godotenv.Load()

	cfg := collections{
		schools:       envOrDefault("SCHOOL_COLLECTION", "schools"),
		reviews:       envOrDefault("REVIEW_COLLECTION", "reviews"),
		reports:       envOrDefault("REPORT_COLLECTION", "review_reports"),
		staffRequests: envOrDefault("STAFF_REQUEST_COLLECTION", "staff_requests"),
		adminUsers:    envOrDefault("ADMIN_USER_COLLECTION", "admin_users"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "edurater")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.drop {
		dropCollections(ctx, db, cfg)
		log.Printf("dropped existing collections")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	schoolDocs := generateSchools(rng, opts.schoolCount)
	if err := insertMany(ctx, db.Collection(cfg.schools), toAnySlice(schoolDocs)); err != nil {
		log.Fatalf("school insert failed: %v", err)
	}

	reviewDocs := generateReviews(rng, schoolDocs, opts.reviewCount)
	if err := insertMany(ctx, db.Collection(cfg.reviews), toAnySlice(reviewDocs)); err != nil {
		log.Fatalf("review insert failed: %v", err)
	}

	requestDocs := generateStaffRequests(rng, schoolDocs, opts.requestCount)
	if len(requestDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.staffRequests), toAnySlice(requestDocs)); err != nil {
			log.Fatalf("staff request insert failed: %v", err)
		}
	}

	reportDocs := generateReports(rng, reviewDocs, opts.reportCount)
	if len(reportDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.reports), toAnySlice(reportDocs)); err != nil {
			log.Fatalf("report insert failed: %v", err)
		}
	}

	if opts.adminUserID != "" {
		_, err := db.Collection(cfg.adminUsers).UpdateOne(ctx,
			bson.M{"userId": opts.adminUserID},
			bson.M{"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID(),
				"userId":    opts.adminUserID,
				"createdAt": time.Now().UTC(),
			}},
			options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("admin user upsert failed: %v", err)
		}
	}

	log.Printf("seed done: schools=%d reviews=%d staffRequests=%d reports=%d admin=%q",
		len(schoolDocs), len(reviewDocs), len(requestDocs), len(reportDocs), opts.adminUserID)
	log.Printf("Mongo: %s / %s", mongoURI, dbName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.schoolCount, "schools", 12, "number of schools to generate")
	flag.IntVar(&opts.reviewCount, "reviews", 120, "number of reviews to generate")
	flag.IntVar(&opts.requestCount, "requests", 6, "number of staff requests to generate")
	flag.IntVar(&opts.reportCount, "reports", 4, "number of review reports to generate")
	flag.StringVar(&opts.adminUserID, "admin", "seed-admin", "user ID to grant admin access, empty to skip")
	flag.BoolVar(&opts.drop, "drop", true, "drop collections before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible runs")
	flag.Parse()

	if opts.schoolCount <= 0 {
		log.Fatal("schools must be at least 1")
	}
	if opts.reviewCount < opts.schoolCount {
		opts.reviewCount = opts.schoolCount
	}
	if opts.requestCount < 0 {
		opts.requestCount = 0
	}
	if opts.reportCount < 0 {
		opts.reportCount = 0
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) {
	for _, name := range []string{cfg.schools, cfg.reviews, cfg.reports, cfg.staffRequests, cfg.adminUsers} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: dropping collection %s: %v", name, err)
		}
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg collections) error {
	if _, err := db.Collection(cfg.schools).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "urn", Value: 1}},
			Options: options.Index().SetName("uniq_school_urn").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "postcode", Value: 1}},
			Options: options.Index().SetName("idx_school_postcode"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_school_name"),
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.reviews).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "schoolUrn", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_review_school_created"),
		},
		{
			Keys:    bson.D{{Key: "deletedAt", Value: 1}},
			Options: options.Index().SetName("idx_review_deleted"),
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.reports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reviewId", Value: 1}, {Key: "reporterId", Value: 1}},
		Options: options.Index().SetName("uniq_report_review_reporter").SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.staffRequests).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "schoolUrn", Value: 1}},
		Options: options.Index().SetName("uniq_staff_request_user_school").SetUnique(true),
	}); err != nil {
		return err
	}

	_, err := db.Collection(cfg.adminUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("uniq_admin_user").SetUnique(true),
	})
	return err
}

func generateSchools(rng *rand.Rand, count int) []schoolDocument {
	now := time.Now().UTC()
	docs := make([]schoolDocument, 0, count)
	for i := 0; i < count; i++ {
		capacity := 200 + rng.Intn(1400)
		docs = append(docs, schoolDocument{
			ID:        primitive.NewObjectID(),
			URN:       100000 + i,
			Name:      fmt.Sprintf("%s %s", prefixes[rng.Intn(len(prefixes))], suffixes[rng.Intn(len(suffixes))]),
			Postcode:  randomPostcode(rng),
			Town:      townPool[rng.Intn(len(townPool))],
			Phase:     phases[rng.Intn(len(phases))],
			Gender:    genders[rng.Intn(len(genders))],
			Capacity:  capacity,
			Pupils:    capacity - rng.Intn(capacity/4+1),
			CreatedAt: now,
		})
	}
	return docs
}

func randomPostcode(rng *rand.Rand) string {
	letters := "ABCDEFGHJKLMNPRSTUWYZ"
	return fmt.Sprintf("%c%c%d %d%c%c",
		letters[rng.Intn(len(letters))], letters[rng.Intn(len(letters))],
		1+rng.Intn(20), 1+rng.Intn(9),
		letters[rng.Intn(len(letters))], letters[rng.Intn(len(letters))])
}

func generateReviews(rng *rand.Rand, schools []schoolDocument, count int) []reviewDocument {
	now := time.Now().UTC()
	docs := make([]reviewDocument, 0, count)
	for i := 0; i < count; i++ {
		school := schools[rng.Intn(len(schools))]
		createdAt := now.AddDate(0, 0, -rng.Intn(180)).Add(-time.Duration(rng.Intn(86400)) * time.Second)

		sections := make([]sectionDocument, 0, 4)
		sum := 0.0
		rated := 0
		for _, key := range sectionKeys {
			if rng.Float64() < 0.45 {
				continue
			}
			section := sectionDocument{SectionKey: key, Comment: sectionComments[rng.Intn(len(sectionComments))]}
			if rng.Float64() < 0.8 {
				rating := float64(2+rng.Intn(7)) / 2.0
				section.Rating = &rating
				sum += rating
				rated++
			}
			sections = append(sections, section)
		}
		if rated == 0 {
			rating := float64(4+rng.Intn(5)) / 2.0
			sections = append(sections, sectionDocument{
				SectionKey: sectionKeys[rng.Intn(len(sectionKeys))],
				Rating:     &rating,
				Comment:    "Overall a fair reflection of the school.",
			})
			sum = rating
			rated = 1
		}

		computed := sum / float64(rated)
		doc := reviewDocument{
			ID:             primitive.NewObjectID(),
			SchoolURN:      school.URN,
			UserID:         fmt.Sprintf("seed-user-%03d", rng.Intn(40)),
			Title:          reviewTitles[rng.Intn(len(reviewTitles))],
			Body:           reviewBodies[rng.Intn(len(reviewBodies))],
			RatingComputed: &computed,
			Sections:       sections,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		}
		if rng.Float64() < 0.6 {
			rating := float64(2+rng.Intn(7)) / 2.0
			doc.Rating = &rating
		}
		docs = append(docs, doc)
	}
	return docs
}

func generateStaffRequests(rng *rand.Rand, schools []schoolDocument, count int) []staffRequestDocument {
	now := time.Now().UTC()
	statuses := []string{"pending", "approved", "rejected"}
	docs := make([]staffRequestDocument, 0, count)
	for i := 0; i < count && i < len(schools); i++ {
		docs = append(docs, staffRequestDocument{
			ID:        primitive.NewObjectID(),
			UserID:    fmt.Sprintf("seed-staff-%03d", i),
			SchoolURN: schools[i].URN,
			FullName:  fmt.Sprintf("Staff Member %d", i+1),
			Position:  "Deputy Head",
			Status:    statuses[rng.Intn(len(statuses))],
			CreatedAt: now.AddDate(0, 0, -rng.Intn(30)),
		})
	}
	return docs
}

func generateReports(rng *rand.Rand, reviews []reviewDocument, count int) []reportDocument {
	if len(reviews) == 0 {
		return nil
	}
	now := time.Now().UTC()
	reasons := []string{
		"Contains identifying details about a pupil",
		"Appears to be written by a competitor",
		"Offensive language",
		"Factually wrong claims about staff",
	}
	docs := make([]reportDocument, 0, count)
	for i := 0; i < count; i++ {
		review := reviews[rng.Intn(len(reviews))]
		docs = append(docs, reportDocument{
			ID:         primitive.NewObjectID(),
			ReviewID:   review.ID,
			ReporterID: fmt.Sprintf("seed-reporter-%03d", i),
			Reason:     reasons[rng.Intn(len(reasons))],
			Status:     "open",
			CreatedAt:  now.AddDate(0, 0, -rng.Intn(14)),
		})
	}
	return docs
}

func insertMany(ctx context.Context, collection *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
