// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"careline/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores the seed password in plain text. Development only;
	// it makes seeding large user counts much faster.
	SkipBcrypt bool
}

// Seeder populates the database with realistic test data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order matters: children first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"messages", "communications", "comments", "posts", "users", "addresses"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run executes a full seeding pass: users, communications with messages,
// posts with comments.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.CreateUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	comms, err := s.CreateCommunications(users)
	if err != nil {
		return fmt.Errorf("failed to create communications: %w", err)
	}
	log.Printf("✓ %d communications created", len(comms))

	msgCount, err := s.CreateMessages(comms)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("✓ %d messages created", msgCount)

	posts, err := s.CreatePosts(users, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	commentCount, err := s.CreateComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", commentCount)

	return nil
}

// CreateUser builds and persists one user. Optional override functions may
// modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:      gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:         gofakeit.Email(),
		Helper:        s.rng.Intn(2) == 0,
		EmailVerified: s.rng.Intn(4) != 0,
	}
	// every account is at least one of helper/seeker
	user.Seeker = !user.Helper || s.rng.Intn(3) == 0

	if s.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	// roughly half the users carry an address
	if s.rng.Intn(2) == 0 {
		postal := gofakeit.Zip()
		user.Address = &models.Address{
			City:       gofakeit.City(),
			PostalCode: &postal,
		}
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUsers persists n users with varied roles and addresses.
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateCommunications pairs up users with consent requests in a realistic
// status mix: mostly accepted, some pending, a few rejected.
func (s *Seeder) CreateCommunications(users []*models.User) ([]*models.Communication, error) {
	if len(users) < 2 {
		return nil, nil
	}

	comms := make([]*models.Communication, 0)
	seen := make(map[[2]uint]bool)

	// aim for roughly one communication per user
	target := len(users)
	for attempts := 0; len(comms) < target && attempts < target*10; attempts++ {
		from := users[s.rng.Intn(len(users))]
		to := users[s.rng.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}
		key := [2]uint{min(from.ID, to.ID), max(from.ID, to.ID)}
		if seen[key] {
			continue
		}
		seen[key] = true

		status := models.CommunicationAccepted
		switch s.rng.Intn(10) {
		case 0:
			status = models.CommunicationRejected
		case 1, 2:
			status = models.CommunicationPending
		}

		comm := &models.Communication{
			FromUserID: from.ID,
			ToUserID:   to.ID,
			Status:     status,
		}
		if err := s.db.Create(comm).Error; err != nil {
			return nil, err
		}
		comms = append(comms, comm)
	}
	return comms, nil
}

// CreateMessages fills accepted communications with short conversations.
// Pending and rejected communications never carry messages.
func (s *Seeder) CreateMessages(comms []*models.Communication) (int, error) {
	count := 0
	for _, comm := range comms {
		if comm.Status != models.CommunicationAccepted {
			continue
		}
		n := 2 + s.rng.Intn(8)
		base := time.Now().Add(-time.Duration(s.rng.Intn(30*24)) * time.Hour)
		for i := 0; i < n; i++ {
			msg := &models.Message{
				CommunicationID: comm.ID,
				Msg:             gofakeit.Sentence(4 + s.rng.Intn(12)),
				CreatedAt:       base.Add(time.Duration(i) * time.Duration(1+s.rng.Intn(30)) * time.Minute),
			}
			if err := s.db.Create(msg).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// CreatePosts writes n posts attributed to random users, with created_at
// spread over the past 90 days.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:    &author.ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateComments writes a handful of comments on each post.
func (s *Seeder) CreateComments(users []*models.User, posts []*models.Post) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	count := 0
	for _, post := range posts {
		n := s.rng.Intn(5)
		for i := 0; i < n; i++ {
			author := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				Content:   gofakeit.Sentence(6 + s.rng.Intn(10)),
				UserID:    author.ID,
				PostID:    post.ID,
				Upvotes:   s.rng.Intn(20),
				CreatedAt: post.CreatedAt.Add(time.Duration(1+s.rng.Intn(48)) * time.Hour),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
