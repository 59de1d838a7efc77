// Command seed loads development fixtures: users, pets, content and a few
// applications. With -destroy it empties every table first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/config"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const seedPassword = "123456"

var tables = []string{
	"donations",
	"adoption_applications",
	"adoption_inquiries",
	"volunteer_applications",
	"events",
	"stories",
	"pets",
	"users",
}

func main() {
	destroy := flag.Bool("destroy", false, "delete all rows before seeding")
	destroyOnly := flag.Bool("destroy-only", false, "delete all rows and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.Primary.IsDevelopment() && cfg.Primary.Env != "test" {
		slog.Error("refusing to seed outside development", "env", cfg.Primary.Env)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *destroy || *destroyOnly {
		if err := truncate(ctx, db); err != nil {
			logger.Error("failed to destroy data", "error", err)
			os.Exit(1)
		}
		logger.Info("data destroyed")
		if *destroyOnly {
			return
		}
	}

	if err := seed(ctx, db, logger); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed data imported", "password", seedPassword)
}

func truncate(ctx context.Context, db *postgres.DB) error {
	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *postgres.DB, logger *slog.Logger) error {
	users := postgres.NewUserRepository(db)
	pets := postgres.NewPetRepository(db)
	donations := postgres.NewDonationRepository(db)
	hasher := security.NewBcryptHasher()

	adoptionSvc := services.NewAdoptionService(postgres.NewAdoptionRepository(db), pets, logger)
	inquirySvc := services.NewInquiryService(postgres.NewInquiryRepository(db), pets, logger)
	volunteerSvc := services.NewVolunteerService(postgres.NewVolunteerRepository(db), logger)
	eventSvc := services.NewEventService(postgres.NewEventRepository(db), logger)
	storySvc := services.NewStoryService(postgres.NewStoryRepository(db), logger)

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		return err
	}

	admin := newUser("Admin User", "admin@example.com", "01700000000", domain.RoleAdmin, hash)
	john := newUser("John Doe", "user@example.com", "01700000001", domain.RoleUser, hash)
	jane := newUser("Jane Smith", "user2@example.com", "01700000003", domain.RoleUser, hash)
	for _, u := range []*domain.User{admin, john, jane} {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
	}
	logger.Info("users imported", "count", 3)

	johnContact := &domain.OwnerContact{Name: "John Doe", Phone: "01700000001", Email: "user@example.com"}
	seedPets := []*domain.Pet{
		newPet("Buddy", "Dog", "Golden Retriever", 2, "Large", "Male",
			"Friendly and energetic dog looking for a loving home.",
			"https://images.unsplash.com/photo-1552053831-71594a27632d", domain.PetAvailable),
		newPet("Mittens", "Cat", "Siamese", 1, "Small", "Female",
			"Quiet and affectionate cat.",
			"https://images.unsplash.com/photo-1513245543132-31f507417b26", domain.PetAvailable),
		newPet("Rocky", "Dog", "Bulldog", 4, "Medium", "Male",
			"Loyal companion.",
			"https://images.unsplash.com/photo-1583511655857-d19b40a7a54e", domain.PetAvailable),
		newPet("Luna", "Cat", "Persian", 3, "Small", "Female",
			"Fluffy and chill.",
			"https://images.unsplash.com/photo-1533743983669-94fa5c4338ec", domain.PetAdopted),
		newPet("Max", "Dog", "German Shepherd", 1, "Large", "Male",
			"User submitted pup awaiting review.",
			"https://images.unsplash.com/photo-1589941013453-ec89f33b5e95", domain.PetPendingReview),
		newPet("Charlie", "Dog", "Beagle", 2, "Medium", "Male",
			"Happy go lucky.",
			"https://images.unsplash.com/photo-1537151608828-ea2b11777ee8", domain.PetAdopted),
	}
	seedPets[4].SubmittedByUserID = &john.ID
	seedPets[4].OwnerContact = johnContact
	seedPets[5].SubmittedByUserID = &john.ID
	seedPets[5].OwnerContact = johnContact
	for _, p := range seedPets {
		if err := pets.Create(ctx, p); err != nil {
			return fmt.Errorf("create pet %s: %w", p.Name, err)
		}
	}
	logger.Info("pets imported", "count", len(seedPets))

	stories := []services.StoryInput{
		{
			Title:      ptr("Luna finds a home"),
			Body:       ptr("Luna was shy at first but now rules the house..."),
			CoverImage: ptr("https://images.unsplash.com/photo-1533743983669-94fa5c4338ec"),
		},
		{
			Title:      ptr("Rescue Mission"),
			Body:       ptr("We saved 50 animals this month!"),
			CoverImage: ptr("https://images.unsplash.com/photo-1450778869180-41d0601e046e"),
		},
	}
	for _, in := range stories {
		if _, err := storySvc.Create(ctx, in); err != nil {
			return fmt.Errorf("create story: %w", err)
		}
	}

	now := time.Now().UTC()
	events := []services.EventInput{
		{
			Title:         ptr("Adoption Fair"),
			Description:   ptr("Come meet our pets!"),
			Location:      ptr("City Park"),
			StartDateTime: ptr(now.AddDate(0, 0, 30).Format(time.RFC3339)),
			Images:        []string{"https://images.unsplash.com/photo-1516734212186-a967f4368592"},
		},
		{
			Title:         ptr("Fundraising Gala"),
			Description:   ptr("Annual fundraiser."),
			Location:      ptr("Grand Hotel"),
			StartDateTime: ptr(now.AddDate(0, 0, -30).Format(time.RFC3339)),
		},
	}
	for _, in := range events {
		if _, err := eventSvc.Create(ctx, in); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
	}
	logger.Info("content imported", "stories", len(stories), "events", len(events))

	_, err = inquirySvc.Create(ctx, services.CreateInquiryCommand{
		PetID:   seedPets[0].ID,
		Name:    "Interested Person",
		Email:   "interested@example.com",
		Phone:   "019000000",
		Message: "Is Buddy good with kids?",
	})
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}

	pending, err := adoptionSvc.Apply(ctx, jane.ID, services.ApplyAdoptionCommand{
		PetID: seedPets[2].ID,
		ApplicantInfo: domain.ApplicantInfo{
			Address:       "123 Fake St",
			Experience:    "Had dogs before",
			HouseholdInfo: "Single, no kids",
			Notes:         ptr("I work from home"),
		},
	})
	if err != nil {
		return fmt.Errorf("create adoption: %w", err)
	}
	// Approving moves Rocky to PENDING_ADOPTION through the normal review path.
	_, err = adoptionSvc.Review(ctx, pending.ID, services.ReviewCommand{
		Status:    string(domain.ReviewApproved),
		AdminNote: ptr("Home visit scheduled."),
	})
	if err != nil {
		return fmt.Errorf("review adoption: %w", err)
	}

	_, err = volunteerSvc.Apply(ctx, services.ApplyVolunteerCommand{
		Name:         "Helpful Hannah",
		Email:        "hannah@example.com",
		Phone:        "01800000000",
		Availability: "Weekends",
		Interests:    []string{"dog walking", "events"},
	})
	if err != nil {
		return fmt.Errorf("create volunteer: %w", err)
	}

	// The last donation is left PENDING, as if the payer never came back.
	amounts := []int64{500, 1000, 250}
	for i, amount := range amounts {
		d, err := domain.NewDonation(uuid.New().String(), services.NewTranID(), decimal.NewFromInt(amount), domain.PurposeGeneral)
		if err != nil {
			return err
		}
		d.UserID = &john.ID
		if err := donations.Create(ctx, d); err != nil {
			return fmt.Errorf("create donation: %w", err)
		}
		if i == len(amounts)-1 {
			continue
		}
		valID := fmt.Sprintf("SEED%d", i+1)
		if _, err := donations.CompleteTransaction(ctx, d.SSL.TranID, domain.TransactionValid, &valID); err != nil {
			return fmt.Errorf("complete donation: %w", err)
		}
	}
	logger.Info("applications and donations imported")

	return nil
}

func newUser(name, email, phone string, role domain.Role, hash string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        &phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newPet(name, species, breed string, age int, size, gender, description, photo string, status domain.PetStatus) *domain.Pet {
	now := time.Now().UTC()
	return &domain.Pet{
		ID:          uuid.New().String(),
		Name:        name,
		Species:     species,
		Breed:       breed,
		Age:         age,
		Size:        size,
		Gender:      gender,
		Description: description,
		Photos:      []string{photo},
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ptr[T any](v T) *T { return &v }
