package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/lib/pq"

	"github.com/Quangqueee/hanoi-residences/internal/models"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
)

// SeedService fills a development database with demo accounts and
// listings across the Hanoi districts.
type SeedService struct {
	userRepo    *repository.UserRepository
	listingRepo *repository.ListingRepository
}

func NewSeedService(userRepo *repository.UserRepository, listingRepo *repository.ListingRepository) *SeedService {
	return &SeedService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

// SeedData creates demo users and numListings listings. Listings whose
// generated source code collides with an existing one are skipped.
func (s *SeedService) SeedData(ctx context.Context, numUsers, numListings int) error {
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed service: failed to create admin: %w", err)
	}
	if err := s.generateUsers(ctx, numUsers); err != nil {
		return fmt.Errorf("seed service: failed to generate users: %w", err)
	}
	if err := s.generateListings(ctx, numListings); err != nil {
		return fmt.Errorf("seed service: failed to generate listings: %w", err)
	}
	return nil
}

func (s *SeedService) seedAdmin(ctx context.Context) error {
	const adminEmail = "admin@hanoiresidences.vn"

	if _, err := s.userRepo.GetByEmail(ctx, adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	return s.userRepo.UpsertProfile(ctx, &models.Profile{
		UserID:      admin.ID,
		DisplayName: "Back Office",
	})
}

func (s *SeedService) generateUsers(ctx context.Context, count int) error {
	firstNames := []string{
		"Minh", "Anh", "Huy", "Khanh", "Long", "Nam", "Phuc", "Quan", "Son", "Tuan",
		"Chi", "Hoa", "Huong", "Lan", "Linh", "Mai", "Ngoc", "Phuong", "Thao", "Trang",
	}
	lastNames := []string{
		"Nguyen", "Tran", "Le", "Pham", "Hoang", "Phan", "Vu", "Dang", "Bui", "Do",
	}
	domains := []string{"gmail.com", "outlook.com", "yahoo.com"}

	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		email := fmt.Sprintf("%s.%s.%d@%s",
			firstName, lastName, rand.Intn(10000), domains[rand.Intn(len(domains))])

		user := &models.User{
			Email:        email,
			PasswordHash: string(passwordHash),
			Role:         models.RoleUser,
			IsActive:     true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}

		district := models.Districts[rand.Intn(len(models.Districts))]
		profile := &models.Profile{
			UserID:            user.ID,
			DisplayName:       fmt.Sprintf("%s %s", lastName, firstName),
			PreferredDistrict: &district,
		}
		if err := s.userRepo.UpsertProfile(ctx, profile); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeedService) generateListings(ctx context.Context, count int) error {
	roomTypes := []string{
		models.RoomTypeStudio,
		models.RoomTypeOneBedroom,
		models.RoomTypeTwoBedroom,
		models.RoomTypeOther,
	}
	titleTemplates := []string{
		"Căn hộ %s đầy đủ nội thất tại %s",
		"Phòng %s giá tốt gần trung tâm %s",
		"Cho thuê %s mới xây ở %s",
		"Studio %s view đẹp khu %s",
	}
	roomTypeLabels := map[string]string{
		models.RoomTypeStudio:     "studio",
		models.RoomTypeOneBedroom: "1 phòng ngủ",
		models.RoomTypeTwoBedroom: "2 phòng ngủ",
		models.RoomTypeOther:      "tập thể",
	}
	streets := []string{
		"Kim Mã", "Xuân Thủy", "Trần Duy Hưng", "Nguyễn Trãi", "Lạc Long Quân",
		"Âu Cơ", "Minh Khai", "Giải Phóng", "Đội Cấn", "Hoàng Quốc Việt",
	}

	for i := 0; i < count; i++ {
		district := models.Districts[rand.Intn(len(models.Districts))]
		roomType := roomTypes[rand.Intn(len(roomTypes))]
		template := titleTemplates[rand.Intn(len(titleTemplates))]

		// Price in millions of VND per month, one decimal place.
		price := 3.0 + float64(rand.Intn(220))/10.0
		area := 18.0 + float64(rand.Intn(60))

		listing := &models.Listing{
			Title:      fmt.Sprintf(template, roomTypeLabels[roomType], district),
			Details:    fmt.Sprintf("Diện tích %.0f m², điện nước giá dân, giờ giấc tự do. Gần chợ và trường học.", area),
			RoomType:   roomType,
			District:   district,
			Area:       area,
			Price:      price,
			SourceCode: fmt.Sprintf("HN-%05d", rand.Intn(100000)),
			Address:    fmt.Sprintf("Số %d %s, %s, Hà Nội", 1+rand.Intn(200), streets[rand.Intn(len(streets))], district),
			Phone:      fmt.Sprintf("09%08d", rand.Intn(100000000)),
			Images: pq.StringArray{
				fmt.Sprintf("https://picsum.photos/seed/hn%d-1/800/600", i),
				fmt.Sprintf("https://picsum.photos/seed/hn%d-2/800/600", i),
			},
		}

		if err := s.listingRepo.Create(ctx, listing); err != nil {
			if errors.Is(err, repository.ErrDuplicateListing) {
				continue
			}
			return err
		}
	}

	return nil
}
