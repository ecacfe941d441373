package user

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
	"github.com/weavr-net/weavr-server/internal/modules/user/dto"
	"github.com/weavr-net/weavr-server/internal/modules/user/repository"
	"github.com/weavr-net/weavr-server/pkg/apperror"
	commonDto "github.com/weavr-net/weavr-server/pkg/dto"
	"github.com/weavr-net/weavr-server/pkg/storage"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*commonDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*commonDto.UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) (*dto.PaginatedUserResponse, error)
	ListUsersByPassion(ctx context.Context, passionName string) ([]commonDto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*commonDto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	UploadAvatar(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (string, error)
	AttachPassion(ctx context.Context, id uuid.UUID, passionName string) (*commonDto.UserResponse, error)
	DetachPassion(ctx context.Context, id uuid.UUID, passionName string) (*commonDto.UserResponse, error)
}

type userService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
	jwtSecret    string
	jwtTTL       time.Duration
	uploadFolder string
}

func NewUserService(repo repository.UserRepository, imageStorage storage.ImageStorage, jwtSecret string, jwtTTL time.Duration, uploadFolder string) UserService {
	return &userService{
		repo:         repo,
		imageStorage: imageStorage,
		jwtSecret:    jwtSecret,
		jwtTTL:       jwtTTL,
		uploadFolder: uploadFolder,
	}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*commonDto.UserResponse, error) {
	existing, _ := s.repo.FindByEmail(ctx, req.Email)
	if existing != nil {
		return nil, apperror.New(apperror.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
		Headline:     req.Headline,
		Bio:          req.Bio,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.New(apperror.ErrUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.ErrUnauthorized, "invalid email or password")
	}

	if !user.IsActive {
		return nil, apperror.New(apperror.ErrForbidden, "account is deactivated")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*commonDto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) (*dto.PaginatedUserResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]commonDto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *toUserResponse(u))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.PaginatedUserResponse{
		Data: responses,
		Meta: commonDto.PaginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       limit,
		},
	}, nil
}

func (s *userService) ListUsersByPassion(ctx context.Context, passionName string) ([]commonDto.UserResponse, error) {
	if passionName == "" {
		return nil, apperror.New(apperror.ErrInvalidInput, "passion name must not be empty")
	}

	users, err := s.repo.FindByPassionName(ctx, passionName)
	if err != nil {
		return nil, err
	}

	responses := make([]commonDto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *toUserResponse(u))
	}
	return responses, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*commonDto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Headline != nil {
		user.Headline = req.Headline
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "user not found")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *userService) UploadAvatar(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (string, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.New(apperror.ErrNotFound, "user not found")
		}
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", apperror.New(apperror.ErrBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	url, err := s.imageStorage.UploadImage(ctx, src, s.uploadFolder, file.Filename)
	if err != nil {
		return "", err
	}

	// Replace old avatar; deletion failure is non-fatal
	if user.ProfilePictureURL != nil && *user.ProfilePictureURL != "" {
		_ = s.imageStorage.DeleteImage(ctx, *user.ProfilePictureURL)
	}

	user.ProfilePictureURL = &url
	if err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}

	return url, nil
}

func (s *userService) AttachPassion(ctx context.Context, id uuid.UUID, passionName string) (*commonDto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	passion, err := s.repo.FindPassionByName(ctx, passionName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		passion = &entity.Passion{Name: passionName}
		if err := s.repo.CreatePassion(ctx, passion); err != nil {
			return nil, err
		}
	}

	for _, p := range user.Passions {
		if p.ID == passion.ID {
			return toUserResponse(user), nil
		}
	}

	if err := s.repo.AttachPassion(ctx, user, passion); err != nil {
		return nil, err
	}

	user.Passions = append(user.Passions, *passion)
	return toUserResponse(user), nil
}

func (s *userService) DetachPassion(ctx context.Context, id uuid.UUID, passionName string) (*commonDto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	passion, err := s.repo.FindPassionByName(ctx, passionName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "passion not found")
		}
		return nil, err
	}

	if err := s.repo.DetachPassion(ctx, user, passion); err != nil {
		return nil, err
	}

	remaining := user.Passions[:0]
	for _, p := range user.Passions {
		if p.ID != passion.ID {
			remaining = append(remaining, p)
		}
	}
	user.Passions = remaining

	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *commonDto.UserResponse {
	passions := make([]string, 0, len(user.Passions))
	for _, p := range user.Passions {
		passions = append(passions, p.Name)
	}

	return &commonDto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Location:          user.Location,
		Headline:          user.Headline,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		Passions:          passions,
		CreatedAt:         user.CreatedAt,
	}
}
