package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shadowina/ecole-portal-api/internal/models"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	CountRegistrationNumbers(ctx context.Context, prefix, day string) (int, error)
	CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error
	CreateProfessorAccount(ctx context.Context, user *models.User, professor *models.Professor) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type studentProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

type professorProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.Professor, error)
}

type adminProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.DepartmentAdmin, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService provides login, registration and token validation.
type AuthService struct {
	users      authUserRepository
	students   studentProfileReader
	professors professorProfileReader
	admins     adminProfileReader
	programmes programmeReader
	deps       departmentReader
	validator  *validator.Validate
	logger     *zap.Logger
	config     AuthConfig
	now        func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, students studentProfileReader, professors professorProfileReader, admins adminProfileReader, programmes programmeReader, deps departmentReader, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		students:   students,
		professors: professors,
		admins:     admins,
		programmes: programmes,
		deps:       deps,
		validator:  validate,
		logger:     logger,
		config:     config,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates a user and returns a signed token with the resolved
// role profile. Profiles are probed in student, professor, admin order.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	userType, profileID, err := s.resolveProfile(ctx, user.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve user profile")
	}

	token, expiresAt, err := s.generateToken(user, userType, profileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: &user.ID,
		NewValues:  []byte(`{"status":"success"}`),
		IPAddress:  req.IP,
		UserAgent:  req.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record login audit log", zap.Error(err))
	}

	return &models.AuthResponse{
		Token:              token,
		UserType:           userType,
		UserID:             user.ID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		RegistrationNumber: user.RegistrationNumber,
		ProfileID:          profileID,
		ExpiresAt:          expiresAt,
	}, nil
}

// Register creates a user account together with its role profile. The
// registration number is derived from the user type, the creation instant
// and a per-day sequence.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
	}

	userType := models.UserType(req.UserType)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := s.now()
	number, err := s.nextRegistrationNumber(ctx, userType, now)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		PasswordHash:       string(hash),
		RegistrationNumber: number,
		Address:            req.Address,
		PostalCode:         req.PostalCode,
	}

	var profileID *string
	switch userType {
	case models.UserTypeStudent:
		if req.ProgrammeID != nil {
			if _, err := s.programmes.FindByID(ctx, *req.ProgrammeID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, appErrors.Clone(appErrors.ErrMissingReference, "programme not found")
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate programme")
			}
		}
		year := 1
		if req.Year != nil {
			year = *req.Year
		}
		student := &models.Student{Year: year, ProgrammeID: req.ProgrammeID}
		if err := s.users.CreateStudentAccount(ctx, user, student); err != nil {
			return nil, s.accountError(err)
		}
		profileID = &student.ID
	case models.UserTypeProfessor:
		if req.DepartmentID != nil {
			if _, err := s.deps.FindByID(ctx, *req.DepartmentID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, appErrors.Clone(appErrors.ErrMissingReference, "department not found")
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate department")
			}
		}
		professor := &models.Professor{Specialization: req.Specialization, DepartmentID: req.DepartmentID}
		if err := s.users.CreateProfessorAccount(ctx, user, professor); err != nil {
			return nil, s.accountError(err)
		}
		profileID = &professor.ID
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported user type")
	}

	token, expiresAt, err := s.generateToken(user, userType, profileID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &user.ID,
		Action:     models.AuditActionRegister,
		Resource:   "auth",
		ResourceID: &user.ID,
		NewValues:  []byte(fmt.Sprintf(`{"user_type":%q}`, userType)),
		IPAddress:  req.IP,
		UserAgent:  req.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record registration audit log", zap.Error(err))
	}

	return &models.AuthResponse{
		Token:              token,
		UserType:           userType,
		UserID:             user.ID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		RegistrationNumber: user.RegistrationNumber,
		ProfileID:          profileID,
		ExpiresAt:          expiresAt,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) resolveProfile(ctx context.Context, userID string) (models.UserType, *string, error) {
	if student, err := s.students.FindByUserID(ctx, userID); err == nil {
		return models.UserTypeStudent, &student.ID, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", nil, err
	}
	if professor, err := s.professors.FindByUserID(ctx, userID); err == nil {
		return models.UserTypeProfessor, &professor.ID, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", nil, err
	}
	if admin, err := s.admins.FindByUserID(ctx, userID); err == nil {
		return models.UserTypeDepartmentAdmin, &admin.ID, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", nil, err
	}
	return "", nil, nil
}

func (s *AuthService) nextRegistrationNumber(ctx context.Context, userType models.UserType, at time.Time) (string, error) {
	prefix := RegistrationPrefix(userType)
	count, err := s.users.CountRegistrationNumbers(ctx, prefix, RegistrationDay(at))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to derive registration number")
	}
	return FormatRegistrationNumber(userType, at, count+1), nil
}

func (s *AuthService) accountError(err error) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
}

func (s *AuthService) generateToken(user *models.User, userType models.UserType, profileID *string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		UserID:             user.ID,
		Email:              user.Email,
		FullName:           user.FullName(),
		UserType:           userType,
		RegistrationNumber: user.RegistrationNumber,
		ProfileID:          profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
