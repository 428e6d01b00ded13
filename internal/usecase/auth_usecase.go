package usecase

import (
	"context"
	"errors"

	"rehab-scheduling/internal/converter"
	"rehab-scheduling/internal/delivery/dto"
	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/internal/domain/repository"
	"rehab-scheduling/internal/service"
	"rehab-scheduling/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrProfileNotFound    = errors.New("user has no scheduling profile")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	patientRepo      repository.PatientRepository
	practitionerRepo repository.PractitionerRepository
	tokenRepo        repository.TokenRepository
	auditService     service.AuditService
	jwtService       *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	practitionerRepo repository.PractitionerRepository,
	tokenRepo repository.TokenRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
		tokenRepo:        tokenRepo,
		auditService:     auditService,
		jwtService:       jwtService,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	// Find user by email (read-only, no transaction needed)
	user, err := u.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	subjectID, err := u.resolveSubject(db, user)
	if err != nil {
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, jwt.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		RoleID:    user.RoleID,
		SubjectID: subjectID,
	})
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, db, &user.ID, entity.AuditActionUserLogin,
		entity.AuditEntityUser, user.ID.String(), nil); err != nil {
		return nil, err
	}

	return tokens, nil
}

// Logout revokes the current access token and, when given, the refresh token
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error {
	if err := u.tokenRepo.Delete(ctx, repository.TokenKindAccess, userID, accessTokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if err := u.tokenRepo.Delete(ctx, repository.TokenKindRefresh, userID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to delete refresh token: %+v", err)
				return err
			}
		}
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout,
		entity.AuditEntityUser, userID.String(), nil); err != nil {
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	// Validate refresh token
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Check if refresh token exists in the store
	exists, err := u.tokenRepo.Exists(ctx, repository.TokenKindRefresh, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Delete old refresh token
	if err := u.tokenRepo.Delete(ctx, repository.TokenKindRefresh, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.Identity())
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, id jwt.Identity) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(id)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(id)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenRepo.Save(ctx, repository.TokenKindAccess, id.UserID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	if err := u.tokenRepo.Save(ctx, repository.TokenKindRefresh, id.UserID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// resolveSubject finds who the user acts as: the patient or practitioner
// record bound to the account, or the staff member's center.
func (u *authUsecase) resolveSubject(db *gorm.DB, user *entity.User) (uuid.UUID, error) {
	switch user.RoleID {
	case entity.RoleIDPatient:
		patient, err := u.patientRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find patient for user %s: %+v", user.ID, err)
			return uuid.Nil, err
		}
		if patient != nil {
			return patient.ID, nil
		}
	case entity.RoleIDPractitioner:
		practitioner, err := u.practitionerRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find practitioner for user %s: %+v", user.ID, err)
			return uuid.Nil, err
		}
		if practitioner != nil {
			return practitioner.ID, nil
		}
	case entity.RoleIDCenterStaff:
		if user.CenterID != nil && *user.CenterID != uuid.Nil {
			return *user.CenterID, nil
		}
	}
	return uuid.Nil, ErrProfileNotFound
}
