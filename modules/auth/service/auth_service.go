package service

import (
	"context"
	"strconv"
	"strings"

	"taruf-api/core/cache"
	"taruf-api/core/constants"
	"taruf-api/core/errors"
	"taruf-api/core/logger"
	"taruf-api/core/metrics"
	"taruf-api/core/utils"
	"taruf-api/modules/auth/dto"
	"taruf-api/modules/auth/entity"
	"taruf-api/modules/auth/repository"
)

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

type AuthServiceInterface interface {
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.LoginResponse, *errors.AppError)
	CheckCandidate(ctx context.Context, req *dto.CandidateCheckRequest) (*dto.CandidateCheckResponse, *errors.AppError)
	SetCandidatePassword(ctx context.Context, req *dto.CandidatePasswordRequest) (*dto.LoginResponse, *errors.AppError)
	CandidateLogin(ctx context.Context, req *dto.CandidatePasswordRequest) (*dto.LoginResponse, *errors.AppError)
	Verify(claims *utils.TokenClaims) *dto.VerifyResponse
	Logout(ctx context.Context, token string, claims *utils.TokenClaims) *errors.AppError
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

// checkBlocked refreshes the block window of a blocked identifier and
// reports it as too many attempts.
func (service *AuthService) checkBlocked(ctx context.Context, loginKey string) *errors.AppError {
	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:IsLoginBlocked", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if !blocked {
		return nil
	}
	if err := service.cache.Expire(ctx, loginKey, constants.BlockDuration); err != nil {
		logger.Error("AuthService:Expire", err)
	}
	return errors.NewAppError(errors.ErrTooManyAttempts, "too many failed attempts, try again in 15 minutes", nil)
}

func (service *AuthService) recordFailure(ctx context.Context, loginKey string, role string) {
	metrics.LoginFailures.WithLabelValues(role).Inc()
	if err := service.cache.IncrementLoginAttempt(ctx, loginKey); err != nil {
		logger.Error("AuthService:IncrementLoginAttempt", "key", loginKey, err)
	}
}

func (service *AuthService) clearFailures(ctx context.Context, loginKey string) {
	if err := service.cache.Del(ctx, loginKey); err != nil {
		logger.Warn("AuthService:ClearLoginAttempts", "key", loginKey, err)
	}
}

func (service *AuthService) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.LoginResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	loginKey := constants.RoleAdmin + ":" + email

	if appErr := service.checkBlocked(ctx, loginKey); appErr != nil {
		return nil, appErr
	}

	admin, err := service.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load admin", err)
	}
	if admin == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if !utils.ComparePassword(admin.Password, req.Password) {
		service.recordFailure(ctx, loginKey, constants.RoleAdmin)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "entered password is incorrect", nil)
	}

	role := admin.Role
	if role == "" {
		role = constants.RoleAdmin
	}
	token, err := utils.GenerateToken(admin.ID, role, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:AdminLogin:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	service.clearFailures(ctx, loginKey)
	logger.Info("AuthService:AdminLogin:Success", "admin_id", admin.ID)
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserInfo{ID: admin.ID, Name: admin.Name, Role: role},
	}, nil
}

func (service *AuthService) CheckCandidate(ctx context.Context, req *dto.CandidateCheckRequest) (*dto.CandidateCheckResponse, *errors.AppError) {
	its := utils.NormalizeITS(utils.ToString(req.ITSNumber))
	if req.TarufID <= 0 || its == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "taruf_id and its_number are required", nil)
	}

	cred, err := service.repo.GetCandidateByITS(ctx, req.TarufID, its)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to check registration", err)
	}
	if cred == nil {
		return &dto.CandidateCheckResponse{Found: false}, nil
	}
	return &dto.CandidateCheckResponse{Found: true, Registration: summarize(cred)}, nil
}

// SetCandidatePassword sets the first PIN of a registration and signs the
// candidate in. A PIN that is already set cannot be overwritten here.
func (service *AuthService) SetCandidatePassword(ctx context.Context, req *dto.CandidatePasswordRequest) (*dto.LoginResponse, *errors.AppError) {
	if req.RegistrationID <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "registration_id is required", nil)
	}
	if !utils.IsValidPin(req.Password) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "password must be exactly 6 digits", nil)
	}

	cred, err := service.repo.GetCandidateByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load registration", err)
	}
	if cred == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "registration not found", nil)
	}
	if cred.HasPassword() {
		return nil, errors.NewAppError(errors.ErrConflict, "password already set for this registration", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:SetCandidatePassword:HashPassword", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	updated, err := service.repo.SetCandidatePassword(ctx, cred.ID, hashed)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save password", err)
	}
	if !updated {
		// another request set it between the read and the write
		return nil, errors.NewAppError(errors.ErrConflict, "password already set for this registration", nil)
	}

	return service.candidateToken(cred)
}

func (service *AuthService) CandidateLogin(ctx context.Context, req *dto.CandidatePasswordRequest) (*dto.LoginResponse, *errors.AppError) {
	if req.RegistrationID <= 0 || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "registration_id and password are required", nil)
	}
	loginKey := constants.RoleCandidate + ":" + strconv.FormatInt(req.RegistrationID, 10)

	if appErr := service.checkBlocked(ctx, loginKey); appErr != nil {
		return nil, appErr
	}

	cred, err := service.repo.GetCandidateByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load registration", err)
	}
	if cred == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "registration not found", nil)
	}
	if !cred.HasPassword() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "password not set for this registration", nil)
	}
	if !utils.ComparePassword(*cred.Password, req.Password) {
		service.recordFailure(ctx, loginKey, constants.RoleCandidate)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "incorrect password", nil)
	}

	service.clearFailures(ctx, loginKey)
	return service.candidateToken(cred)
}

func (service *AuthService) candidateToken(cred *entity.CandidateCredential) (*dto.LoginResponse, *errors.AppError) {
	token, err := utils.GenerateToken(cred.ID, constants.RoleCandidate, constants.ScopeTokenAccess)
	if err != nil {
		logger.Error("AuthService:CandidateToken:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}
	name := cred.Name
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserInfo{ID: cred.ID, Name: &name, Role: constants.RoleCandidate},
	}, nil
}

func (service *AuthService) Verify(claims *utils.TokenClaims) *dto.VerifyResponse {
	resp := &dto.VerifyResponse{Valid: true, SubjectID: claims.SubjectID, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return resp
}

// Logout revokes token until it would have expired anyway.
func (service *AuthService) Logout(ctx context.Context, token string, claims *utils.TokenClaims) *errors.AppError {
	if err := service.cache.AddToTokenBlacklist(ctx, token, utils.TokenRemainingTTL(claims)); err != nil {
		logger.Error("AuthService:Logout:AddToBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

func summarize(cred *entity.CandidateCredential) *dto.CandidateSummary {
	return &dto.CandidateSummary{
		ID:          cred.ID,
		TarufID:     cred.TarufID,
		ITSNumber:   cred.ITSNumber,
		Name:        cred.Name,
		HasPassword: cred.HasPassword(),
	}
}
