package identity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/identity"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/auth"
)

// AuthService handles sign-in, sign-up and the OTP flows
type AuthService struct {
	userRepo   identity.UserRepository
	otpStore   identity.OTPStore
	jwtService *auth.JWTService
	mailer     Mailer
	otpTTL     time.Duration
	logger     *zap.Logger
}

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithOTPTTL overrides how long one-time codes stay valid
func WithOTPTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// NewAuthService creates an AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	otpStore identity.OTPStore,
	jwtService *auth.JWTService,
	mailer Mailer,
	logger *zap.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		userRepo:   userRepo,
		otpStore:   otpStore,
		jwtService: jwtService,
		mailer:     mailer,
		otpTTL:     identity.DefaultOTPTTL,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn authenticates by email and password and issues a token pair
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("sign-in for unknown email", zap.String("email", email))
		return nil, shared.NewDomainError(shared.ErrCodeInvalidCredentials, "invalid email or password")
	}
	if !user.CanLogin() {
		s.logger.Warn("sign-in for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "account has been deactivated")
	}
	if !user.VerifyPassword(password) {
		s.logger.Warn("sign-in with wrong password", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError(shared.ErrCodeInvalidCredentials, "invalid email or password")
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed in", zap.String("user_id", user.ID.String()))
	return result, nil
}

// SignUp creates a new account. The handler restricts this to admins.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*UserInfo, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "an account with this email already exists")
	}

	role := input.Role
	if role == "" {
		role = identity.RoleStaff
	}
	user, err := identity.NewUser(input.Name, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	info := toUserInfo(user)
	return &info, nil
}

// RefreshToken exchanges a valid refresh token for a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*SignInResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "invalid or expired refresh token")
	}
	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "account no longer exists")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "account has been deactivated")
	}
	return s.issueTokens(user)
}

// SendOTP generates a one-time code for the given purpose and mails it.
// Unknown emails are answered silently so accounts cannot be probed.
func (s *AuthService) SendOTP(ctx context.Context, email string, purpose identity.OTPPurpose) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Info("otp requested for unknown email", zap.String("email", email))
		return nil
	}

	code, err := identity.GenerateOTPCode()
	if err != nil {
		return err
	}
	if err := s.otpStore.Put(ctx, user.Email, purpose, code, s.otpTTL); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	subject, body := otpMail(purpose, code)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	s.logger.Info("otp sent",
		zap.String("user_id", user.ID.String()), zap.String("purpose", string(purpose)))
	return nil
}

// VerifyOTP consumes a login code and issues tokens on success
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*SignInResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	ok, err := s.otpStore.Consume(ctx, user.Email, identity.OTPPurposeLogin, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "account has been deactivated")
	}
	return s.issueTokens(user)
}

// ForgotPassword starts the reset flow by sending a reset code
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.SendOTP(ctx, email, identity.OTPPurposePasswordReset)
}

// ResetPassword sets a new password after verifying the reset code
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	ok, err := s.otpStore.Consume(ctx, user.Email, identity.OTPPurposePasswordReset, code)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// RequestEmailVerification sends a verification code to the account email
func (s *AuthService) RequestEmailVerification(ctx context.Context, email string) error {
	return s.SendOTP(ctx, email, identity.OTPPurposeEmailVerification)
}

// VerifyEmail marks the account email verified after checking the code
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	ok, err := s.otpStore.Consume(ctx, user.Email, identity.OTPPurposeEmailVerification, code)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError(shared.ErrCodeInvalidOTP, "invalid or expired code")
	}
	user.VerifyEmail()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("email verified", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*SignInResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.TokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to generate authentication tokens")
	}
	return &SignInResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

func otpMail(purpose identity.OTPPurpose, code string) (subject, body string) {
	switch purpose {
	case identity.OTPPurposePasswordReset:
		return "Password reset code", fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)
	case identity.OTPPurposeEmailVerification:
		return "Verify your email", fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	default:
		return "Your sign-in code", fmt.Sprintf("Your one-time sign-in code is %s. It expires in 10 minutes.", code)
	}
}
