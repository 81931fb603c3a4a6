package identity

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	astroRepo "astromitra/database/repository/astrologer"
	userRepo "astromitra/database/repository/user"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/state"
	"astromitra/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 5 * time.Minute

// IdentityService wraps the identity provider: ID-token verification for
// authenticated calls, and the two-step phone re-verification used when
// an account changes its number.
type IdentityService interface {
	// VerifyIDToken validates a Firebase ID token and returns the stable
	// identity id.
	VerifyIDToken(ctx context.Context, token string) (string, error)
	// InitiatePhoneChange sends an OTP to the new number.
	InitiatePhoneChange(ctx context.Context, userID, newPhone string) bool
	// ConfirmPhoneChange verifies the OTP, then applies the profile
	// patch together with the phone-number update in one write.
	ConfirmPhoneChange(ctx context.Context, userID, newPhone, otp string, extraFields map[string]any) bool
}

// DefaultIdentityService is the production implementation.
type DefaultIdentityService struct {
	Auth        *auth.Client
	OTPStore    *redis.Client
	Users       userRepo.UserRepository
	Astrologers astroRepo.AstrologerRepository
	State       *state.Store
	Notifier    notification.Notifier
}

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the
// desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// sendSMS delivers the OTP to the given phone number through the SMS
// provider.
func sendSMS(phoneNumber, message string) error {
	// TODO: wire the production SMS provider; the relay contract is not
	// finalized yet.
	utils.GetLogger().Sugar().Infof("Sending SMS to %s: %s", phoneNumber, message)
	return nil
}

func otpKey(userID, phone string) string {
	return fmt.Sprintf("otp:%s:%s", userID, phone)
}

// VerifyIDToken validates the token against Firebase Auth.
func (s *DefaultIdentityService) VerifyIDToken(ctx context.Context, token string) (string, error) {
	decoded, err := s.Auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("invalid identity token: %w", err)
	}
	return decoded.UID, nil
}

// InitiatePhoneChange generates an OTP, stores its hash with a 5-minute
// TTL, and sends it to the new number.
func (s *DefaultIdentityService) InitiatePhoneChange(ctx context.Context, userID, newPhone string) bool {
	logger := utils.GetLogger()
	otp, err := generateSecureOTP(6)
	if err != nil {
		logger.Error("InitiatePhoneChange", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}

	// Only the bcrypt hash rests in Redis.
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("InitiatePhoneChange", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}
	if err := s.OTPStore.Set(ctx, otpKey(userID, newPhone), hash, otpTTL).Err(); err != nil {
		logger.Error("InitiatePhoneChange: failed to cache OTP", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}

	message := fmt.Sprintf("Your Astromitra verification code is: %s. It expires in 5 minutes.", otp)
	if err := sendSMS(newPhone, message); err != nil {
		logger.Error("InitiatePhoneChange: failed to send OTP", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}
	return true
}

// ConfirmPhoneChange verifies the provided OTP and, only then, applies
// the profile patch together with the phone-number update as one write.
func (s *DefaultIdentityService) ConfirmPhoneChange(ctx context.Context, userID, newPhone, otp string, extraFields map[string]any) bool {
	logger := utils.GetLogger()
	key := otpKey(userID, newPhone)

	stored, err := s.OTPStore.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			s.Notifier.Notice("Verification code expired, please request a new one")
			return false
		}
		logger.Error("ConfirmPhoneChange", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(otp)) != nil {
		s.Notifier.Notice("Incorrect verification code")
		return false
	}
	if err := s.OTPStore.Del(ctx, key).Err(); err != nil {
		logger.Warn("ConfirmPhoneChange: failed to delete OTP", zap.Error(err))
	}

	fields := map[string]any{"phoneNumber": newPhone}
	for k, v := range extraFields {
		fields[k] = v
	}
	if s.State.UserType() == models.UserTypeProfessional {
		err = s.Astrologers.UpdateFields(userID, fields)
	} else {
		err = s.Users.UpdateFields(userID, fields)
	}
	if err != nil {
		logger.Error("ConfirmPhoneChange", zap.Error(err))
		s.Notifier.Notice(utils.GenericFailureNotice)
		return false
	}
	return true
}
