package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vedant1418/the-arabian/src/config"
	"github.com/vedant1418/the-arabian/src/db"
	"github.com/vedant1418/the-arabian/src/lib"
	"github.com/vedant1418/the-arabian/src/lib/mailer"
	"github.com/vedant1418/the-arabian/src/models"
	"github.com/vedant1418/the-arabian/src/types"
	"github.com/vedant1418/the-arabian/src/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (id *uint, status int, err error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.Password != body.ConfirmPassword {
		return nil, http.StatusBadRequest, errors.New("Passwords do not match.")
	}
	if err := utils.ValidatePasswordStrength(body.Password); err != nil {
		return nil, http.StatusBadRequest, err
	}

	conn := db.GetDb()
	var user models.User
	err = conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("lower(email) = lower(?)", body.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("Email already exists.")
		}
		if err := tx.Model(&models.User{}).Where("phone = ?", body.Phone).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("Phone number already registered.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = models.User{
			Name:         body.Name,
			Email:        body.Email,
			Phone:        body.Phone,
			PasswordHash: string(hash),
		}
		if err := tx.Create(&user).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return fmt.Errorf("error creating user: %s", body.Email)
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &user.ID, http.StatusOK, nil
}

// AuthLogin resolves accounts by email only. The legacy username/phone
// lookups from earlier revisions are gone.
func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	conn := db.GetDb()
	var user models.User
	if err := conn.
		Model(&models.User{}).
		Where("lower(email) = lower(?)", body.Email).
		First(&user).
		Error; err != nil {
		return nil, http.StatusUnauthorized, errors.New("Invalid credentials.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return nil, http.StatusUnauthorized, errors.New("Invalid credentials.")
	}
	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Staff)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &jwt, http.StatusOK, nil
}

func resetStateKey(token string) string {
	return fmt.Sprintf("reset:%s", token)
}

func loadResetState(ctx context.Context, token string) (*types.ResetFlowState, error) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return nil, errors.New("reset state store unavailable")
	}
	raw, err := rd.Get(ctx, resetStateKey(token)).Result()
	if err != nil {
		return nil, errors.New("Reset session expired or unknown. Start over.")
	}
	var state types.ResetFlowState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PasswordResetRequest starts the three-step flow: create an OTP row, email
// the code and park the flow state in redis under a fresh token.
func PasswordResetRequest(ctx *gin.Context) (resetToken *string, status int, err error) {
	var body types.PasswordResetRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	conn := db.GetDb()
	var user models.User
	if err := conn.
		Model(&models.User{}).
		Where("lower(email) = lower(?)", body.Email).
		First(&user).
		Error; err != nil {
		return nil, http.StatusNotFound, errors.New("No account found with that email.")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	otp := models.PasswordResetOTP{UserID: user.ID, OTP: code}
	if err := conn.Create(&otp).Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}

	token := uuid.NewString()
	state, _ := json.Marshal(&types.ResetFlowState{UserID: user.ID})
	rd := lib.GetRedisClient()
	if rd == nil {
		return nil, http.StatusInternalServerError, errors.New("reset state store unavailable")
	}
	if err := rd.Set(ctx, resetStateKey(token), state, config.OTP_TTL_MINUTES*time.Minute).Err(); err != nil {
		return nil, http.StatusInternalServerError, err
	}

	if err := mailer.SendOTPEmail(user.Email, code); err != nil {
		log.Printf("Error sending OTP email to user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusBadGateway, errors.New("could not send OTP email")
	}
	return &token, http.StatusOK, nil
}

// PasswordResetVerify consumes the most recent unused OTP inside the
// validity window and flips the verified flag on the flow state.
func PasswordResetVerify(ctx *gin.Context) (status int, err error) {
	var body types.PasswordResetVerifyBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	state, err := loadResetState(ctx, body.ResetToken)
	if err != nil {
		return http.StatusUnauthorized, err
	}

	conn := db.GetDb()
	cutoff := time.Now().Add(-config.OTP_TTL_MINUTES * time.Minute)
	var otp models.PasswordResetOTP
	if err := conn.
		Model(&models.PasswordResetOTP{}).
		Where("user_id = ? AND otp = ? AND is_used = ?", state.UserID, body.OTP, false).
		Where("created_at > ?", cutoff).
		Order("created_at DESC").
		First(&otp).
		Error; err != nil {
		return http.StatusBadRequest, errors.New("Invalid or expired OTP.")
	}
	if err := conn.
		Model(&models.PasswordResetOTP{}).
		Where(&models.PasswordResetOTP{ID: otp.ID}).
		Update("is_used", true).
		Error; err != nil {
		return http.StatusInternalServerError, err
	}

	state.OTPVerified = true
	raw, _ := json.Marshal(state)
	rd := lib.GetRedisClient()
	if err := rd.Set(ctx, resetStateKey(body.ResetToken), raw, redis.KeepTTL).Err(); err != nil {
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}

func PasswordResetComplete(ctx *gin.Context) (status int, err error) {
	var body types.PasswordResetCompleteBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	state, err := loadResetState(ctx, body.ResetToken)
	if err != nil {
		return http.StatusUnauthorized, err
	}
	if !state.OTPVerified {
		return http.StatusUnauthorized, errors.New("OTP has not been verified for this session.")
	}
	if body.Password != body.ConfirmPassword {
		return http.StatusBadRequest, errors.New("Passwords do not match.")
	}
	if err := utils.ValidatePasswordStrength(body.Password); err != nil {
		return http.StatusBadRequest, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	conn := db.GetDb()
	if err := conn.
		Model(&models.User{}).
		Where(&models.User{ID: state.UserID}).
		Update("password_hash", string(hash)).
		Error; err != nil {
		return http.StatusInternalServerError, err
	}

	rd := lib.GetRedisClient()
	if err := rd.Del(ctx, resetStateKey(body.ResetToken)).Err(); err != nil {
		log.Printf("Error clearing reset state: %s\n", err.Error())
	}
	return http.StatusOK, nil
}
