// Package utility - CreateToken tạo JWT token cho user.
package utility

import (
	"github.com/dgrijalva/jwt-go"

	models "meta_learning/internal/api/auth/models"
)

// CreateToken tạo JWT token (HS256) chứa userID, time và randomNumber.
// Trả về map với key "token" chứa chuỗi token đã ký.
func CreateToken(secretKey string, userID string, time string, randomNumber string) (map[string]string, error) {
	claims := &models.JwtToken{
		UserID:       userID,
		Time:         time,
		RandomNumber: randomNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, err
	}

	return map[string]string{"token": t}, nil
}
