package middleware

import (
	"strings"

	"wallet-service/src/pkg/token"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type jwtClaims struct {
	Metadata token.Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

// VerifyBearer validates the bearer token and stores the caller's
// identity in the request context. The core never reads ambient auth
// state: controllers pass the id on explicitly.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := []byte(config.GetString("jwt.secret"))

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(utils.BaseResponse{
				Success: false,
				Message: "missing bearer token",
				Code:    fiber.StatusUnauthorized,
			})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := new(jwtClaims)
		parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(utils.BaseResponse{
				Success: false,
				Message: "invalid bearer token",
				Code:    fiber.StatusUnauthorized,
			})
		}

		ctx.Locals("auth", &claims.Metadata)
		return ctx.Next()
	}
}

// VerifyAdmin gates the moderation routes.
func VerifyAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := GetUser(ctx)
		if auth == nil || auth.Role != "admin" {
			return ctx.Status(fiber.StatusForbidden).JSON(utils.BaseResponse{
				Success: false,
				Message: "admin role required",
				Code:    fiber.StatusForbidden,
			})
		}
		return ctx.Next()
	}
}

func GetUser(ctx *fiber.Ctx) *token.Metadata {
	auth, ok := ctx.Locals("auth").(*token.Metadata)
	if !ok {
		return nil
	}
	return auth
}
