package controllers

import (
	"os"
	"strconv"
	"time"

	"github.com/ersultanb/carlink-backend/app/models"
	"github.com/ersultanb/carlink-backend/app/queries"
	"github.com/ersultanb/carlink-backend/pkg/database"
	"github.com/ersultanb/carlink-backend/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

func generateAccessToken(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"phone":     user.Phone,
		"user_role": user.Role,
	}
	if accessEnv := os.Getenv("ACCESS_TOKEN_MINUTES"); accessEnv != "" {
		if iv, err := strconv.Atoi(accessEnv); err == nil && iv > 0 {
			claims["exp"] = time.Now().Add(time.Duration(iv) * time.Minute).Unix()
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Register(c *fiber.Ctx) error {
	payload := &models.Register{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	role := payload.Role
	if role == "" {
		role = utils.RoleCustomer
	}
	if !utils.IsValidRole(role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user role",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         payload.Name,
		Phone:        payload.Phone,
		City:         payload.City,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := userQueries.CreateUser(user); err != nil {
		if err == queries.ErrConflictPhone {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists with this phone"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	tokenString, err := generateAccessToken(*user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"role":  user.Role,
		"token": tokenString,
	})
}

func Login(c *fiber.Ctx) error {
	payload := &models.Login{}
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	user, err := userQueries.GetUserByPhone(payload.Phone)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"role":  user.Role,
		"token": tokenString,
	})
}
