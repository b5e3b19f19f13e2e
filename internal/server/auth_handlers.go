package server

import (
	"log/slog"
	"strconv"
	"time"

	"feedline/internal/models"
	"feedline/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new account registration
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed",
				[]validation.FieldError{{Field: "body", Message: "Invalid request body"}}))
	}

	fieldErrs := validation.Signup(req.Email, req.Password, req.Name)

	// Uniqueness is reported alongside the field errors, matching the
	// shape clients get for a malformed email or short password.
	existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if existing != nil {
		fieldErrs = append(fieldErrs,
			validation.FieldError{Field: "email", Message: "Email already exists!"})
	}

	if len(fieldErrs) > 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed", fieldErrs))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Status:   models.DefaultStatus,
	}

	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		// A concurrent signup can still lose the uniqueness race at the DB;
		// the repo maps that to the same validation error.
		return models.RespondWithError(c, err)
	}

	slog.InfoContext(c.UserContext(), "user signed up", "user_id", user.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created!",
		"userId":  user.ID,
	})
}

// Login verifies credentials and issues a signed token
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("A user with this email could not be found!"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("A user with this email could not be found!"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Wrong password"))
	}

	token, err := s.generateToken(user.ID, user.Email)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	slog.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token":  token,
		"userId": strconv.FormatUint(uint64(user.ID), 10),
	})
}

func (s *Server) generateToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": strconv.FormatUint(uint64(userID), 10),
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
