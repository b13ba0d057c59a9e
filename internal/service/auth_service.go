package service

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"parkhive/internal/db"
	"parkhive/internal/entities"
	apperrors "parkhive/internal/errors"
	"parkhive/internal/repository"
	"parkhive/internal/utils"
)

// AuthService is the simulated sign-in shell. Accounts live in memory only
// and nothing talks to an identity provider; the session token exists so the
// shell has something to hold and expire, not to protect anything.
type AuthService interface {
	Register(req entities.RegisterRequest) error
	Login(employeeID, password string) (*entities.SessionResponse, error)
	Logout()
	VerifySession(token string) (string, error)
	Profile() (*entities.ProfileResponse, error)
	UpdateProfile(req entities.UpdateProfileRequest) (*entities.ProfileResponse, error)
	CurrentUserID() (string, bool)
}

type authService struct {
	repo   *repository.SlotRepository
	seed   func(at time.Time) []db.ParkingSlot
	secret []byte
	ttl    time.Duration
	log    *logrus.Logger

	mu       sync.Mutex
	accounts map[string]db.Account
	profile  *db.UserProfile
	session  *db.Session
}

// NewAuthService builds the auth shell. seed regenerates the slot inventory
// on logout, since the garage state lives and dies with the session. A demo
// account is registered up front so the stock app is usable immediately.
func NewAuthService(
	repo *repository.SlotRepository,
	seed func(at time.Time) []db.ParkingSlot,
	demoEmployeeID, demoPassword string,
	ttl time.Duration,
	log *logrus.Logger,
) (AuthService, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Local demo app; sessions are simulated, so a fixed dev secret
		// beats failing startup over a missing env var.
		secret = "parkhive-dev-secret"
	}

	s := &authService{
		repo:     repo,
		seed:     seed,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		accounts: make(map[string]db.Account),
	}

	if demoEmployeeID != "" {
		if err := s.Register(entities.RegisterRequest{
			EmployeeID: demoEmployeeID,
			Password:   demoPassword,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed demo account: %w", err)
		}
	}
	return s, nil
}

// Register creates a local account. Profile fields are optional at signup;
// whatever validates is stored and surfaced after login.
func (s *authService) Register(req entities.RegisterRequest) error {
	employeeID, err := utils.NormalizeEmployeeID(req.EmployeeID)
	if err != nil {
		return err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[employeeID]; exists {
		return apperrors.ErrAccountExists
	}
	s.accounts[employeeID] = db.Account{
		EmployeeID:   employeeID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	s.log.WithField("employee_id", employeeID).Info("Account registered")
	return nil
}

// Login checks the credential and opens a session. The profile starts with
// only the customer id; name, email and phone arrive via profile update.
func (s *authService) Login(employeeID, password string) (*entities.SessionResponse, error) {
	normalized, err := utils.NormalizeEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[normalized]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &db.Session{
		ID:         uuid.New().String(),
		CustomerID: normalized,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.ttl),
	}

	claims := jwt.MapClaims{
		"customer_id": session.CustomerID,
		"session_id":  session.ID,
		"exp":         session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.session = session
	s.profile = &db.UserProfile{CustomerID: normalized}
	s.log.WithField("customer_id", normalized).Info("Login successful")

	return &entities.SessionResponse{
		Token:      token,
		SessionID:  session.ID,
		CustomerID: session.CustomerID,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// Logout closes the session, clears the profile and re-seeds the slot store.
func (s *authService) Logout() {
	s.mu.Lock()
	s.session = nil
	s.profile = nil
	s.mu.Unlock()

	s.repo.Reset(s.seed(time.Now().UTC()))
	s.log.Info("Logged out, store re-initialized")
}

// VerifySession parses and validates a session token, returning the
// customer id it was issued for.
func (s *authService) VerifySession(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperrors.ErrSessionExpired
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.ErrSessionExpired
	}
	customerID, _ := claims["customer_id"].(string)
	if customerID == "" {
		return "", apperrors.ErrSessionExpired
	}
	return customerID, nil
}

// Profile returns the signed-in employee's profile.
func (s *authService) Profile() (*entities.ProfileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, apperrors.ErrNotLoggedIn
	}
	return &entities.ProfileResponse{
		CustomerID: s.profile.CustomerID,
		Name:       s.profile.Name,
		Email:      s.profile.Email,
		Phone:      s.profile.Phone,
	}, nil
}

// UpdateProfile validates and applies the provided fields, leaving nil
// fields untouched.
func (s *authService) UpdateProfile(req entities.UpdateProfileRequest) (*entities.ProfileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil, apperrors.ErrNotLoggedIn
	}

	if req.Name != nil {
		name, err := utils.NormalizeFullName(*req.Name)
		if err != nil {
			return nil, err
		}
		s.profile.Name = name
	}
	if req.Email != nil {
		email, err := utils.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		s.profile.Email = email
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		s.profile.Phone = phone
	}

	return &entities.ProfileResponse{
		CustomerID: s.profile.CustomerID,
		Name:       s.profile.Name,
		Email:      s.profile.Email,
		Phone:      s.profile.Phone,
	}, nil
}

// CurrentUserID returns the signed-in customer id, if any.
func (s *authService) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", false
	}
	return s.session.CustomerID, true
}
