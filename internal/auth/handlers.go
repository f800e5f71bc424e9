package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/TripleGChat/TG-Backend/internal/utils"
)

// Service wires the credential store and token secret behind the /api/auth
// dispatch handler.
type Service struct {
	Store    UserStore
	Secret   []byte
	Validity time.Duration
}

func NewService(store UserStore, secret []byte) *Service {
	return &Service{Store: store, Secret: secret, Validity: TokenValidity}
}

func (s *Service) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case "signup":
		s.handleSignup(w, req)
	case "login":
		s.handleLogin(w, req)
	case "verify":
		s.handleVerify(w, r)
	default:
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown action: %s", req.Action))
	}
}

func (s *Service) handleSignup(w http.ResponseWriter, req authRequest) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Email, username, and password are required")
		return
	}

	existing, err := s.Store.FindByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		utils.RespondError(w, http.StatusBadRequest, "User already exists")
		return
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.Store.Create(user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := GenerateToken(user, s.Secret, s.Validity)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{Success: true, User: user, Token: token})
}

func (s *Service) handleLogin(w http.ResponseWriter, req authRequest) {
	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	// Lookup is by username only. Unknown username and wrong password answer
	// identically so callers can't probe which usernames exist.
	user, err := s.Store.FindByUsername(req.Username)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil || !VerifyPassword(req.Password, user.PasswordHash) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := s.Store.TouchLastLogin(user.ID, time.Now()); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := GenerateToken(user, s.Secret, s.Validity)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{Success: true, User: user, Token: token})
}

func (s *Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		utils.RespondError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), s.Secret)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	// Re-fetch by the embedded id rather than trusting the claims; the user
	// may have been removed since the token was issued.
	user, err := s.Store.FindByID(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, authResponse{Success: true, User: user})
}

// UserIDFromToken lets middleware gate other endpoints on the same bearer
// tokens this service issues.
func (s *Service) UserIDFromToken(tokenString string) (uint, error) {
	claims, err := ParseToken(tokenString, s.Secret)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
