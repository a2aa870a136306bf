package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/internal/ws"
	"go-rental-console/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrOperatorInactive   = errors.New("operator account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(operatorID uuid.UUID) error
}

type LoginResponse struct {
	Token        string                 `json:"token"`
	Operator     model.OperatorResponse `json:"operator"`
	Role         *model.Role            `json:"role"`
	Capabilities []string               `json:"capabilities"` // Flat capability codes for client-side gating
}

type TokenValidationResponse struct {
	Operator     model.OperatorResponse `json:"operator"`
	Role         *model.Role            `json:"role"`
	Capabilities []string               `json:"capabilities"`
}

type authService struct {
	operatorRepo repository.OperatorRepository
	wsHub        *ws.Hub
}

func NewAuthService(operatorRepo repository.OperatorRepository, hub *ws.Hub) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		wsHub:        hub,
	}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	operator, err := s.operatorRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !operator.IsActive {
		return nil, ErrOperatorInactive
	}

	if !operator.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	roleCode := ""
	if operator.Role != nil {
		roleCode = operator.Role.Code
	}

	// Single session: a fresh token version invalidates every other device.
	newTokenVersion := uuid.New().String()
	now := time.Now()
	operator.TokenVersion = newTokenVersion
	operator.LastSeenAt = &now

	if err := s.operatorRepo.Update(operator); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(operator.ID, operator.Username, operator.FullName, roleCode, operator.GetCapabilityCodes(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:        token,
		Operator:     operator.ToResponse(),
		Role:         operator.Role,
		Capabilities: operator.GetCapabilityCodes(),
	}, nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	operator, err := s.operatorRepo.FindByUsername(username)
	if err != nil {
		return ErrOperatorNotFound
	}

	if !operator.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := operator.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.operatorRepo.Update(operator)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	operator, err := s.operatorRepo.FindByID(claims.OperatorID)
	if err != nil {
		return nil, ErrOperatorNotFound
	}

	if !operator.IsActive {
		return nil, ErrOperatorInactive
	}

	// Strict session: token version must match the one issued last.
	if operator.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	// Inactivity cutoff; the heartbeat keeps live sessions fresh.
	if operator.LastSeenAt == nil || time.Since(*operator.LastSeenAt) > 5*time.Minute {
		return nil, ErrSessionTimeout
	}

	return &TokenValidationResponse{
		Operator:     operator.ToResponse(),
		Role:         operator.Role,
		Capabilities: operator.GetCapabilityCodes(),
	}, nil
}

func (s *authService) Heartbeat(operatorID uuid.UUID) error {
	if err := s.operatorRepo.UpdateLastSeen(operatorID); err != nil {
		return err
	}

	// Broadcast presence so other consoles see who is online.
	go func() {
		payload := map[string]interface{}{
			"type":         "operator_status_update",
			"operator_id":  operatorID.String(),
			"status":       "online",
			"last_seen_at": time.Now(),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return nil
}
