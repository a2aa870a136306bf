package service

import (
	"errors"
	"fmt"
	"time"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrLastOwner      = errors.New("cannot delete the last owner account")
	ErrUnknownRole    = errors.New("unknown role code")
)

type CreateOperatorRequest struct {
	Username     string   `json:"username" validate:"required,min=3"`
	Password     string   `json:"password" validate:"required,min=6"`
	FullName     string   `json:"full_name" validate:"required"`
	RoleCode     string   `json:"role_code"`
	Capabilities []string `json:"capabilities"`
}

type UpdateOperatorRequest struct {
	FullName     string   `json:"full_name"`
	RoleCode     string   `json:"role_code"`
	Capabilities []string `json:"capabilities"`
	Password     string   `json:"password"` // Optional: set only when non-empty
	IsActive     *bool    `json:"is_active"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	Password string `json:"password"` // Optional
}

type OperatorService interface {
	GetAll() ([]model.OperatorResponse, error)
	GetByID(id uuid.UUID) (*model.OperatorResponse, error)
	Create(req *CreateOperatorRequest, createdBy string) (*model.OperatorResponse, error)
	Update(id uuid.UUID, req *UpdateOperatorRequest, updatedBy string) (*model.OperatorResponse, error)
	Delete(id uuid.UUID) error
	UpdateProfile(id uuid.UUID, req *UpdateProfileRequest) (*model.OperatorResponse, error)
	UpdateCapabilities(id uuid.UUID, codes []string) error
	DailyReport() ([]model.DailyReportEntry, error)
}

type operatorService struct {
	operatorRepo   repository.OperatorRepository
	capabilityRepo repository.CapabilityRepository
	roleRepo       repository.RoleRepository
}

func NewOperatorService(operatorRepo repository.OperatorRepository, capabilityRepo repository.CapabilityRepository, roleRepo repository.RoleRepository) OperatorService {
	return &operatorService{
		operatorRepo:   operatorRepo,
		capabilityRepo: capabilityRepo,
		roleRepo:       roleRepo,
	}
}

func (s *operatorService) GetAll() ([]model.OperatorResponse, error) {
	operators, err := s.operatorRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.OperatorResponse, len(operators))
	for i, op := range operators {
		responses[i] = op.ToResponse()
	}
	return responses, nil
}

func (s *operatorService) GetByID(id uuid.UUID) (*model.OperatorResponse, error) {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		return nil, ErrOperatorNotFound
	}
	response := operator.ToResponse()
	return &response, nil
}

func (s *operatorService) Create(req *CreateOperatorRequest, createdBy string) (*model.OperatorResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if existing, _ := s.operatorRepo.FindByUsername(req.Username); existing != nil {
		return nil, ErrUsernameExists
	}

	roleCode := req.RoleCode
	if roleCode == "" {
		roleCode = model.RoleStaff
	}
	role, err := s.roleRepo.FindByCode(roleCode)
	if err != nil {
		return nil, ErrUnknownRole
	}

	capabilities, err := s.capabilityRepo.FindByCodes(req.Capabilities)
	if err != nil {
		return nil, err
	}

	operator := &model.Operator{
		Username:     req.Username,
		FullName:     req.FullName,
		RoleID:       &role.ID,
		IsActive:     true,
		Capabilities: capabilities,
	}
	operator.CreatedBy = createdBy
	operator.UpdatedBy = createdBy

	if err := operator.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.operatorRepo.Create(operator); err != nil {
		return nil, err
	}

	response := operator.ToResponse()
	return &response, nil
}

func (s *operatorService) Update(id uuid.UUID, req *UpdateOperatorRequest, updatedBy string) (*model.OperatorResponse, error) {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		return nil, ErrOperatorNotFound
	}

	if req.FullName != "" {
		operator.FullName = req.FullName
	}
	if req.RoleCode != "" {
		role, err := s.roleRepo.FindByCode(req.RoleCode)
		if err != nil {
			return nil, ErrUnknownRole
		}
		operator.RoleID = &role.ID
		operator.Role = role
	}
	if req.Password != "" {
		if err := operator.SetPassword(req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}
	if req.IsActive != nil {
		operator.IsActive = *req.IsActive
	}
	operator.UpdatedBy = updatedBy

	if err := s.operatorRepo.Update(operator); err != nil {
		return nil, err
	}

	if req.Capabilities != nil {
		if err := s.UpdateCapabilities(id, req.Capabilities); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

func (s *operatorService) Delete(id uuid.UUID) error {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		return ErrOperatorNotFound
	}

	// The last owner account can never be removed.
	if operator.Role != nil && operator.Role.Code == model.RoleOwner {
		owners, err := s.operatorRepo.CountByRoleCode(model.RoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	return s.operatorRepo.Delete(id)
}

func (s *operatorService) UpdateProfile(id uuid.UUID, req *UpdateProfileRequest) (*model.OperatorResponse, error) {
	operator, err := s.operatorRepo.FindByID(id)
	if err != nil {
		return nil, ErrOperatorNotFound
	}

	if req.FullName != "" {
		operator.FullName = req.FullName
	}
	operator.Bio = req.Bio
	if req.Password != "" {
		if err := operator.SetPassword(req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.operatorRepo.Update(operator); err != nil {
		return nil, err
	}

	response := operator.ToResponse()
	return &response, nil
}

func (s *operatorService) UpdateCapabilities(id uuid.UUID, codes []string) error {
	capabilities, err := s.capabilityRepo.FindByCodes(codes)
	if err != nil {
		return err
	}
	return s.operatorRepo.UpdateCapabilities(id, capabilities)
}

func (s *operatorService) DailyReport() ([]model.DailyReportEntry, error) {
	today := time.Now().Format("2006-01-02")
	return s.operatorRepo.DailyReport(today)
}
