package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinova/clinica-api/internal/application/dto"
	"github.com/clinova/clinica-api/internal/domain"
	"github.com/clinova/clinica-api/internal/domain/entity"
	"github.com/clinova/clinica-api/internal/domain/repository"
	"github.com/clinova/clinica-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login de profesionales.
type AuthUseCase struct {
	clinicianRepo repository.ClinicianRepository
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(clinicianRepo repository.ClinicianRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{clinicianRepo: clinicianRepo, jwtCfg: jwtCfg}
}

// Register crea un profesional: hashea password con bcrypt y persiste.
// Devuelve ErrDuplicate si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.ClinicianResponse, error) {
	existing, _ := uc.clinicianRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClinician
	}
	now := time.Now()
	clinician := &entity.Clinician{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clinicianRepo.Create(clinician); err != nil {
		return nil, err
	}
	return toClinicianResponse(clinician), nil
}

// Login verifica email/password, genera JWT y retorna token + profesional.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	clinician, err := uc.clinicianRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if clinician == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(clinician.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, clinician.ID, clinician.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Clinician: *toClinicianResponse(clinician),
	}, nil
}

func toClinicianResponse(c *entity.Clinician) *dto.ClinicianResponse {
	return &dto.ClinicianResponse{
		ID:        c.ID,
		Email:     c.Email,
		FullName:  c.FullName,
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
	}
}
