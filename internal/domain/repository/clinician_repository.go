package repository

import "github.com/clinova/clinica-api/internal/domain/entity"

// ClinicianRepository define el puerto de persistencia de profesionales (usuarios).
type ClinicianRepository interface {
	Create(clinician *entity.Clinician) error
	GetByID(id string) (*entity.Clinician, error)
	GetByEmail(email string) (*entity.Clinician, error)
}
