package services

import (
	"context"
	"errors"
	"fmt"
	"hospital_app_go/models"
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	ErrPatientNameRequired = errors.New("patient name is required")
	ErrInvalidCPF          = errors.New("cpf must have 11 digits")
)

// PatientService is the patient store backing the reception screens
type PatientService struct {
	db     *gorm.DB
	policy *bluemonday.Policy
}

// NewPatientService creates a patient store on top of db
func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{
		db:     db,
		policy: bluemonday.StrictPolicy(),
	}
}

// ListPatients returns every patient in registration order
func (s *PatientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// CreatePatient validates and stores a new patient
func (s *PatientService) CreatePatient(ctx context.Context, patient *models.Patient) error {
	patient.Name = s.cleanText(patient.Name)
	patient.Phone = s.cleanText(patient.Phone)
	patient.Email = strings.ToLower(s.cleanText(patient.Email))

	if patient.Name == "" {
		return ErrPatientNameRequired
	}

	if patient.CPF != nil {
		cpf, err := NormalizeCPF(*patient.CPF)
		if err != nil {
			return err
		}
		if cpf == "" {
			patient.CPF = nil
		} else {
			patient.CPF = &cpf
		}
	}

	if err := s.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// CPFExists reports whether a patient with the given normalised cpf is registered
func (s *PatientService) CPFExists(ctx context.Context, cpf string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Patient{}).Where("cpf = ?", cpf).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cpf: %w", err)
	}
	return count > 0, nil
}

// cleanText strips markup and surrounding whitespace from a plain-text field
func (s *PatientService) cleanText(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

// NormalizeCPF keeps only digits. An empty input stays empty; anything else must have 11 digits.
func NormalizeCPF(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cpf := b.String()
	if cpf == "" && strings.TrimSpace(raw) == "" {
		return "", nil
	}
	if len(cpf) != 11 {
		return "", ErrInvalidCPF
	}
	return cpf, nil
}
