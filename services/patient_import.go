package services

import (
	"context"
	"fmt"
	"hospital_app_go/models"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PatientImportResult summarises a spreadsheet import
type PatientImportResult struct {
	TotalProcessed int
	SuccessCount   int
	SkippedCount   int
	Errors         []string
}

// Column order of the patient import sheet
const (
	importColName = iota
	importColCPF
	importColPhone
	importColEmail
)

// ImportPatients reads the first sheet of an .xlsx workbook with the columns
// name | cpf | phone | email (first row is the header) and registers each row.
// Rows without a name are skipped, as are rows whose cpf is already registered.
func (s *PatientService) ImportPatients(ctx context.Context, r io.Reader) (*PatientImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	result := &PatientImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.TotalProcessed++
		line := i + 1

		name := cell(row, importColName)
		if strings.TrimSpace(name) == "" {
			result.SkippedCount++
			continue
		}

		patient := &models.Patient{
			Name:  name,
			Phone: cell(row, importColPhone),
			Email: cell(row, importColEmail),
		}

		if raw := cell(row, importColCPF); strings.TrimSpace(raw) != "" {
			cpf, err := NormalizeCPF(raw)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
				continue
			}
			exists, err := s.CPFExists(ctx, cpf)
			if err != nil {
				return result, err
			}
			if exists {
				result.SkippedCount++
				continue
			}
			patient.CPF = &cpf
		}

		if err := s.CreatePatient(ctx, patient); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
