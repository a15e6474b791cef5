package specification

import "gorm.io/gorm"

// ByDate filters appointments by calendar date (YYYY-MM-DD)
type ByDate struct {
	Date string
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date)
}

// ByPatientName filters appointments by patient name, case-insensitive
type ByPatientName struct {
	Name string
}

func (s ByPatientName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(patient_name) = LOWER(?)", s.Name)
}

// ByStatus filters appointments by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
