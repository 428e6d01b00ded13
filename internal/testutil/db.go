// Package testutil opens throwaway databases and seeds scheduling fixtures
// for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"rehab-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the scheduling schema.
// A single connection serializes transactions the way row locks do on Postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Center{},
		&entity.Practitioner{},
		&entity.Patient{},
		&entity.CenterPractitionerLink{},
		&entity.CenterPatientLink{},
		&entity.Prescription{},
		&entity.Appointment{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// NewLogger returns a logger that records entries instead of printing them
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// FixedClock returns a clock frozen at now
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func CreateCenter(t *testing.T, db *gorm.DB, name string) *entity.Center {
	t.Helper()
	center := &entity.Center{Name: name}
	mustCreate(t, db, center)
	return center
}

func CreatePractitioner(t *testing.T, db *gorm.DB, fullName, specialization string, active bool) *entity.Practitioner {
	t.Helper()
	practitioner := &entity.Practitioner{
		FullName:       fullName,
		Specialization: specialization,
		IsActive:       active,
	}
	mustCreate(t, db, practitioner)
	return practitioner
}

// SetPractitionerActive flips the flag of an existing practitioner
func SetPractitionerActive(t *testing.T, db *gorm.DB, practitioner *entity.Practitioner, active bool) {
	t.Helper()
	if err := db.Model(practitioner).Update("is_active", active).Error; err != nil {
		t.Fatalf("update practitioner: %v", err)
	}
	practitioner.IsActive = active
}

func CreatePatient(t *testing.T, db *gorm.DB, fullName string, assigned *uuid.UUID) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		FullName:               fullName,
		AssignedPractitionerID: assigned,
	}
	mustCreate(t, db, patient)
	return patient
}

func LinkPractitioner(t *testing.T, db *gorm.DB, center *entity.Center, practitioner *entity.Practitioner, active bool) *entity.CenterPractitionerLink {
	t.Helper()
	link := &entity.CenterPractitionerLink{
		CenterID:       center.ID,
		PractitionerID: practitioner.ID,
		IsActive:       active,
		LinkedAt:       time.Now().UTC(),
	}
	mustCreate(t, db, link)
	return link
}

func LinkPatient(t *testing.T, db *gorm.DB, center *entity.Center, patient *entity.Patient, active bool) *entity.CenterPatientLink {
	t.Helper()
	link := &entity.CenterPatientLink{
		CenterID:  center.ID,
		PatientID: patient.ID,
		IsActive:  active,
		LinkedAt:  time.Now().UTC(),
	}
	mustCreate(t, db, link)
	return link
}

func CreatePrescription(t *testing.T, db *gorm.DB, patient *entity.Patient, practitioner *entity.Practitioner, status entity.PrescriptionStatus, endDate time.Time) *entity.Prescription {
	t.Helper()
	prescription := &entity.Prescription{
		PatientID:      patient.ID,
		PractitionerID: practitioner.ID,
		StartDate:      endDate.AddDate(0, -1, 0).UTC(),
		EndDate:        endDate.UTC(),
		Status:         status,
	}
	mustCreate(t, db, prescription)
	return prescription
}

// CreateAppointment inserts an appointment directly, bypassing booking rules
func CreateAppointment(t *testing.T, db *gorm.DB, center *entity.Center, patient *entity.Patient, practitioner *entity.Practitioner, start, end time.Time, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		CenterID:       center.ID,
		PatientID:      patient.ID,
		PractitionerID: practitioner.ID,
		Title:          "Session",
		StartTime:      start,
		EndTime:        end,
		Type:           entity.AppointmentTypeInPerson,
		Status:         status,
	}
	mustCreate(t, db, appointment)
	return appointment
}
