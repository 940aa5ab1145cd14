package repository

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	memoryRepo "medibook/database/repository/memory"
	patientRepo "medibook/database/repository/patient"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the DoctorRepository interface and constructor.
type DoctorRepository = doctorRepo.DoctorRepository

var NewMongoDoctorRepo = doctorRepo.NewMongoDoctorRepo

// Re-export the PatientRepository interface and constructor.
type PatientRepository = patientRepo.PatientRepository

var NewMongoPatientRepo = patientRepo.NewMongoPatientRepo

// Re-export the AppointmentRepository interface and constructor.
type AppointmentRepository = appointmentRepo.AppointmentRepository

var NewMongoAppointmentRepo = appointmentRepo.NewMongoAppointmentRepo

// Repositories bundles the three stores the services depend on.
type Repositories struct {
	Doctors      DoctorRepository
	Patients     PatientRepository
	Appointments AppointmentRepository
}

// NewMongoRepositories wires the MongoDB implementations against db.
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Doctors:      NewMongoDoctorRepo(db),
		Patients:     NewMongoPatientRepo(db),
		Appointments: NewMongoAppointmentRepo(db),
	}
}

// NewMemoryRepositories wires in-process repositories sharing one store.
func NewMemoryRepositories() Repositories {
	store := memoryRepo.NewStore()
	return Repositories{
		Doctors:      store.Doctors(),
		Patients:     store.Patients(),
		Appointments: store.Appointments(),
	}
}

// EnsureMongoIndexes creates every collection index, including the partial
// unique index guarding active doctor slots.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if err := doctorRepo.NewMongoDoctorRepo(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := patientRepo.NewMongoPatientRepo(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return appointmentRepo.NewMongoAppointmentRepo(db).EnsureIndexes(ctx)
}
