// Package seed loads the reference directory: specialties, cities and the
// demo doctors. Running it twice changes nothing.
package seed

import (
	"context"
	"fmt"

	"beedical/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorSeed struct {
	ID        uuid.UUID
	Name      string
	Address   string
	Specialty string
	City      string
	Fee       decimal.Decimal
}

var specialties = []string{
	"Cardiologie",
	"Pédiatrie",
	"Neurologie",
	"ORL",
	"Dermatologie",
	"Dentisterie",
	"Ophtalmologie",
	"Gynécologie",
	"Psychologie",
	"Médecine générale",
}

var cities = []entity.City{
	{Name: "Casablanca", Region: "Casablanca-Settat"},
	{Name: "Rabat", Region: "Rabat-Salé-Kénitra"},
	{Name: "Marrakech", Region: "Marrakech-Safi"},
	{Name: "Fès", Region: "Fès-Meknès"},
	{Name: "Tanger", Region: "Tanger-Tétouan-Al Hoceïma"},
}

// Doctor ids are fixed so the availability dataset can reference them
var doctors = []doctorSeed{
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000001"), Name: "Dr. Ahmed Ali", Address: "123 Avenue Hassan II", Specialty: "Cardiologie", City: "Casablanca", Fee: decimal.NewFromInt(400)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000002"), Name: "Dr. Karim Bennani", Address: "45 Rue Mohammed V", Specialty: "Pédiatrie", City: "Rabat", Fee: decimal.NewFromInt(250)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000003"), Name: "Dr. Fatima Zahra", Address: "78 Avenue Allal Ben Abdellah", Specialty: "Neurologie", City: "Marrakech", Fee: decimal.NewFromInt(450)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000004"), Name: "Dr. Amine Saidi", Address: "12 Boulevard Zerktouni", Specialty: "ORL", City: "Fès", Fee: decimal.NewFromInt(300)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000005"), Name: "Dr. Leila El Mansouri", Address: "56 Rue Ibn Batouta", Specialty: "Dermatologie", City: "Tanger", Fee: decimal.NewFromInt(350)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000006"), Name: "Dr. Youssef Hachimi", Address: "34 Avenue Mohammed VI", Specialty: "Dentisterie", City: "Casablanca", Fee: decimal.NewFromInt(300)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000007"), Name: "Dr. Nadia Boussaid", Address: "90 Rue Abou Bakr Seddik", Specialty: "Ophtalmologie", City: "Rabat", Fee: decimal.NewFromInt(350)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000008"), Name: "Dr. Mehdi Touzani", Address: "23 Boulevard Anfa", Specialty: "Gynécologie", City: "Marrakech", Fee: decimal.NewFromInt(400)},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-000000000009"), Name: "Dr. Hajar Idrissi", Address: "67 Avenue Hassan II", Specialty: "Psychologie", City: "Fès", Fee: decimal.RequireFromString("450.50")},
	{ID: uuid.MustParse("d0c70000-0000-4000-8000-00000000000a"), Name: "Dr. Mohamed Fadili", Address: "45 Rue Ibn Sina", Specialty: "Médecine générale", City: "Tanger", Fee: decimal.NewFromInt(200)},
}

type Seeder struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewSeeder(db *gorm.DB, log *logrus.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

// Run inserts the reference rows in one transaction, skipping those that
// already exist
func (s *Seeder) Run(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		specialtyIDs, err := s.seedSpecialties(tx)
		if err != nil {
			return err
		}
		cityIDs, err := s.seedCities(tx)
		if err != nil {
			return err
		}
		return s.seedDoctors(tx, specialtyIDs, cityIDs)
	})
}

func (s *Seeder) seedSpecialties(tx *gorm.DB) (map[string]uuid.UUID, error) {
	rows := make([]entity.Specialty, len(specialties))
	for i, name := range specialties {
		rows[i] = entity.Specialty{Name: name}
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("seed specialties: %w", err)
	}

	var stored []entity.Specialty
	if err := tx.Where("name IN ?", specialties).Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	ids := make(map[string]uuid.UUID, len(stored))
	for _, sp := range stored {
		ids[sp.Name] = sp.ID
	}
	s.log.Infof("Specialties seeded: %d", len(ids))
	return ids, nil
}

func (s *Seeder) seedCities(tx *gorm.DB) (map[string]uuid.UUID, error) {
	rows := make([]entity.City, len(cities))
	names := make([]string, len(cities))
	copy(rows, cities)
	for i, c := range cities {
		names[i] = c.Name
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("seed cities: %w", err)
	}

	var stored []entity.City
	if err := tx.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	ids := make(map[string]uuid.UUID, len(stored))
	for _, c := range stored {
		ids[c.Name] = c.ID
	}
	s.log.Infof("Cities seeded: %d", len(ids))
	return ids, nil
}

func (s *Seeder) seedDoctors(tx *gorm.DB, specialtyIDs, cityIDs map[string]uuid.UUID) error {
	rows := make([]entity.Doctor, 0, len(doctors))
	for _, d := range doctors {
		specialtyID, ok := specialtyIDs[d.Specialty]
		if !ok {
			s.log.Warnf("Missing specialty %q for %s, skipped", d.Specialty, d.Name)
			continue
		}
		cityID, ok := cityIDs[d.City]
		if !ok {
			s.log.Warnf("Missing city %q for %s, skipped", d.City, d.Name)
			continue
		}
		address := d.Address
		rows = append(rows, entity.Doctor{
			ID:              d.ID,
			Name:            d.Name,
			Address:         &address,
			SpecialtyID:     specialtyID,
			CityID:          cityID,
			ConsultationFee: d.Fee,
		})
	}

	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	s.log.Infof("Doctors seeded: %d", len(rows))
	return nil
}
