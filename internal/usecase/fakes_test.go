package usecase

import (
	"context"
	"io"
	"strconv"
	"sync"
	"testing"
	"time"

	"beedical/internal/availability"
	"beedical/internal/delivery/http/middleware"
	"beedical/internal/domain/entity"
	"beedical/internal/infrastructure/cache"
	"beedical/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func asCaller(subject string) context.Context {
	return middleware.WithIdentity(context.Background(), middleware.Identity{
		Subject:   subject,
		Email:     subject + "@example.ma",
		Name:      "Amine El Idrissi",
		Role:      entity.RolePatient,
		TokenID:   "tok-" + subject,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

type fakeUserRepo struct {
	users     map[string]*entity.User
	createErr error
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ExternalID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ExternalID] = user
	return nil
}

func (r *fakeUserRepo) FindByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*entity.User, error) {
	return r.users[externalID], nil
}

type fakeProfileRepo struct {
	profiles []*entity.Profile
	updated  int
	locks    int
}

func (r *fakeProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.profiles = append(r.profiles, profile)
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	r.updated++
	for i, p := range r.profiles {
		if p.ID == profile.ID {
			r.profiles[i] = profile
		}
	}
	return nil
}

func (r *fakeProfileRepo) UpdateDetails(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	r.updated++
	for _, p := range r.profiles {
		if p.ID == profile.ID {
			p.FirstName, p.LastName, p.Sex, p.BirthDate = profile.FirstName, profile.LastName, profile.Sex, profile.BirthDate
			p.BirthPlace, p.Phone, p.Address = profile.BirthPlace, profile.Phone, profile.Address
			p.PostalCode, p.City = profile.PostalCode, profile.City
		}
	}
	return nil
}

func (r *fakeProfileRepo) LockByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	r.locks++
	for _, p := range r.profiles {
		if p.ID == id {
			locked := *p
			return &locked, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) FindByCIN(ctx context.Context, db *gorm.DB, cin string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.CIN != nil && *p.CIN == cin {
			return p, nil
		}
	}
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.Doctor
	locks   int
}

func newFakeDoctorRepo(doctors ...*entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: map[uuid.UUID]*entity.Doctor{}}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.doctors[id], nil
}

func (r *fakeDoctorRepo) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	r.locks++
	return r.doctors[id], nil
}

func (r *fakeDoctorRepo) Search(db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	var result []entity.Doctor
	for _, d := range r.doctors {
		result = append(result, *d)
	}
	return result, nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*entity.Appointment
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment.ID = uuid.New()
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByProfileID(db *gorm.DB, profileID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.ProfileID == profileID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []entity.Appointment{}
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && !a.IsCancelled() && availability.SameDay(a.Date, date) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ID == id {
			a.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAppointmentRepo) FindConfirmedSlots(db *gorm.DB) ([]entity.ConfirmedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var slots []entity.ConfirmedSlot
	for _, a := range r.appointments {
		if a.IsConfirmed() {
			slots = append(slots, entity.ConfirmedSlot{DoctorID: a.DoctorID, Date: a.Date, StartTime: a.StartTime, EndTime: a.EndTime})
		}
	}
	return slots, nil
}

type fakeAvailabilityRepo struct {
	hours map[uuid.UUID]*entity.DoctorAvailability
}

func (r *fakeAvailabilityRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorAvailability, error) {
	return r.hours[doctorID], nil
}

type fakeDependentRepo struct {
	dependents []*entity.Dependent
}

func (r *fakeDependentRepo) Create(db *gorm.DB, dependent *entity.Dependent) error {
	dependent.ID = uuid.New()
	r.dependents = append(r.dependents, dependent)
	return nil
}

func (r *fakeDependentRepo) FindByProfileID(db *gorm.DB, profileID uuid.UUID) (*entity.Dependent, error) {
	for _, d := range r.dependents {
		if d.ProfileID == profileID {
			return d, nil
		}
	}
	return nil, nil
}

type fakeGrantRepo struct {
	grants    []*entity.ManagementGrant
	createErr error
}

func (r *fakeGrantRepo) Create(db *gorm.DB, grant *entity.ManagementGrant) error {
	if r.createErr != nil {
		return r.createErr
	}
	grant.ID = uuid.New()
	r.grants = append(r.grants, grant)
	return nil
}

func (r *fakeGrantRepo) FindByManagerAndDependent(db *gorm.DB, managerID, dependentID uuid.UUID) (*entity.ManagementGrant, error) {
	for _, g := range r.grants {
		if g.ManagerID == managerID && g.DependentID == dependentID {
			return g, nil
		}
	}
	return nil, nil
}

func (r *fakeGrantRepo) FindByManagerID(db *gorm.DB, managerID uuid.UUID) ([]entity.ManagementGrant, error) {
	result := []entity.ManagementGrant{}
	for _, g := range r.grants {
		if g.ManagerID == managerID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (r *fakeGrantRepo) Delete(db *gorm.DB, managerID, dependentID uuid.UUID) (int64, error) {
	for i, g := range r.grants {
		if g.ManagerID == managerID && g.DependentID == dependentID {
			r.grants = append(r.grants[:i], r.grants[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakePreferenceRepo struct {
	prefs map[uuid.UUID]*entity.AccountPreference
}

func (r *fakePreferenceRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AccountPreference, error) {
	return r.prefs[userID], nil
}

func (r *fakePreferenceRepo) Upsert(db *gorm.DB, pref *entity.AccountPreference) error {
	r.prefs[pref.UserID] = pref
	return nil
}

type fakeAuditLogRepo struct {
	logs  []entity.AuditLog
	limit int
}

func (r *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	r.limit = limit
	var result []entity.AuditLog
	for _, l := range r.logs {
		if l.UserID != nil && *l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

// fakeAuditService records actions only
type fakeAuditService struct {
	actions []string
	err     error
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return s.err
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return s.err
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	s.actions = append(s.actions, action)
	return s.err
}

type fakeNotifier struct {
	confirmations []service.AppointmentConfirmation
	codes         map[string]string
	err           error
}

func (n *fakeNotifier) SendAppointmentConfirmation(ctx context.Context, msg service.AppointmentConfirmation) error {
	n.confirmations = append(n.confirmations, msg)
	return n.err
}

func (n *fakeNotifier) SendVerificationCode(ctx context.Context, to, code string) error {
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[to] = code
	return n.err
}

type fakeDenyList struct {
	revoked map[string]time.Time
	err     error
}

func (d *fakeDenyList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *fakeDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, d.err
}

// kvStore is an in-memory cache.KVStore
type kvStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newKVStore() *kvStore {
	return &kvStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *kvStore) SetMany(ctx context.Context, values map[string]string, ttl time.Duration) error {
	for k, v := range values {
		if err := s.Set(ctx, k, v, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return s.err
}

func (s *kvStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok, s.err
}

func (s *kvStore) CompareAndDelete(ctx context.Context, key, expected string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if v, ok := s.values[key]; ok && v == expected {
		delete(s.values, key)
		return true, nil
	}
	return false, nil
}

func (s *kvStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	n, _ := strconv.ParseInt(s.values[key], 10, 64)
	n++
	s.values[key] = strconv.FormatInt(n, 10)
	s.ttls[key] = ttl
	return n, nil
}
