package usecase

import (
	"context"
	"fmt"
	"time"

	"beedical/internal/availability"
	"beedical/internal/converter"
	"beedical/internal/delivery/dto"
	"beedical/internal/domain/entity"
	"beedical/internal/domain/repository"
	"beedical/internal/service"
	"beedical/pkg/apperror"
	"beedical/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = apperror.NotFound("doctor not found")
	ErrAppointmentNotFound = apperror.NotFound("appointment not found")
	ErrAvailabilityMissing = apperror.NotFound("no availability data for this doctor")
	ErrInvalidDoctorID     = apperror.InvalidInput("invalid doctor id")
	ErrInvalidStatus       = apperror.InvalidInput("invalid status, accepted values are: En attente, Confirmé, Annulé")
	ErrInvalidTimeRange    = apperror.InvalidInput("start time must be before end time")
	ErrSlotTaken           = apperror.Conflict("the doctor already has an appointment in this time range")
)

const notificationTimeout = 10 * time.Second

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	ListConfirmedByDoctor(ctx context.Context) (dto.ConfirmedByDoctorResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
	notifier         service.Notifier
	cache            *service.ReferenceCache
	metrics          *metrics.Metrics
	conflictCheck    bool
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
	notifier service.Notifier,
	cache *service.ReferenceCache,
	m *metrics.Metrics,
	conflictCheck bool,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
		notifier:         notifier,
		cache:            cache,
		metrics:          m,
		conflictCheck:    conflictCheck,
	}
}

// CreateAppointment books a slot for the caller's own profile.
//
// Flow:
//  1. Resolve caller and parse the command
//  2. Ensure the caller has a profile (a default one is created otherwise)
//  3. Check the doctor exists; with conflict checking on, lock the doctor row
//     and reject overlaps with the doctor's active bookings that day
//  4. Insert in status "En attente" and audit
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	user, err := currentUser(ctx, u.db.WithContext(ctx), u.userRepo)
	if err != nil {
		return nil, err
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidDoctorID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	window, err := availability.ParseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if window.Start >= window.End {
		return nil, ErrInvalidTimeRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.ensureProfile(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	var doctor *entity.Doctor
	if u.conflictCheck {
		doctor, err = u.doctorRepo.LockByID(tx, doctorID)
	} else {
		doctor, err = u.doctorRepo.FindByID(tx, doctorID)
	}
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if u.conflictCheck {
		existing, err := u.appointmentRepo.FindActiveByDoctorAndDate(tx, doctorID, date)
		if err != nil {
			u.log.Warnf("Failed to load bookings of doctor %s: %+v", doctorID, err)
			return nil, err
		}
		taken, err := availability.Conflicts(window, date, toBookings(existing))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
	}

	appointment := &entity.Appointment{
		ProfileID: profile.ID,
		DoctorID:  doctorID,
		Date:      date,
		StartTime: window.Start.String(),
		EndTime:   window.End.String(),
		Status:    entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "fk_appointments_doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		u.log.Warnf("Failed to audit appointment %s: %+v", appointment.ID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit appointment: %+v", err)
		return nil, err
	}

	u.metrics.RecordAppointmentCreated()
	u.log.Infof("Appointment created: id=%s, doctor=%s, slot=%s", appointment.ID, doctorID, slotLabel(date, appointment.StartTime, appointment.EndTime))

	// Reload with doctor display data for the response
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// ListMyAppointments returns the caller's appointments by date then start time
func (u *appointmentUsecase) ListMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := currentUser(ctx, db, u.userRepo)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.FindByUserID(ctx, db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find profile of user %s: %+v", user.ID, err)
		return nil, err
	}
	if profile == nil {
		return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, nil
	}

	appointments, err := u.appointmentRepo.FindByProfileID(db, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of profile %s: %+v", profile.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateAppointmentStatus moves an appointment to any of the three states.
// Confirming sends a best-effort mail to the patient.
func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status, ok := entity.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	previous := appointment.Status

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, status)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentNotFound
	}

	actor := actorID(ctx, u.db.WithContext(ctx), u.userRepo)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentStatus, "appointment", appointmentID.String(), string(previous), string(status)); err != nil {
		u.log.Warnf("Failed to audit status change of %s: %+v", appointmentID, err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit status change: %+v", err)
		return nil, err
	}

	appointment.Status = status
	u.metrics.RecordStatusTransition(string(status))
	u.cache.Invalidate(ctx, service.CacheKeyConfirmedByDoctor)
	u.log.Infof("Appointment %s status: %s -> %s", appointmentID, previous, status)

	if status == entity.AppointmentStatusConfirmed {
		u.sendConfirmation(ctx, appointment)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListConfirmedByDoctor returns the confirmed intervals of every doctor
func (u *appointmentUsecase) ListConfirmedByDoctor(ctx context.Context) (dto.ConfirmedByDoctorResponse, error) {
	return service.GetOrLoad(ctx, u.cache, service.CacheKeyConfirmedByDoctor, func(ctx context.Context) (dto.ConfirmedByDoctorResponse, error) {
		slots, err := u.appointmentRepo.FindConfirmedSlots(u.db.WithContext(ctx))
		if err != nil {
			u.log.Warnf("Failed to find confirmed appointments: %+v", err)
			return nil, err
		}
		return converter.ConfirmedSlotsByDoctor(slots), nil
	})
}

// GetAvailableSlots runs the availability calculator for one doctor and one
// date. The doctor, its working hours and its bookings are loaded
// concurrently.
func (u *appointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var (
		doctor   *entity.Doctor
		hours    *entity.DoctorAvailability
		bookings []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctor, err = u.doctorRepo.FindByID(u.db.WithContext(gctx), doctorID)
		return err
	})
	g.Go(func() error {
		var err error
		hours, err = u.availabilityRepo.FindByDoctorID(gctx, doctorID)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(gctx), doctorID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load slot data for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if hours == nil {
		return nil, ErrAvailabilityMissing
	}

	unavailable := make([]availability.Period, len(hours.Unavailability))
	for i, w := range hours.Unavailability {
		unavailable[i] = availability.Period{Start: w.Start, End: w.End}
	}

	slots, err := availability.Calculate(availability.Input{
		WorkStart:    hours.WorkStart,
		WorkEnd:      hours.WorkEnd,
		SlotDuration: hours.DefaultSlotDuration,
		Unavailable:  unavailable,
		Date:         day,
		Bookings:     toBookings(bookings),
	})
	if err != nil {
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		DoctorID:     doctorID,
		Date:         date,
		SlotDuration: hours.DefaultSlotDuration,
		Slots:        slots,
	}, nil
}

// ensureProfile returns the user's profile, creating a default one on first
// booking
func (u *appointmentUsecase) ensureProfile(ctx context.Context, tx *gorm.DB, user *entity.User) (*entity.Profile, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find profile of user %s: %+v", user.ID, err)
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	firstName, lastName := splitName(user.FullName)
	profile = &entity.Profile{
		UserID:    &user.ID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     user.Email,
		Sex:       entity.SexUnspecified,
	}
	if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to create default profile for user %s: %+v", user.ID, err)
		return nil, err
	}
	u.log.Infof("Default profile created for user %s", user.ID)
	return profile, nil
}

func (u *appointmentUsecase) sendConfirmation(ctx context.Context, appointment *entity.Appointment) {
	if appointment.Profile.Email == "" {
		u.log.Debugf("Appointment %s confirmed without patient email, no mail sent", appointment.ID)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()

	err := u.notifier.SendAppointmentConfirmation(sendCtx, service.AppointmentConfirmation{
		To:          appointment.Profile.Email,
		PatientName: appointment.Profile.FullName(),
		DoctorName:  appointment.Doctor.Name,
		Date:        appointment.Date,
		StartTime:   appointment.StartTime,
		EndTime:     appointment.EndTime,
	})
	u.metrics.RecordNotification("appointment_confirmation", err == nil)
	if err != nil {
		// Log but don't fail - the status change is already committed
		u.log.Warnf("Failed to send confirmation for appointment %s (non-fatal): %+v", appointment.ID, err)
	}
}

func toBookings(appointments []entity.Appointment) []availability.Booking {
	bookings := make([]availability.Booking, len(appointments))
	for i, a := range appointments {
		bookings[i] = availability.Booking{Date: a.Date, Start: a.StartTime, End: a.EndTime}
	}
	return bookings
}

// slotLabel renders a slot for log lines
func slotLabel(date time.Time, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date.Format(dateLayout), start, end)
}
