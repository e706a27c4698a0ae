package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := New("beedical_test")

	router := mux.NewRouter()
	router.Use(m.HTTPMiddleware)
	router.HandleFunc("/doctors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/doctors/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/doctors/{id}", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New("beedical_test")

	m.RecordAppointmentCreated()
	m.RecordStatusTransition("Confirmé")
	m.RecordStatusTransition("Confirmé")
	m.RecordNotification("appointment_confirmation", false)
	m.RecordCacheLookup("cities", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.appointmentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointmentTransitions.WithLabelValues("Confirmé")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsTotal.WithLabelValues("appointment_confirmation", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("cities", "hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordAppointmentCreated()
		m.RecordStatusTransition("Annulé")
		m.RecordNotification("verification_code", true)
		m.RecordCacheLookup("specialties", false)
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New("beedical_test")
	m.RecordAppointmentCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "beedical_test_appointments_created_total 1"))
}
