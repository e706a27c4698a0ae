package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManagementGrant_EffectiveRights(t *testing.T) {
	grant := &ManagementGrant{
		CanModifyProfile:      true,
		CanManageAppointments: true,
		CanManageDocuments:    true,
	}

	t.Run("profile without account keeps stored flag", func(t *testing.T) {
		rights := grant.EffectiveRights(&Profile{})
		assert.Equal(t, Rights{ModifyProfile: true, ManageAppointments: true, ManageDocuments: true}, rights)
	})

	t.Run("linked account revokes modify profile", func(t *testing.T) {
		userID := uuid.New()
		rights := grant.EffectiveRights(&Profile{UserID: &userID})
		assert.False(t, rights.ModifyProfile)
		assert.True(t, rights.ManageAppointments)
		assert.True(t, rights.ManageDocuments)
	})

	t.Run("stored false stays false", func(t *testing.T) {
		g := &ManagementGrant{CanManageAppointments: true}
		assert.False(t, g.EffectiveRights(&Profile{}).ModifyProfile)
	})
}

func TestParseAppointmentStatus(t *testing.T) {
	for _, s := range []string{"En attente", "Confirmé", "Annulé"} {
		status, ok := ParseAppointmentStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, AppointmentStatus(s), status)
	}

	_, ok := ParseAppointmentStatus("confirmed")
	assert.False(t, ok)
	_, ok = ParseAppointmentStatus("")
	assert.False(t, ok)
}

func TestJSON_ScanRoundTrip(t *testing.T) {
	var j JSON
	err := j.Scan([]byte(`{"entity":"appointment","entity_id":"42"}`))
	assert.NoError(t, err)
	assert.Equal(t, "appointment", j["entity"])

	assert.Error(t, j.Scan(42))

	v, err := JSON{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}
