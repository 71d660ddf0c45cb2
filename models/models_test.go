package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColorForIsDeterministic(t *testing.T) {
	assert.Equal(t, ColorFor("participant-1"), ColorFor("participant-1"))
	assert.NotEmpty(t, ColorFor(""))
}

func TestFilterStateCloneIsDetached(t *testing.T) {
	original := FilterState{"city": "Jakarta", "priceMax": 500}

	clone := original.Clone()
	clone["city"] = "Bali"

	assert.Equal(t, "Jakarta", original["city"])
	assert.Equal(t, 500, clone["priceMax"])
}

func TestSessionUsable(t *testing.T) {
	now := time.Now()
	session := Session{ExpiresAt: now.Add(time.Hour)}

	assert.True(t, session.Usable(now))
	assert.False(t, session.Usable(now.Add(time.Hour)))
	assert.False(t, session.Usable(now.Add(2*time.Hour)))
}
