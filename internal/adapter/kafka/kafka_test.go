package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/park-conditions/internal/domain"
)

func TestSerializeAlert(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	alert := domain.Alert{
		Kind:    domain.AlertLandslide,
		Source:  "rainfall",
		Risk:    domain.RiskHigh,
		Date:    date,
		Message: "landslide risk high: 60.0mm rainfall recorded",
	}

	msg, err := serializeAlert(alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("landslide"), msg.Key)
	assert.Contains(t, string(msg.Value), `"kind":"landslide"`)
	assert.Contains(t, string(msg.Value), `"risk":"High"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "alert_kind", msg.Headers[0].Key)
	assert.Equal(t, []byte("landslide"), msg.Headers[0].Value)
	assert.Equal(t, "alert_source", msg.Headers[1].Key)
	assert.Equal(t, []byte("rainfall"), msg.Headers[1].Value)
	assert.Equal(t, "observed_on", msg.Headers[2].Key)
	assert.Equal(t, []byte(date.Format(time.RFC3339)), msg.Headers[2].Value)
}
