package base

import (
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestDateRoundTrip(t *testing.T) {
	d := civil.Date{Year: 2024, Month: time.February, Day: 29}

	param := DateParam(d)
	assert.Equal(t, time.UTC, param.Location())
	assert.Equal(t, 0, param.Hour())
	assert.Equal(t, d, DateFromColumn(param))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("get booking: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(fmt.Errorf("boom")))
}
