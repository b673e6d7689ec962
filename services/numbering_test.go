package services

import (
	"testing"
	"time"

	"antrian-fm/models"

	"github.com/stretchr/testify/assert"
)

var numberingNow = time.Date(2026, 8, 28, 10, 30, 0, 0, time.Local)

func ticketWithNumber(number string) models.QueueTicket {
	return models.QueueTicket{Number: number, CreatedAt: numberingNow}
}

func TestNextTicketNumber_FirstOfDay(t *testing.T) {
	number := NextTicketNumber("FM", nil, numberingNow)

	assert.Equal(t, "FM20260828001", number)
}

func TestNextTicketNumber_IncrementsHighestSequence(t *testing.T) {
	todays := []models.QueueTicket{
		ticketWithNumber("FM20260828001"),
		ticketWithNumber("FM20260828002"),
	}

	number := NextTicketNumber("FM", todays, numberingNow)

	assert.Equal(t, "FM20260828003", number)
}

func TestNextSequence_TakesMaxNotCount(t *testing.T) {
	// Deleted tickets can leave gaps; the max wins, not the count.
	todays := []models.QueueTicket{
		ticketWithNumber("FM20260828001"),
		ticketWithNumber("FM20260828005"),
	}

	assert.Equal(t, 6, NextSequence("FM", todays, numberingNow))
}

func TestNextSequence_IgnoresForeignNumbers(t *testing.T) {
	todays := []models.QueueTicket{
		ticketWithNumber("AC20260828009"),   // other service prefix
		ticketWithNumber("FM20260827004"),   // previous day
		ticketWithNumber("FM-legacy-format"), // malformed
	}

	assert.Equal(t, 1, NextSequence("FM", todays, numberingNow))
}

func TestNextSequence_SurvivesPaddingOverflow(t *testing.T) {
	// Sequences past 999 widen beyond the 3-digit padding but still parse.
	todays := []models.QueueTicket{
		ticketWithNumber("FM202608281000"),
	}

	assert.Equal(t, 1001, NextSequence("FM", todays, numberingNow))
	assert.Equal(t, "FM202608281001", NextTicketNumber("FM", todays, numberingNow))
}
