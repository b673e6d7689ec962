package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"antrian-fm/models"
)

const dayStampLayout = "20060102"

// NextTicketNumber builds the display number for the next ticket of a
// service: prefix + yyyymmdd day stamp + zero-padded sequence. The sequence
// is day scoped: it restarts at 1 on the first ticket of each local day.
func NextTicketNumber(prefix string, todays []models.QueueTicket, now time.Time) string {
	return formatTicketNumber(prefix, now, NextSequence(prefix, todays, now))
}

func formatTicketNumber(prefix string, now time.Time, sequence int) string {
	return fmt.Sprintf("%s%s%03d", prefix, now.Format(dayStampLayout), sequence)
}

// NextSequence returns max(sequence of today's tickets) + 1, or 1 when the
// service has no tickets yet today.
func NextSequence(prefix string, todays []models.QueueTicket, now time.Time) int {
	day := now.Format(dayStampLayout)
	max := 0
	for _, t := range todays {
		if seq, ok := sequenceOf(t.Number, prefix, day); ok && seq > max {
			max = seq
		}
	}
	return max + 1
}

// sequenceOf extracts the numeric sequence from a ticket number of the form
// prefix + day stamp + sequence. Numbers from other days or malformed numbers
// are ignored rather than guessed at.
func sequenceOf(number, prefix, day string) (int, bool) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutPrefix(rest, day)
	if !ok || rest == "" {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
