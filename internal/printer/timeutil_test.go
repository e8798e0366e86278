package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/tokactl/internal/printer"
)

func TestFormatDuration(t *testing.T) {
	tests := map[string]struct {
		duration time.Duration
		expected string
	}{
		"negative":        {duration: -time.Second, expected: "0s"},
		"milliseconds":    {duration: 350 * time.Millisecond, expected: "350ms"},
		"seconds":         {duration: 12*time.Second + 400*time.Millisecond, expected: "12s"},
		"exact minutes":   {duration: 3 * time.Minute, expected: "3m"},
		"minutes":         {duration: 3*time.Minute + 20*time.Second, expected: "3m20s"},
		"exact hours":     {duration: 2 * time.Hour, expected: "2h"},
		"hours":           {duration: time.Hour + 5*time.Minute + 10*time.Second, expected: "1h5m"},
		"more than a day": {duration: 26 * time.Hour, expected: "26h"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatDuration(test.duration))
		})
	}
}
