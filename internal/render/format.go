package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ziadkadry99/kabar/internal/sanitize"
)

// DefaultWordsPerMinute is the reading speed used for reading-time estimates.
const DefaultWordsPerMinute = 200

// dateLayout is the calendar date format of the data file.
const dateLayout = "2006-01-02"

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate turns an ISO calendar date into a long Indonesian date such as
// "1 Februari 2024". Values that do not parse are returned unchanged.
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// WordCount counts whitespace-delimited words of the visible text of markup.
func WordCount(markup string) int {
	return len(strings.Fields(sanitize.StripTags(markup)))
}

// ReadingTime estimates minutes needed to read markup at wpm words per
// minute, rounded up and never below one minute.
func ReadingTime(markup string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := int(math.Ceil(float64(WordCount(markup)) / float64(wpm)))
	if minutes < 1 {
		return 1
	}
	return minutes
}
