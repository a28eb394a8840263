// Package holiday provides the fixed holiday calendar used to seed the
// default countdown timer: international and Chinese fixed-date holidays,
// computed floating holidays, and lunar festivals converted to solar dates.
// All holiday instants are UTC midnights.
package holiday

import (
	"fmt"
	"sort"
	"time"

	"timepulse/internal/logging"
)

// Holiday is a named instant with a display accent color.
type Holiday struct {
	Name  string
	Date  time.Time
	Color string
}

// FixedDate returns the holidays that fall on the same solar date every year.
func FixedDate(year int) []Holiday {
	at := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []Holiday{
		{Name: named("New Year's Day", year), Date: at(time.January, 1), Color: "#1890FF"},
		{Name: named("Valentine's Day", year), Date: at(time.February, 14), Color: "#EB2F96"},
		{Name: named("Women's Day", year), Date: at(time.March, 8), Color: "#C71585"},
		{Name: named("Arbor Day", year), Date: at(time.March, 12), Color: "#52C41A"},
		{Name: named("April Fools' Day", year), Date: at(time.April, 1), Color: "#722ED1"},
		{Name: named("Labor Day", year), Date: at(time.May, 1), Color: "#FA8C16"},
		{Name: named("Youth Day", year), Date: at(time.May, 4), Color: "#722ED1"},
		{Name: named("Qingming Festival", year), Date: qingming(year), Color: "#228B22"},
		{Name: named("Children's Day", year), Date: at(time.June, 1), Color: "#13C2C2"},
		{Name: named("Party Founding Day", year), Date: at(time.July, 1), Color: "#FF0000"},
		{Name: named("Army Day", year), Date: at(time.August, 1), Color: "#CF1322"},
		{Name: named("Teachers' Day", year), Date: at(time.September, 10), Color: "#096DD9"},
		{Name: named("National Day", year), Date: at(time.October, 1), Color: "#FF4D4F"},
		{Name: named("Halloween", year), Date: at(time.October, 31), Color: "#FF7A45"},
		{Name: named("Christmas Eve", year), Date: at(time.December, 24), Color: "#36CFC9"},
		{Name: named("Christmas Day", year), Date: at(time.December, 25), Color: "#F759AB"},
	}
}

// Floating returns the holidays defined by weekday rules.
func Floating(year int) []Holiday {
	return []Holiday{
		{Name: named("Mother's Day", year), Date: nthWeekday(year, time.May, time.Sunday, 2), Color: "#F759AB"},
		{Name: named("Father's Day", year), Date: nthWeekday(year, time.June, time.Sunday, 3), Color: "#1890FF"},
		{Name: named("Thanksgiving Day", year), Date: nthWeekday(year, time.November, time.Thursday, 4), Color: "#FAAD14"},
	}
}

// LunarFestivals returns the traditional lunar-calendar festivals converted
// to solar dates. Years outside the lunar table are skipped.
func LunarFestivals(year int) []Holiday {
	festivals := []struct {
		name  string
		month int
		day   int
		color string
	}{
		{"Spring Festival", 1, 1, "#FF0000"},
		{"Lantern Festival", 1, 15, "#FF6347"},
		{"Dragon Boat Festival", 5, 5, "#32CD32"},
		{"Qixi Festival", 7, 7, "#FF1493"},
		{"Zhongyuan Festival", 7, 15, "#708090"},
		{"Mid-Autumn Festival", 8, 15, "#FFA500"},
		{"Chongyang Festival", 9, 9, "#800080"},
		{"Laba Festival", 12, 8, "#8B4513"},
	}

	holidays := make([]Holiday, 0, len(festivals))
	for _, f := range festivals {
		date, err := LunarToSolar(year, f.month, f.day)
		if err != nil {
			logging.Debugf("skipping lunar festival %s %d: %v\n", f.name, year, err)
			continue
		}
		holidays = append(holidays, Holiday{Name: named(f.name, year), Date: date, Color: f.color})
	}
	return holidays
}

// Upcoming returns the holidays of the current and next calendar year that
// fall strictly after now, sorted ascending by instant.
func Upcoming(now time.Time) []Holiday {
	var all []Holiday
	for _, year := range []int{now.Year(), now.Year() + 1} {
		all = append(all, FixedDate(year)...)
		all = append(all, Floating(year)...)
		all = append(all, LunarFestivals(year)...)
	}

	future := all[:0]
	for _, h := range all {
		if h.Date.After(now) {
			future = append(future, h)
		}
	}
	sort.Slice(future, func(i, j int) bool {
		return future[i].Date.Before(future[j].Date)
	})
	return future
}

// Next returns the nearest holiday strictly after now.
func Next(now time.Time) (Holiday, bool) {
	upcoming := Upcoming(now)
	if len(upcoming) == 0 {
		return Holiday{}, false
	}
	return upcoming[0], true
}

// qingming approximates the Qingming solar term date for a year.
// The (y-2000)*0.2422+4.81 formula is accurate for the years this
// application cares about.
func qingming(year int) time.Time {
	y := year - 2000
	day := int(float64(y)*0.2422+4.81) - y/4
	return time.Date(year, time.April, day, 0, 0, 0, 0, time.UTC)
}

// nthWeekday returns the nth given weekday of a month at UTC midnight.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

func named(name string, year int) string {
	return fmt.Sprintf("%s %d", name, year)
}
