package holiday

import (
	"time"

	"timepulse/internal/errors"
)

// lunarTable encodes the Chinese lunar calendar for 1900-2100. Each entry
// packs the month lengths and leap month of one lunar year: bits 4-16 flag
// 30-day months (big months), bit 17 flags a 30-day leap month, and the low
// four bits hold the leap month number (0 when the year has none).
var lunarTable = [...]int{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900-1909
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910-1919
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920-1929
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930-1939
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940-1949
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950-1959
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960-1969
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b5a0, 0x195a6, // 1970-1979
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980-1989
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x05ac0, 0x0ab60, 0x096d5, 0x092e0, // 1990-1999
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000-2009
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010-2019
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020-2029
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030-2039
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040-2049
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050-2059
	0x0a2e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060-2069
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070-2079
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080-2089
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090-2099
	0x0d520, // 2100
}

const (
	lunarFirstYear = 1900
	lunarLastYear  = 2100
)

// lunarNewYearBase is the solar date of the first day of lunar year 1900.
var lunarNewYearBase = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

// leapMonth returns the leap month of a lunar year (0 when there is none).
func leapMonth(year int) int {
	return lunarTable[year-lunarFirstYear] & 0xf
}

// leapMonthDays returns the day count of a lunar year's leap month.
func leapMonthDays(year int) int {
	if leapMonth(year) == 0 {
		return 0
	}
	if lunarTable[year-lunarFirstYear]&0x10000 != 0 {
		return 30
	}
	return 29
}

// monthDays returns the day count of a regular lunar month (1-12).
func monthDays(year, month int) int {
	if lunarTable[year-lunarFirstYear]&(0x10000>>uint(month)) != 0 {
		return 30
	}
	return 29
}

// lunarYearDays returns the total day count of a lunar year.
func lunarYearDays(year int) int {
	days := 348 // twelve 29-day months
	for mask := 0x8000; mask > 0x8; mask >>= 1 {
		if lunarTable[year-lunarFirstYear]&mask != 0 {
			days++
		}
	}
	return days + leapMonthDays(year)
}

// LunarToSolar converts a date in the Chinese lunar calendar (non-leap month)
// to the corresponding solar date at UTC midnight.
func LunarToSolar(year, month, day int) (time.Time, error) {
	if year < lunarFirstYear || year > lunarLastYear {
		return time.Time{}, errors.NewInvalidInputError("lunar_year", year, "outside the supported 1900-2100 range")
	}
	if month < 1 || month > 12 {
		return time.Time{}, errors.NewInvalidInputError("lunar_month", month, "must be between 1 and 12")
	}
	if day < 1 || day > monthDays(year, month) {
		return time.Time{}, errors.NewInvalidInputError("lunar_day", day, "exceeds the length of the lunar month")
	}

	offset := 0
	for y := lunarFirstYear; y < year; y++ {
		offset += lunarYearDays(y)
	}
	leap := leapMonth(year)
	for m := 1; m < month; m++ {
		offset += monthDays(year, m)
		if m == leap {
			offset += leapMonthDays(year)
		}
	}
	offset += day - 1

	return lunarNewYearBase.AddDate(0, 0, offset), nil
}
