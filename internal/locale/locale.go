// Package locale holds the Czech day and month abbreviations shown on the face.
package locale

// Placeholder is shown in place of a weekday or month that is out of range.
const Placeholder = "?"

// Indexed by calendar weekday-1 (Sunday first).
var weekdays = [7]string{"Ne", "Po", "Út", "St", "Čt", "Pá", "So"}

// Indexed by calendar month-1.
var months = [12]string{"led", "úno", "bře", "dub", "kvě", "čvn", "čvc", "srp", "zář", "říj", "lis", "pro"}

// Weekday returns the abbreviation for a calendar weekday in 1..7 (1 = Sunday).
func Weekday(day int) (string, bool) {
	if day < 1 || day > len(weekdays) {
		return "", false
	}
	return weekdays[day-1], true
}

// Month returns the abbreviation for a calendar month in 1..12.
func Month(month int) (string, bool) {
	if month < 1 || month > len(months) {
		return "", false
	}
	return months[month-1], true
}

// WeekdayOrPlaceholder is Weekday with the unknown case already substituted.
func WeekdayOrPlaceholder(day int) string {
	if name, ok := Weekday(day); ok {
		return name
	}
	return Placeholder
}

// MonthOrPlaceholder is Month with the unknown case already substituted.
func MonthOrPlaceholder(month int) string {
	if name, ok := Month(month); ok {
		return name
	}
	return Placeholder
}
