package utils

import "time"

type dayNames struct {
	full   [7]string // Indexed by time.Weekday, Sunday first.
	short  [7]string
	months [12]string
}

var locales = map[string]dayNames{
	"en": {
		full:   [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		short:  [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	},
	"it": {
		full:   [7]string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"},
		short:  [7]string{"Dom", "Lun", "Mar", "Mer", "Gio", "Ven", "Sab"},
		months: [12]string{"Gen", "Feb", "Mar", "Apr", "Mag", "Giu", "Lug", "Ago", "Set", "Ott", "Nov", "Dic"},
	},
}

func KnownLocale(locale string) bool {
	_, ok := locales[locale]
	return ok
}

func lookup(locale string) dayNames {
	if l, ok := locales[locale]; ok {
		return l
	}
	return locales["en"]
}

// DayName returns the full and short localized names of a weekday.
// Unknown locales fall back to English.
func DayName(locale string, d time.Weekday) (string, string) {
	l := lookup(locale)
	return l.full[d], l.short[d]
}

// MonthShort returns the localized three letter month abbreviation.
func MonthShort(locale string, m time.Month) string {
	return lookup(locale).months[m-1]
}
