// Package suntime computes sunrise and sunset instants using the NOAA solar
// position approximation. Results are derived values for scheduling and
// display; they are never treated as authoritative state.
package suntime

import (
	"math"
	"time"
)

// SunTimes holds the computed sunrise and sunset for one location and date.
type SunTimes struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// Zenith for sunrise/sunset includes a -0.833 degree correction so the result
// is the moment the solar disc's upper limb crosses the horizon (atmospheric
// refraction plus solar radius), not the geometric center crossing.
const zenithDegrees = 90.833

// Fallback wall-clock times used during polar day or polar night, when no
// real horizon crossing exists for the date.
const (
	fallbackSunriseHour = 6
	fallbackSunsetHour  = 18
)

// Times returns sunrise and sunset for the given coordinates on the calendar
// date of t, expressed in t's location. During polar day or night it returns
// the fixed 06:00/18:00 local fallback pair.
func Times(latitude, longitude float64, t time.Time) SunTimes {
	year, month, day := t.Date()
	loc := t.Location()

	// Fractional year in radians, evaluated at solar noon: NOAA's hour term
	// (hour-12)/24 is zero there.
	doy := float64(t.YearDay())
	gamma := 2 * math.Pi / daysInYear(year) * (doy - 1)

	// Equation of time (minutes) and solar declination (radians),
	// NOAA's Fourier-series approximations.
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) -
		0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) -
		0.040849*math.Sin(2*gamma))
	decl := 0.006918 -
		0.399912*math.Cos(gamma) +
		0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) +
		0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) +
		0.00148*math.Sin(3*gamma)

	latRad := latitude * math.Pi / 180
	zenithRad := zenithDegrees * math.Pi / 180

	cosHourAngle := math.Cos(zenithRad)/(math.Cos(latRad)*math.Cos(decl)) -
		math.Tan(latRad)*math.Tan(decl)

	// Polar day (sun never sets) or polar night (sun never rises).
	if cosHourAngle < -1 || cosHourAngle > 1 {
		return SunTimes{
			Sunrise: time.Date(year, month, day, fallbackSunriseHour, 0, 0, 0, loc),
			Sunset:  time.Date(year, month, day, fallbackSunsetHour, 0, 0, 0, loc),
		}
	}

	hourAngle := math.Acos(cosHourAngle) * 180 / math.Pi

	// UTC minutes-of-day for the two crossings.
	sunriseMinutes := 720 - 4*(longitude+hourAngle) - eqTime
	sunsetMinutes := 720 - 4*(longitude-hourAngle) - eqTime

	midnightUTC := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return SunTimes{
		Sunrise: midnightUTC.Add(minutes(sunriseMinutes)).In(loc),
		Sunset:  midnightUTC.Add(minutes(sunsetMinutes)).In(loc),
	}
}

// IsDaytime reports whether t falls between sunrise and sunset for the
// coordinates on t's date.
func IsDaytime(latitude, longitude float64, t time.Time) bool {
	st := Times(latitude, longitude, t)
	return !t.Before(st.Sunrise) && t.Before(st.Sunset)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func daysInYear(year int) float64 {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}
