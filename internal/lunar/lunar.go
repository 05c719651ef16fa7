// Package lunar переводит даты григорианского календаря в лунно-солнечный календарь
// (вьетнамский/китайский). Новолуния и солнечные долготы вычисляются по
// астрономическим формулам, день новолуния определяется в заданном часовом поясе.
package lunar

import (
	"fmt"
	"math"
	"time"
)

// Date - дата лунного календаря. Leap - признак високосного (вставного) месяца.
type Date struct {
	Day   int
	Month int
	Year  int
	Leap  bool
}

// Converter выполняет перевод дат для часового пояса UTC+offset.
type Converter struct {
	offset float64
}

const (
	synodicMonth = 29.530588853
	// юлианский день новолуния 1 января 1900 года
	epochNewMoon = 2415021.076998695
)

func NewConverter(utcOffset float64) *Converter {
	return &Converter{offset: utcOffset}
}

func (d Date) String() string {
	if d.Leap {
		return fmt.Sprintf("%02d/%02d/%d (leap)", d.Day, d.Month, d.Year)
	}

	return fmt.Sprintf("%02d/%02d/%d", d.Day, d.Month, d.Year)
}

// FromSolar возвращает лунную дату для календарного дня t. Учитывается только
// день, месяц и год t в его собственном часовом поясе.
func (c *Converter) FromSolar(t time.Time) Date {
	dayNumber := julianDay(t.Day(), int(t.Month()), t.Year())
	k := int(math.Floor((float64(dayNumber) - epochNewMoon) / synodicMonth))
	monthStart := c.newMoonDay(k + 1)
	if monthStart > dayNumber {
		monthStart = c.newMoonDay(k)
	}

	a11 := c.lunarMonth11(t.Year())
	b11 := a11
	var year int
	if a11 >= monthStart {
		year = t.Year()
		a11 = c.lunarMonth11(t.Year() - 1)
	} else {
		year = t.Year() + 1
		b11 = c.lunarMonth11(t.Year() + 1)
	}

	date := Date{Day: dayNumber - monthStart + 1}
	diff := (monthStart - a11) / 29
	date.Month = diff + 11
	if b11-a11 > 365 {
		leapDiff := c.leapMonthOffset(a11)
		if diff >= leapDiff {
			date.Month = diff + 10
			date.Leap = diff == leapDiff
		}
	}

	if date.Month > 12 {
		date.Month -= 12
	}

	if date.Month >= 11 && diff < 4 {
		year--
	}
	date.Year = year

	return date
}

// julianDay возвращает номер юлианского дня для даты григорианского календаря
// (юлианского для дат до 15 октября 1582 года).
func julianDay(dd, mm, yy int) int {
	a := (14 - mm) / 12
	y := yy + 4800 - a
	m := mm + 12*a - 3
	jd := dd + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	if jd < 2299161 {
		jd = dd + (153*m+2)/5 + 365*y + y/4 - 32083
	}

	return jd
}

// newMoonDay возвращает юлианский день k-го новолуния после epochNewMoon.
func (c *Converter) newMoonDay(k int) int {
	var (
		kf = float64(k)
		t  = kf / 1236.85
		t2 = t * t
		t3 = t2 * t
		dr = math.Pi / 180
	)

	jd1 := 2415020.75933 + 29.53058868*kf + 0.0001178*t2 - 0.000000155*t3
	jd1 += 0.00033 * math.Sin((166.56+132.87*t-0.009173*t2)*dr)
	m := 359.2242 + 29.10535608*kf - 0.0000333*t2 - 0.00000347*t3
	mpr := 306.0253 + 385.81691806*kf + 0.0107306*t2 + 0.00001236*t3
	f := 21.2964 + 390.67050646*kf - 0.0016528*t2 - 0.00000239*t3

	c1 := (0.1734-0.000393*t)*math.Sin(m*dr) + 0.0021*math.Sin(2*dr*m)
	c1 = c1 - 0.4068*math.Sin(mpr*dr) + 0.0161*math.Sin(dr*2*mpr)
	c1 = c1 - 0.0004*math.Sin(dr*3*mpr)
	c1 = c1 + 0.0104*math.Sin(dr*2*f) - 0.0051*math.Sin(dr*(m+mpr))
	c1 = c1 - 0.0074*math.Sin(dr*(m-mpr)) + 0.0004*math.Sin(dr*(2*f+m))
	c1 = c1 - 0.0004*math.Sin(dr*(2*f-m)) - 0.0006*math.Sin(dr*(2*f+mpr))
	c1 = c1 + 0.0010*math.Sin(dr*(2*f-mpr)) + 0.0005*math.Sin(dr*(2*mpr+m))

	deltaT := -0.000278 + 0.000265*t + 0.000262*t2
	if t < -11 {
		deltaT = 0.001 + 0.000839*t + 0.0002261*t2 - 0.00000845*t3 - 0.000000081*t*t3
	}

	return int(math.Floor(jd1 + c1 - deltaT + 0.5 + c.offset/24))
}

// sunLongitude возвращает номер сектора (0..11) солнечной долготы в начале дня jdn.
func (c *Converter) sunLongitude(jdn int) int {
	var (
		t  = (float64(jdn) - 2451545.5 - c.offset/24) / 36525
		t2 = t * t
		dr = math.Pi / 180
	)

	m := 357.52910 + 35999.05030*t - 0.0001559*t2 - 0.00000048*t*t2
	l0 := 280.46645 + 36000.76983*t + 0.0003032*t2
	dl := (1.914600 - 0.004817*t - 0.000014*t2) * math.Sin(dr*m)
	dl += (0.019993-0.000101*t)*math.Sin(dr*2*m) + 0.000290*math.Sin(dr*3*m)

	l := (l0 + dl) * dr
	l -= math.Pi * 2 * math.Floor(l/(math.Pi*2))

	return int(math.Floor(l / math.Pi * 6))
}

// lunarMonth11 возвращает юлианский день начала 11-го лунного месяца,
// содержащего зимнее солнцестояние года yy.
func (c *Converter) lunarMonth11(yy int) int {
	off := float64(julianDay(31, 12, yy)) - 2415021
	k := int(math.Floor(off / synodicMonth))
	nm := c.newMoonDay(k)
	if c.sunLongitude(nm) >= 9 {
		nm = c.newMoonDay(k - 1)
	}

	return nm
}

// leapMonthOffset возвращает смещение вставного месяца относительно месяца a11.
func (c *Converter) leapMonthOffset(a11 int) int {
	k := int(math.Floor((float64(a11)-epochNewMoon)/synodicMonth + 0.5))
	i := 1
	arc := c.sunLongitude(c.newMoonDay(k + i))
	for {
		last := arc
		i++
		arc = c.sunLongitude(c.newMoonDay(k + i))
		if arc == last || i >= 14 {
			break
		}
	}

	return i - 1
}
