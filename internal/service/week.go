package service

import "time"

// Window - календарная неделя [Start, End] включительно.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekWindow возвращает неделю, содержащую now: от последнего воскресенья 00:00:00.000
// (сегодняшнего, если now - воскресенье) до следующей субботы 23:59:59.999
// в часовом поясе now.
func WeekWindow(now time.Time) Window {
	var (
		y, m, d = now.Date()
		sunday  = d - int(now.Weekday())
	)

	return Window{
		Start: time.Date(y, m, sunday, 0, 0, 0, 0, now.Location()),
		End:   time.Date(y, m, sunday+6, 23, 59, 59, int(999*time.Millisecond), now.Location()),
	}
}

func (w Window) StartMillis() int64 {
	return w.Start.UnixMilli()
}

func (w Window) EndMillis() int64 {
	return w.End.UnixMilli()
}
