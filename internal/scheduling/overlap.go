package scheduling

import "github.com/Freeeeeet/pt_scheduler/internal/model"

// Overlaps проверяет пересечение полуоткрытых интервалов [s1,e1) и [s2,e2).
// Касание концами пересечением не считается.
func Overlaps(s1, e1, s2, e2 model.TimeCode) bool {
	return s1 < e2 && s2 < e1
}

// WindowsOverlap пересекаются ли два окна на одной и той же дате
func WindowsOverlap(a, b model.Window) bool {
	return a.Date == b.Date && Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime)
}
