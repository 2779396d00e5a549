package service

import "time"

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock возвращает Clock поверх системного времени.
func SystemClock() Clock { return systemClock{} }
