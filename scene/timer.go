package scene

// After runs fn once, seconds after now. The returned event cancels it.
func (s *Scene) After(seconds float64, fn func()) *Event {
	if fn == nil {
		return &Event{}
	}
	due := s.Elapsed() + seconds
	var e *Event
	e = s.Repeat(ActionFunc(func() {
		if s.elapsed < due {
			return
		}
		e.Active = false
		fn()
	}))
	return e
}

// Every runs fn each time another interval of seconds has passed.
func (s *Scene) Every(seconds float64, fn func()) *Event {
	if fn == nil || seconds <= 0 {
		return &Event{}
	}
	next := s.Elapsed() + seconds
	return s.Repeat(ActionFunc(func() {
		for s.elapsed >= next {
			next += seconds
			fn()
		}
	}))
}
