package lock

// Keys reports how many keys a Local lock currently tracks.
func Keys(l *Local) int {
	return int(l.slots.Len())
}
