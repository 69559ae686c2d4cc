package learning

// Options tune the learning engine.
type Options struct {
	// RingSize caps the allocation entries kept per category.
	RingSize int
	// HistoryLimit caps the input history.
	HistoryLimit int
	// MinSupport is the sample count a category needs to appear in a typical breakdown.
	MinSupport int
	// TopPreferred is how many preferred categories get a usual-percentage suggestion.
	TopPreferred int
	// ReminderThreshold: reminders are offered when fewer preferred categories than this are mentioned.
	ReminderThreshold int
	// ReminderCount caps the reminders per suggestion call. Like the other
	// fields, zero means the default.
	ReminderCount int
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		RingSize:          20,
		HistoryLimit:      100,
		MinSupport:        3,
		TopPreferred:      5,
		ReminderThreshold: 3,
		ReminderCount:     2,
	}
}

// normalized replaces non-positive values with defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.RingSize <= 0 {
		o.RingSize = d.RingSize
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = d.HistoryLimit
	}
	if o.MinSupport <= 0 {
		o.MinSupport = d.MinSupport
	}
	if o.TopPreferred <= 0 {
		o.TopPreferred = d.TopPreferred
	}
	if o.ReminderThreshold <= 0 {
		o.ReminderThreshold = d.ReminderThreshold
	}
	if o.ReminderCount <= 0 {
		o.ReminderCount = d.ReminderCount
	}
	return o
}
