package resample

// Freq is one supported resampling granularity. Codes follow the usual
// offset-alias convention (D, 8H, 30T, ...).
type Freq struct {
	Code    string
	Seconds int64
}

// Frequencies is the fixed set of supported granularities.
var Frequencies = []Freq{
	{"D", 86400},
	{"8H", 8 * 3600},
	{"4H", 4 * 3600},
	{"2H", 2 * 3600},
	{"H", 3600},
	{"30T", 30 * 60},
	{"15T", 15 * 60},
}

// ByCode looks up a supported frequency by its code.
func ByCode(code string) (f Freq, ok bool) {
	for _, f := range Frequencies {
		if f.Code == code {
			return f, true
		}
	}
	return Freq{}, false
}

// Align truncates a unix timestamp to the frequency's bucket start. The
// unix epoch is midnight UTC, so plain truncation yields calendar-aligned
// cuts: daily buckets start at midnight, sub-daily ones at clock-aligned
// intervals from midnight.
func (f Freq) Align(ts int64) int64 {
	return ts - ts%f.Seconds
}
