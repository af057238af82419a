package cmd

// TempReading is one classified temperature sample.
type TempReading struct {
	TempC    float64
	Pressure float64 // TempC / critical
	Status   string  // SAFE/WARM/HOT/UNAVAILABLE
	Source   string  // fallback tier that answered
}

// classifyTemp normalises tempC against critical and buckets it.
//
// 0 °C is what the fallback chain returns when no sensor answered, so it is
// reported as UNAVAILABLE rather than SAFE.
func classifyTemp(tempC, critical float64, source string) TempReading {
	r := TempReading{TempC: tempC, Source: source}
	if source == "" || critical <= 0 {
		r.Status = "UNAVAILABLE"
		return r
	}

	r.Pressure = tempC / critical
	switch {
	case r.Pressure >= 0.8:
		r.Status = "HOT"
	case r.Pressure >= 0.6:
		r.Status = "WARM"
	default:
		r.Status = "SAFE"
	}
	return r
}
