package simulate

// Kind selects a traffic pattern for the generator.
type Kind string

const (
	Steady       Kind = "steady"
	LatencyCreep Kind = "latency-creep"
	ErrorSpike   Kind = "error-spike"
	Outage       Kind = "outage"
	Surge        Kind = "surge"
	Quiet        Kind = "quiet"
)

// Kinds returns every scenario in cycling order.
func Kinds() []Kind {
	return []Kind{Steady, LatencyCreep, ErrorSpike, Outage, Surge, Quiet}
}

// Next returns the scenario after k in cycling order.
func Next(k Kind) Kind {
	kinds := Kinds()
	for i, kk := range kinds {
		if kk == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return Steady
}

// Valid reports whether s names a known scenario.
func Valid(s string) bool {
	for _, k := range Kinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// profile describes one scenario's traffic shape. Rates are per demo
// minute; latencies are lognormal around the median.
type profile struct {
	eventsPerMin float64
	errorRate    float64
	latMedianMs  float64
	latSigma     float64
	failFactor   float64 // failed requests run this many times the median
	cpuPct       float64
	cpuJitter    float64
}

var profiles = map[Kind]profile{
	Steady:       {eventsPerMin: 60, errorRate: 0.0005, latMedianMs: 120, latSigma: 0.30, failFactor: 4, cpuPct: 35, cpuJitter: 5},
	LatencyCreep: {eventsPerMin: 60, errorRate: 0.001, latMedianMs: 120, latSigma: 0.30, failFactor: 4, cpuPct: 45, cpuJitter: 6},
	ErrorSpike:   {eventsPerMin: 60, errorRate: 0.15, latMedianMs: 130, latSigma: 0.35, failFactor: 5, cpuPct: 55, cpuJitter: 8},
	Outage:       {eventsPerMin: 30, errorRate: 0.90, latMedianMs: 150, latSigma: 0.40, failFactor: 30, cpuPct: 25, cpuJitter: 10},
	Surge:        {eventsPerMin: 240, errorRate: 0.02, latMedianMs: 170, latSigma: 0.40, failFactor: 6, cpuPct: 92, cpuJitter: 4},
	Quiet:        {eventsPerMin: 3, errorRate: 0.01, latMedianMs: 110, latSigma: 0.25, failFactor: 4, cpuPct: 20, cpuJitter: 3},
}

// profileFor returns the shape of a scenario elapsedMin demo minutes
// after it was selected. Latency creep drifts the median upward 12% per
// minute so the p95 crosses a typical target within ten demo minutes.
func profileFor(k Kind, elapsedMin float64) profile {
	p, ok := profiles[k]
	if !ok {
		p = profiles[Steady]
	}
	if k == LatencyCreep && elapsedMin > 0 {
		p.latMedianMs *= 1 + 0.12*elapsedMin
	}
	return p
}

// Request mix shared by all scenarios.
var (
	categories     = []string{"checkout", "search", "browse", "api"}
	categoryWeight = []float64{0.30, 0.25, 0.30, 0.15}
	origins        = []string{"web", "mobile", "api"}
	originWeight   = []float64{0.50, 0.30, 0.20}
	regions        = []string{"us-east", "eu-west", "ap-south"}
)
