package scoring

import "math"

// Band is one segment of the piecewise similarity curve. A band covers
// differences in (previous Upper, Upper]; the first band also includes 0.
// Similarity falls linearly from Start to End across the band.
type Band struct {
	Number int
	Upper  float64
	Start  float64
	End    float64
}

// Bands is the seven-band similarity curve, ordered by Upper.
var Bands = []Band{
	{Number: 1, Upper: 0.05, Start: 1.00, End: 0.98},
	{Number: 2, Upper: 0.15, Start: 0.98, End: 0.90},
	{Number: 3, Upper: 0.25, Start: 0.90, End: 0.75},
	{Number: 4, Upper: 0.35, Start: 0.75, End: 0.55},
	{Number: 5, Upper: 0.45, Start: 0.55, End: 0.30},
	{Number: 6, Upper: 0.55, Start: 0.30, End: 0.10},
	{Number: 7, Upper: 1.00, Start: 0.10, End: 0.00},
}

// Similarity maps the absolute difference between a user value and an ideal
// value onto [0, 1] and reports the band it fell into. Differences beyond
// the last band score 0.
func Similarity(difference float64) (float64, int) {
	d := math.Abs(difference)
	if math.IsNaN(d) {
		last := Bands[len(Bands)-1]
		return 0, last.Number
	}

	lower := 0.0
	for _, b := range Bands {
		if d <= b.Upper {
			t := (d - lower) / (b.Upper - lower)
			return math.Max(0, b.Start+(b.End-b.Start)*t), b.Number
		}
		lower = b.Upper
	}
	return 0, Bands[len(Bands)-1].Number
}
