package music

// Equal-tempered pitches anchored on C4 = 261.63 Hz, rounded the way the
// toy has always shipped them. Index is the scale degree 1-7.
var (
	naturalHz = [3][8]float64{
		Low:  {0, 130.81, 146.83, 164.81, 174.61, 196.00, 220.00, 246.94},
		Mid:  {0, 261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88},
		High: {0, 523.25, 587.33, 659.25, 698.46, 783.99, 880.00, 987.77},
	}
	flatHz = [3][8]float64{
		Low:  {0, 123.47, 138.59, 155.56, 164.81, 185.00, 207.65, 233.08},
		Mid:  {0, 246.94, 277.18, 311.13, 329.63, 369.99, 415.30, 466.16},
		High: {0, 493.88, 554.37, 622.25, 659.25, 739.99, 830.61, 932.33},
	}
)

// newFrequencyTable builds the lookup for every token the parser can emit.
// Rests map to 0 under any accidental or octave.
func newFrequencyTable() map[Token]float64 {
	table := make(map[Token]float64, 8*2*3)
	for _, oct := range []Octave{Mid, Low, High} {
		for _, acc := range []Accidental{Natural, Flat} {
			for deg := 0; deg <= 7; deg++ {
				hz := naturalHz[oct][deg]
				if acc == Flat {
					hz = flatHz[oct][deg]
				}
				table[Token{Degree: deg, Accidental: acc, Octave: oct}] = hz
			}
		}
	}
	return table
}
