package equalizer

// builtinPresets holds the factory band curves, indexed by Frequencies.
// They cannot be deleted or overwritten.
var builtinPresets = map[string][]float64{
	"Flat":         {0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
	"Bass Boost":   {6.0, 5.0, 4.0, 1.5, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0},
	"Treble Boost": {0.0, 0.0, 0.0, 0.0, 0.0, 1.5, 3.0, 4.0, 5.0, 6.0},
	"Rock":         {4.0, 3.0, -2.5, -4.0, -1.5, 1.0, 3.0, 4.5, 4.5, 1.0},
	"Pop":          {5.0, 4.0, 1.0, 1.5, 2.0, 2.0, 3.0, 4.0, -1.0, -2.0},
	"Jazz":         {3.0, 2.0, 1.0, 2.0, -2.0, -2.0, 0.0, 1.5, 3.0, 4.0},
	"Classical":    {5.0, 4.0, 3.0, 2.0, -1.0, -1.0, 0.0, 3.0, 4.0, 4.5},
	"Electronic":   {4.0, 3.5, 0.0, -2.0, -3.0, -2.0, 0.0, 2.0, 4.0, 5.0},
	"Vocal":        {-2.0, -1.0, 0.0, 2.0, 4.0, 3.0, 2.0, 1.0, 0.0, -1.0},
}
