// Package scoring computes quiz percentages and performance bands.
package scoring

// Performance bands, inclusive on the lower boundary of each band.
const (
	BandSuperior = "Superior"
	BandAlto     = "Alto"
	BandMedio    = "Medio"
	BandBajo     = "Bajo"
)

// Answer is one submitted answer as reported by the client.
type Answer struct {
	QuestionID int  `json:"id"`
	Correct    bool `json:"correcta"`
}

// Score returns the percentage of correct answers, 0 for an empty submission.
func Score(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(answers)) * 100
}

// CountCorrect returns how many answers were marked correct.
func CountCorrect(answers []Answer) int {
	n := 0
	for _, a := range answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Classify maps a percentage to its performance band.
func Classify(percentage float64) string {
	switch {
	case percentage >= 90:
		return BandSuperior
	case percentage >= 70:
		return BandAlto
	case percentage >= 50:
		return BandMedio
	default:
		return BandBajo
	}
}
