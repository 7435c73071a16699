package score

// Bucket is the presentation band of a score.
type Bucket int

const (
	Poor      Bucket = iota // 0-199
	Low                     // 200-399
	Medium                  // 400-599
	Good                    // 600-799
	Excellent               // 800-999
	Exact                   // 1000
)

var bucketNames = [...]string{"poor", "low", "medium", "good", "excellent", "perfect"}

func (b Bucket) String() string {
	if b < Poor || b > Exact {
		return "unknown"
	}
	return bucketNames[b]
}

// BucketOf returns the band a score belongs to.
func BucketOf(score int) Bucket {
	switch {
	case score >= Perfect:
		return Exact
	case score >= 800:
		return Excellent
	case score >= 600:
		return Good
	case score >= 400:
		return Medium
	case score >= 200:
		return Low
	default:
		return Poor
	}
}

// Color returns the style class used to paint a score.
func Color(score int) string {
	return "score-" + BucketOf(score).String()
}

var emojis = [...]string{"🧊", "🥶", "🙂", "👍", "🔥", "🎉"}

// Emoji returns the emoji shown next to a score.
func Emoji(score int) string {
	return emojis[BucketOf(score)]
}

var labels = [...]string{"Muy lejos", "Lejos", "Regular", "Bien", "Excelente", "PERFECTO!"}

// Label returns the human readable label of a score.
func Label(score int) string {
	return labels[BucketOf(score)]
}
