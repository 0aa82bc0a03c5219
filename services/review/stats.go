package review

import "math"

// ComputeStats derives the station aggregate from per-rating counts.
// All five ratings are always present in the distribution.
func ComputeStats(counts map[int]int64) (average float64, total int64, distribution map[int]int64) {
	distribution = map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int64
	for rating, n := range counts {
		if rating < 1 || rating > 5 {
			continue
		}
		distribution[rating] = n
		total += n
		sum += int64(rating) * n
	}
	if total == 0 {
		return 0, 0, distribution
	}
	average = math.Round(float64(sum)/float64(total)*10) / 10
	return average, total, distribution
}
