package util

// sum the vector
func Float32VectorSum(data []float32) float32 {
	sum := float32(0.0)
	for _, d := range data {
		sum += d
	}
	return sum
}
