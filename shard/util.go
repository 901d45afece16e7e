package shard

// extractHashPrefix returns the content of the first non-empty {...} hash tag,
// or the whole key when there is none.
func extractHashPrefix(key string) string {
	start := -1
	stop := -1
	for i, b := range key {
		if start == -1 && b == '{' {
			start = i
		} else if start >= 0 && stop == -1 && b == '}' {
			stop = i
		}
	}
	if start+1 < stop {
		return key[start+1 : stop]
	}
	return key
}
