package raster

// Band is a half-open range of surface rows.
type Band struct {
	Y0, Y1 int
}

// Bands splits h rows into at most n contiguous, non-empty bands.
func Bands(h, n int) []Band {
	if h <= 0 {
		return nil
	}
	n = max(1, min(n, h))
	out := make([]Band, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Band{Y0: h * i / n, Y1: h * (i + 1) / n})
	}
	return out
}
