package capture

// DarkRatio returns the share of bytes below the black level threshold.
// For packed YUV and grey frames this approximates the share of dark pixels.
func DarkRatio(img []byte) float64 {
	total := len(img)
	if total == 0 {
		return 0
	}
	dark := 0
	for i := 0; i < total; i++ {
		if img[i] < 80 {
			dark++
		}
	}
	return float64(dark) / float64(total)
}

// HasGoodBlackLevel reports whether a frame is neither mostly dark nor
// washed out.
func HasGoodBlackLevel(img []byte) bool {
	darkness := DarkRatio(img)
	return darkness > 0.1 && darkness < 0.7
}
