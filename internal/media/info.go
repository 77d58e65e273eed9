package media

// Info is the probed shape of a media file.
type Info struct {
	Duration float64
	Width    int
	Height   int
	FPS      float64
	HasAudio bool
}
