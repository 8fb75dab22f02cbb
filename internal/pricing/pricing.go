package pricing

// Credit costs for every billable operation. These tables are the single
// source of truth for both the UI estimate and the server-side charge, so the
// two call sites can never disagree.

type QualityTier string

const (
	QualityStandard QualityTier = "standard"
	Quality4K       QualityTier = "4k"
	Quality8K       QualityTier = "8k"
)

type VideoResolution string

const (
	Resolution480p  VideoResolution = "480p"
	Resolution720p  VideoResolution = "720p"
	Resolution1080p VideoResolution = "1080p"
)

const (
	ImageToImageCost = 0.5
	LoraTrainingCost = 8.0

	// Fallback when a resolution/duration pair is not in the table.
	imageToVideoDefaultCost = 1.0
)

var textToImageCosts = map[QualityTier]float64{
	QualityStandard: 0.25,
	Quality4K:       0.5,
	Quality8K:       1.5,
}

type videoKey struct {
	Resolution VideoResolution
	Duration   int
}

var imageToVideoCosts = map[videoKey]float64{
	{Resolution480p, 5}:   0.5,
	{Resolution480p, 10}:  1.0,
	{Resolution720p, 5}:   1.0,
	{Resolution720p, 10}:  2.0,
	{Resolution1080p, 5}:  2.0,
	{Resolution1080p, 10}: 4.0,
}

// TextToImageCost returns the per-request cost for a text-to-image spend.
// Unknown tiers price as standard, a count below one prices as one.
func TextToImageCost(tier QualityTier, numImages int) float64 {
	perImage, ok := textToImageCosts[tier]
	if !ok {
		perImage = textToImageCosts[QualityStandard]
	}
	if numImages < 1 {
		numImages = 1
	}
	return perImage * float64(numImages)
}

// ImageToVideoCost returns the cost for a resolution/duration pair, falling
// back to the default cost for unrecognized combinations.
func ImageToVideoCost(resolution VideoResolution, durationSeconds int) float64 {
	if cost, ok := imageToVideoCosts[videoKey{resolution, durationSeconds}]; ok {
		return cost
	}
	return imageToVideoDefaultCost
}
