package pricing

import (
	"testing"
)

func TestTextToImageCost(t *testing.T) {
	tests := []struct {
		name      string
		tier      QualityTier
		numImages int
		want      float64
	}{
		{name: "standard single", tier: QualityStandard, numImages: 1, want: 0.25},
		{name: "standard batch", tier: QualityStandard, numImages: 4, want: 1.0},
		{name: "4k single", tier: Quality4K, numImages: 1, want: 0.5},
		{name: "8k two images", tier: Quality8K, numImages: 2, want: 3.0},
		{name: "zero count defaults to one", tier: Quality4K, numImages: 0, want: 0.5},
		{name: "negative count defaults to one", tier: Quality8K, numImages: -3, want: 1.5},
		{name: "unknown tier prices as standard", tier: QualityTier("16k"), numImages: 2, want: 0.5},
		{name: "empty tier prices as standard", tier: QualityTier(""), numImages: 1, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextToImageCost(tt.tier, tt.numImages)
			if got != tt.want {
				t.Errorf("TextToImageCost(%q, %d) = %v, want %v", tt.tier, tt.numImages, got, tt.want)
			}
		})
	}
}

func TestImageToVideoCost(t *testing.T) {
	tests := []struct {
		name       string
		resolution VideoResolution
		duration   int
		want       float64
	}{
		{name: "480p 5s", resolution: Resolution480p, duration: 5, want: 0.5},
		{name: "480p 10s", resolution: Resolution480p, duration: 10, want: 1.0},
		{name: "720p 5s", resolution: Resolution720p, duration: 5, want: 1.0},
		{name: "720p 10s", resolution: Resolution720p, duration: 10, want: 2.0},
		{name: "1080p 5s", resolution: Resolution1080p, duration: 5, want: 2.0},
		{name: "1080p 10s", resolution: Resolution1080p, duration: 10, want: 4.0},
		{name: "unknown resolution falls back", resolution: VideoResolution("4k"), duration: 5, want: 1.0},
		{name: "unknown duration falls back", resolution: Resolution720p, duration: 7, want: 1.0},
		{name: "negative duration falls back", resolution: Resolution480p, duration: -5, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageToVideoCost(tt.resolution, tt.duration)
			if got != tt.want {
				t.Errorf("ImageToVideoCost(%q, %d) = %v, want %v", tt.resolution, tt.duration, got, tt.want)
			}
		})
	}
}

func TestFixedCosts(t *testing.T) {
	if ImageToImageCost != 0.5 {
		t.Errorf("ImageToImageCost = %v, want 0.5", ImageToImageCost)
	}
	if LoraTrainingCost != 8.0 {
		t.Errorf("LoraTrainingCost = %v, want 8.0", LoraTrainingCost)
	}
}

func TestFindPackage(t *testing.T) {
	pkg := FindPackage("package_60")
	if pkg == nil {
		t.Fatal("FindPackage(package_60) = nil")
	}
	if pkg.Credits != 60 || pkg.Price != 37.50 || !pkg.Popular {
		t.Errorf("package_60 = %+v, want 60 credits at $37.50, popular", pkg)
	}

	if FindPackage("package_999") != nil {
		t.Error("FindPackage(package_999) should be nil")
	}

	if len(Packages()) != 4 {
		t.Errorf("Packages() returned %d entries, want 4", len(Packages()))
	}
}
