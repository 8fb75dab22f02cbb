package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://fal.run"

	textToImageModel  = "fal-ai/z-image/turbo/lora"
	imageToImageModel = "fal-ai/z-image/turbo/image-to-image/lora"
	imageToVideoModel = "fal-ai/wan-25-preview/image-to-video"
	loraTrainerModel  = "fal-ai/z-image-trainer"
)

// Client is a synchronous fal.ai inference client. Each call blocks until the
// model finishes or fails, like the hosted subscribe endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Video generation and training run for minutes.
			Timeout: 15 * time.Minute,
		},
	}
}

// ProviderError carries the provider's error detail for logging; the HTTP
// status distinguishes rejected inputs from provider-side failures.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fal: status %d: %s", e.StatusCode, e.Detail)
}

type LoraWeight struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

type TextToImageInput struct {
	Prompt              string       `json:"prompt"`
	ImageSize           string       `json:"image_size,omitempty"`
	NumInferenceSteps   int          `json:"num_inference_steps,omitempty"`
	GuidanceScale       float64      `json:"guidance_scale,omitempty"`
	NumImages           int          `json:"num_images,omitempty"`
	EnableSafetyChecker bool         `json:"enable_safety_checker"`
	Seed                *int64       `json:"seed,omitempty"`
	Loras               []LoraWeight `json:"loras,omitempty"`
}

type ImageToImageInput struct {
	ImageURL            string       `json:"image_url"`
	Prompt              string       `json:"prompt"`
	NegativePrompt      string       `json:"negative_prompt,omitempty"`
	Strength            float64      `json:"strength,omitempty"`
	NumInferenceSteps   int          `json:"num_inference_steps,omitempty"`
	GuidanceScale       float64      `json:"guidance_scale,omitempty"`
	EnableSafetyChecker bool         `json:"enable_safety_checker"`
	Seed                *int64       `json:"seed,omitempty"`
	Loras               []LoraWeight `json:"loras,omitempty"`
}

type ImageToVideoInput struct {
	ImageURL              string `json:"image_url"`
	Prompt                string `json:"prompt"`
	NegativePrompt        string `json:"negative_prompt,omitempty"`
	Duration              string `json:"duration,omitempty"`
	Resolution            string `json:"resolution,omitempty"`
	EnableSafetyChecker   bool   `json:"enable_safety_checker"`
	EnablePromptExpansion bool   `json:"enable_prompt_expansion"`
	AudioURL              string `json:"audio_url,omitempty"`
	Seed                  *int64 `json:"seed,omitempty"`
}

type LoraTrainingInput struct {
	ImageDataURL   string  `json:"image_data_url"`
	Steps          int     `json:"steps,omitempty"`
	LearningRate   float64 `json:"learning_rate,omitempty"`
	TrainingType   string  `json:"training_type,omitempty"`
	DefaultCaption string  `json:"default_caption,omitempty"`
}

type imageResult struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

type videoResult struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

// TextToImage runs the turbo LoRA model and returns the first image URL.
func (c *Client) TextToImage(ctx context.Context, input TextToImageInput) (string, error) {
	if input.ImageSize == "" {
		input.ImageSize = "1024x1024"
	}
	if input.NumInferenceSteps == 0 {
		input.NumInferenceSteps = 4
	}
	if input.GuidanceScale == 0 {
		input.GuidanceScale = 3.5
	}
	if input.NumImages == 0 {
		input.NumImages = 1
	}

	var result imageResult
	if err := c.subscribe(ctx, textToImageModel, input, &result); err != nil {
		return "", err
	}
	if len(result.Images) == 0 || result.Images[0].URL == "" {
		return "", &ProviderError{StatusCode: http.StatusOK, Detail: "response contained no image"}
	}
	return result.Images[0].URL, nil
}

// ImageToImage transforms a source image and returns the result URL.
func (c *Client) ImageToImage(ctx context.Context, input ImageToImageInput) (string, error) {
	if input.Strength == 0 {
		input.Strength = 0.8
	}
	if input.NumInferenceSteps == 0 {
		input.NumInferenceSteps = 4
	}
	if input.GuidanceScale == 0 {
		input.GuidanceScale = 3.5
	}

	var result imageResult
	if err := c.subscribe(ctx, imageToImageModel, input, &result); err != nil {
		return "", err
	}
	if len(result.Images) == 0 || result.Images[0].URL == "" {
		return "", &ProviderError{StatusCode: http.StatusOK, Detail: "response contained no image"}
	}
	return result.Images[0].URL, nil
}

// ImageToVideo animates a source image and returns the video URL.
func (c *Client) ImageToVideo(ctx context.Context, input ImageToVideoInput) (string, error) {
	if input.Duration == "" {
		input.Duration = "5"
	}
	if input.Resolution == "" {
		input.Resolution = "1080p"
	}
	if input.NegativePrompt == "" {
		input.NegativePrompt = "low resolution, error, worst quality, low quality, defects"
	}
	input.EnablePromptExpansion = true

	var result videoResult
	if err := c.subscribe(ctx, imageToVideoModel, input, &result); err != nil {
		return "", err
	}
	if result.Video.URL == "" {
		return "", &ProviderError{StatusCode: http.StatusOK, Detail: "response contained no video"}
	}
	return result.Video.URL, nil
}

// TrainLora submits a fine-tuning job. The trained model is delivered
// out-of-band; a nil error only means the job was accepted and ran.
func (c *Client) TrainLora(ctx context.Context, input LoraTrainingInput) error {
	if input.Steps == 0 {
		input.Steps = 1000
	}
	if input.LearningRate == 0 {
		input.LearningRate = 0.0001
	}
	if input.TrainingType == "" {
		input.TrainingType = "balanced"
	}

	var result json.RawMessage
	return c.subscribe(ctx, loraTrainerModel, input, &result)
}

func (c *Client) subscribe(ctx context.Context, model string, input interface{}, out interface{}) error {
	jsonBody, err := json.Marshal(input)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		detail := parseErrorDetail(bodyBytes)
		return &ProviderError{StatusCode: resp.StatusCode, Detail: detail}
	}

	return json.Unmarshal(bodyBytes, out)
}

func parseErrorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		return fmt.Sprintf("%v", payload.Detail)
	}
	return string(body)
}
