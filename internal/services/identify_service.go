package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/plantlady/plantlady-api/internal/config"
	"github.com/plantlady/plantlady-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrIdentifyUnavailable = errors.New("plant identification service not configured")
	ErrIdentifyFailed      = errors.New("plant identification service error")
)

// --- Anthropic messages API types (internal) ---

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type identifyResult struct {
	CommonName     string   `json:"common_name"`
	ScientificName string   `json:"scientific_name"`
	Description    string   `json:"description"`
	Confidence     float64  `json:"confidence"`
	CareTips       []string `json:"care_tips"`
}

const identifyPrompt = `You are a plant identification expert. Analyze this image and identify the plant.

Return your response as a JSON object with exactly these fields:
- "common_name": the most common English name for this plant
- "scientific_name": the Latin/binomial scientific name
- "description": a 1-2 sentence description of the plant and its notable features
- "confidence": a number between 0.0 and 1.0 representing how confident you are in the identification (be honest — use lower values if the image is unclear or the plant is hard to distinguish)
- "care_tips": an array of 3-5 short care tips for this plant

Return ONLY the JSON object, no other text or markdown formatting.`

// IdentifyService sends plant photos to the Anthropic vision API and
// persists the structured result. A missing API key or an upstream
// failure is surfaced as a distinct condition, never defaulted.
type IdentifyService struct {
	db     *gorm.DB
	cfg    *config.Config
	client *http.Client
}

func NewIdentifyService(db *gorm.DB, cfg *config.Config) *IdentifyService {
	return &IdentifyService{
		db:  db,
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.VisionTimeout,
		},
	}
}

// Identify submits the image and returns the stored identification.
func (s *IdentifyService) Identify(userID uint, image []byte, mediaType string) (*models.Identification, error) {
	if s.cfg.AnthropicAPIKey == "" {
		return nil, ErrIdentifyUnavailable
	}

	result, err := s.callVision(image, mediaType)
	if err != nil {
		return nil, err
	}

	tips, err := json.Marshal(result.CareTips)
	if err != nil {
		return nil, fmt.Errorf("failed to encode care tips: %w", err)
	}

	ident := models.Identification{
		UserID:         userID,
		CommonName:     result.CommonName,
		ScientificName: result.ScientificName,
		Description:    result.Description,
		Confidence:     result.Confidence,
		CareTips:       datatypes.JSON(tips),
	}
	if err := s.db.Create(&ident).Error; err != nil {
		return nil, fmt.Errorf("failed to store identification: %w", err)
	}
	return &ident, nil
}

func (s *IdentifyService) callVision(image []byte, mediaType string) (*identifyResult, error) {
	reqBody := anthropicRequest{
		Model:     s.cfg.VisionModel,
		MaxTokens: 1024,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContent{
					{
						Type: "image",
						Source: &anthropicImageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						Type: "text",
						Text: identifyPrompt,
					},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.AnthropicAPIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.AnthropicAPIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentifyFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentifyFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrIdentifyFailed, resp.StatusCode)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentifyFailed, err)
	}
	if len(apiResp.Content) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrIdentifyFailed)
	}

	return parseIdentifyText(apiResp.Content[0].Text)
}

// parseIdentifyText extracts the structured result from the model's
// reply, tolerating markdown code fences around the JSON.
func parseIdentifyText(raw string) (*identifyResult, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if _, rest, ok := strings.Cut(text, "\n"); ok {
			text = rest
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	var result identifyResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: unparseable identification response", ErrIdentifyFailed)
	}
	if result.CommonName == "" {
		return nil, fmt.Errorf("%w: unexpected response format", ErrIdentifyFailed)
	}
	if result.CareTips == nil {
		result.CareTips = []string{}
	}
	return &result, nil
}
