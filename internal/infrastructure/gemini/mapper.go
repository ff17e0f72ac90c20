package gemini

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/shopassist/backend/internal/domain"
)

// generateRequest is the body of a generateContent call
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// generateResponse is the subset of the generateContent response we read
type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// newTextRequest builds a single-turn text prompt
func newTextRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	}
}

// newImageRequest builds a prompt carrying one inline image
func newImageRequest(image []byte, mimeType, prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}
}

// extractText returns the text of the first part of the first candidate
func extractText(resp *generateResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", domain.ErrExternalService, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: response has no candidates", domain.ErrExternalService)
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content parts", domain.ErrExternalService)
	}

	return strings.TrimSpace(parts[0].Text), nil
}
