package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// MaxFileSizeBytes is the maximum image size for synchronous processing (20MB)
const MaxFileSizeBytes = 20 * 1024 * 1024

// GoogleVisionService implements Service using Cloud Vision document text
// detection.
type GoogleVisionService struct {
	client        *vision.ImageAnnotatorClient
	languageHints []string
}

// NewGoogleVisionService creates a new OCR service with credentials from
// environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path or
// GOOGLE_CREDENTIALS JSON in env. Language hints default to vi+fr.
func NewGoogleVisionService(ctx context.Context, languageHints []string) (Service, error) {
	const op = "NewGoogleVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	if len(languageHints) == 0 {
		languageHints = DefaultLanguageHints
	}

	return &GoogleVisionService{
		client:        client,
		languageHints: languageHints,
	}, nil
}

// NewGoogleVisionServiceWithClient creates a service with an explicit client
// (for testing).
func NewGoogleVisionServiceWithClient(client *vision.ImageAnnotatorClient, languageHints []string) Service {
	if len(languageHints) == 0 {
		languageHints = DefaultLanguageHints
	}
	return &GoogleVisionService{client: client, languageHints: languageHints}
}

// RecognizeImage extracts text from a single page image.
func (g *GoogleVisionService) RecognizeImage(ctx context.Context, image io.Reader) (string, error) {
	result, err := g.RecognizeImageWithMetadata(ctx, image)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// RecognizeImageWithMetadata extracts text with confidence and language
// information attached.
func (g *GoogleVisionService) RecognizeImageWithMetadata(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "RecognizeImageWithMetadata"
	startTime := time.Now()

	imgBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read image data")
	}

	if len(imgBytes) > MaxFileSizeBytes {
		return nil, WrapOCRError(op, ErrImageTooLarge, fmt.Sprintf("file size: %d bytes", len(imgBytes)))
	}

	if !strings.HasPrefix(http.DetectContentType(imgBytes), "image/") {
		return nil, WrapOCRError(op, ErrUnsupportedImage, "data is not an image")
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imgBytes},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: g.languageHints,
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	pageResp := resp.Responses[0]
	if pageResp.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", pageResp.Error.Message))
	}

	result, err := g.processAnnotateResponse(pageResp)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to process Vision API response")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)

	return result, nil
}

// processAnnotateResponse extracts text and metadata from a single page
// annotation response.
func (g *GoogleVisionService) processAnnotateResponse(pageResp *visionpb.AnnotateImageResponse) (*Result, error) {
	annotation := pageResp.FullTextAnnotation
	if annotation == nil || strings.TrimSpace(annotation.Text) == "" {
		return nil, ErrEmptyPage
	}

	var confidenceSum float32
	var confidenceCount int
	for _, textAnnotation := range pageResp.TextAnnotations {
		if textAnnotation.Confidence > 0 {
			confidenceSum += textAnnotation.Confidence
			confidenceCount++
		}
	}

	languageSet := make(map[string]bool)
	for _, pageInfo := range annotation.Pages {
		if pageInfo.Property == nil {
			continue
		}
		for _, lang := range pageInfo.Property.DetectedLanguages {
			if lang.LanguageCode != "" {
				languageSet[lang.LanguageCode] = true
			}
		}
	}

	var avgConfidence float32
	if confidenceCount > 0 {
		avgConfidence = confidenceSum / float32(confidenceCount)
	}

	var languages []string
	for lang := range languageSet {
		languages = append(languages, lang)
	}

	return &Result{
		Text:          annotation.Text,
		Confidence:    avgConfidence,
		LanguageCodes: languages,
	}, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionService) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
