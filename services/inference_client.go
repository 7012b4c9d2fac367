package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Isann22/NutriTrack-Backend/models"
)

// InferenceClient calls the model-serving service that hosts the energy and
// per-meal nutrient models. It implements EnergyPredictor and
// NutrientPredictor.
type InferenceClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewInferenceClient(baseURL, token string, timeout time.Duration) *InferenceClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &InferenceClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

type energyRequest struct {
	Features []float64 `json:"features"`
}

type energyResponse struct {
	Prediction *float64 `json:"prediction"`
}

type nutrientRequest struct {
	Meal     models.MealSlot `json:"meal"`
	Calories float64         `json:"calories"`
}

type nutrientResponse struct {
	Nutrients map[string]float64 `json:"nutrients"`
}

func (c *InferenceClient) PredictEnergy(ctx context.Context, features FeatureVector) (float64, error) {
	var out energyResponse
	if err := c.post(ctx, "/predict/energy", energyRequest{Features: features.Slice()}, &out); err != nil {
		return 0, err
	}
	if out.Prediction == nil {
		return 0, fmt.Errorf("%w: energy response has no prediction", ErrPredictor)
	}
	return *out.Prediction, nil
}

func (c *InferenceClient) PredictNutrients(ctx context.Context, slot models.MealSlot, calories float64) (models.NutrientValues, error) {
	var out nutrientResponse
	if err := c.post(ctx, "/predict/nutrients", nutrientRequest{Meal: slot, Calories: calories}, &out); err != nil {
		return nil, err
	}
	if len(out.Nutrients) == 0 {
		return nil, fmt.Errorf("%w: empty nutrient prediction for %s", ErrPredictor, slot)
	}
	nut, err := models.ParseNutrientValues(out.Nutrients)
	if err != nil {
		return nil, fmt.Errorf("%w: %s nutrients: %v", ErrPredictor, slot, err)
	}
	return nut, nil
}

func (c *InferenceClient) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal inference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: inference request error: %v", ErrPredictor, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read inference response error: %v", ErrPredictor, err)
	}

	// Non-200 => surface the server's error body ({"error": "..."} or plain text)
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: inference api error (%d): %s", ErrPredictor, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: inference api error (%d): %s", ErrPredictor, resp.StatusCode, preview(respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("%w: decode inference response error: %v | body: %s", ErrPredictor, err, preview(respBytes))
	}
	return nil
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
