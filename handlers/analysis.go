package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"distrigestion/models"
	"distrigestion/repository"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

const analysisSampleSize = 50

// AnalysisHandler produces an operational summary of the current order set
// with Gemini. The model sees at most analysisSampleSize orders.
type AnalysisHandler struct {
	Repo repository.OrderRepository
}

// AnalysisResult is the shape the model is asked to fill.
type AnalysisResult struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
	Trends      []string `json:"trends"`
}

// AnalyzeOrders sends a snapshot of the order set to Gemini and returns the
// structured result.
func (h *AnalysisHandler) AnalyzeOrders(c *gin.Context) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis not configured"})
		return
	}

	orders, err := h.Repo.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No orders to analyze"})
		return
	}
	if len(orders) > analysisSampleSize {
		orders = orders[:analysisSampleSize]
	}

	result, err := runAnalysis(c, apiKey, orders)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service unavailable"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func runAnalysis(c *gin.Context, apiKey string, orders []models.Order) (*AnalysisResult, error) {
	ctx := c.Request.Context()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	snapshot, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode orders: %w", err)
	}

	prompt := fmt.Sprintf(`You are a logistics analyst for a Spanish distribution company.
Analyze the following delivery orders and respond with ONLY a JSON object:
{
  "summary": string,        // two or three sentences on the overall state of the operation
  "suggestions": [string],  // concrete actions for the dispatch team
  "trends": [string]        // notable patterns by province, status or pending payment
}
Respond in Spanish.

Orders:
%s`, snapshot)

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.3)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}
	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response")
	}

	var parsed AnalysisResult
	if err := json.Unmarshal([]byte(stripMarkdownFences(responseText)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return &parsed, nil
}

// stripMarkdownFences unwraps a ```json ... ``` block when the model adds one.
func stripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}
