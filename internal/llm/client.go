// Package llm talks to the LLM Foundry Gemini proxy. The proxy pins the
// endpoint path, bearer auth, and request envelope, so the wire format is
// spelled out here rather than delegated to a provider SDK.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/config"
)

const systemPrompt = "You are an expert Data Science teaching assistant for an online Degree in Data Science program. " +
	"Your task is to provide precise answers to graded assignment questions, ensuring they match exactly what is expected.\n\n" +
	"Key guidelines:\n" +
	"1. Provide exact answers without additional text or explanations.\n" +
	"2. For numerical answers, give the exact number.\n" +
	"3. For file-based questions, analyze the provided file information and perform necessary calculations or commands, providing the result.\n" +
	"4. For command outputs, provide the exact output as it would appear, not a description or example. If execution is not possible, give a realistic lookalike output.\n" +
	"5. For Google Sheets formulas, calculate the result and provide the numerical answer.\n" +
	"6. For multi-step questions, break down the steps and provide the final answer."

// Client calls the remote model collaborator.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient builds a Client from app config.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:   cfg.LLM.Endpoint,
		token:      cfg.LLM.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type part struct {
	Text string `json:"text"`
}

type message struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type toolSpec struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generateRequest struct {
	SystemInstruction message          `json:"system_instruction"`
	Contents          []message        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	Tools             []toolSpec       `json:"tools"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// composePrompt builds the user message. The attached-file block is present
// only when a summary exists.
func composePrompt(question, fileInfo string) string {
	attached := ""
	if fileInfo != "" {
		attached = fmt.Sprintf("Attached file information:\n%s\n", fileInfo)
	}
	return fmt.Sprintf("Assignment question: %s\n\n%sPlease provide the exact answer to be entered in the assignment.", question, attached)
}

// GenerateAnswer asks the model for an answer. Every failure mode collapses
// into a descriptive answer string; callers never see an error.
func (c *Client) GenerateAnswer(ctx context.Context, question, fileInfo string) string {
	payload := generateRequest{
		SystemInstruction: message{Parts: []part{{Text: systemPrompt}}},
		Contents:          []message{{Role: "user", Parts: []part{{Text: composePrompt(question, fileInfo)}}}},
		GenerationConfig:  generationConfig{Temperature: 0},
		Tools:             []toolSpec{{}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("Error calling LLM API: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Error calling LLM API: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error calling LLM API: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Sprintf("Error calling LLM API: unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Sprintf("Error calling LLM API: %v", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "Error: Could not extract answer from model response"
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
}
