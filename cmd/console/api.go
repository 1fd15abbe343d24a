package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/session"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// CreateSessionRequest matches the API request structure
type CreateSessionRequest struct {
	Name       string `json:"name"`
	Favorite   string `json:"favorite,omitempty"`
	TargetCard string `json:"target_card,omitempty"`
}

// StartEncounterRequest matches the API request structure
type StartEncounterRequest struct {
	Zone       string `json:"zone,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Influencer string `json:"influencer,omitempty"`
	Champion   bool   `json:"champion,omitempty"`
}

type PersuadeRequest struct {
	Move string `json:"move"`
}

type OfferRequest struct {
	Amount float64 `json:"amount"`
}

type TradeRequest struct {
	OfferedIndices []int   `json:"offered_indices"`
	CashAdd        float64 `json:"cash_add,omitempty"`
	WantedIndices  []int   `json:"wanted_indices"`
}

type SaleRequest struct {
	Indices []int `json:"indices"`
}

// actionResponse is the envelope every encounter action returns. Only the
// fields relevant to the action are populated.
type actionResponse struct {
	Effect  *encounter.MoveEffect `json:"effect,omitempty"`
	Outcome json.RawMessage       `json:"outcome,omitempty"`
	Amount  *float64              `json:"amount,omitempty"`
	Session *session.Session      `json:"session"`
}

func createSession(client *http.Client, baseURL, name, favorite, target string) (*session.Session, error) {
	req := CreateSessionRequest{
		Name:       name,
		Favorite:   favorite,
		TargetCard: target,
	}

	var s session.Session
	if err := postJSON(client, baseURL+"/v1/session", req, &s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

func getSession(client *http.Client, baseURL string, id uuid.UUID) (*session.Session, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/session/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var s session.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &s, nil
}

func startEncounter(client *http.Client, baseURL string, id uuid.UUID, req StartEncounterRequest) (*session.Session, error) {
	var resp actionResponse
	if err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter", baseURL, id), req, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

func persuade(client *http.Client, baseURL string, id uuid.UUID, move string) (*encounter.MoveEffect, *session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/persuade", baseURL, id), PersuadeRequest{Move: move}, &resp)
	if err != nil {
		return nil, nil, err
	}
	return resp.Effect, resp.Session, nil
}

func makeOffer(client *http.Client, baseURL string, id uuid.UUID, amount float64) (*encounter.OfferOutcome, *session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/offer", baseURL, id), OfferRequest{Amount: amount}, &resp)
	if err != nil {
		return nil, nil, err
	}
	var outcome encounter.OfferOutcome
	if err := json.Unmarshal(resp.Outcome, &outcome); err != nil {
		return nil, nil, fmt.Errorf("failed to parse offer outcome: %w", err)
	}
	return &outcome, resp.Session, nil
}

func proposeTrade(client *http.Client, baseURL string, id uuid.UUID, req TradeRequest) (*encounter.TradeOutcome, *session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/trade", baseURL, id), req, &resp)
	if err != nil {
		return nil, nil, err
	}
	var outcome encounter.TradeOutcome
	if err := json.Unmarshal(resp.Outcome, &outcome); err != nil {
		return nil, nil, fmt.Errorf("failed to parse trade outcome: %w", err)
	}
	return &outcome, resp.Session, nil
}

func quoteSale(client *http.Client, baseURL string, id uuid.UUID, indices []int) (float64, *session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/sale", baseURL, id), SaleRequest{Indices: indices}, &resp)
	if err != nil {
		return 0, nil, err
	}
	if resp.Amount == nil {
		return 0, nil, fmt.Errorf("sale quote response missing amount")
	}
	return *resp.Amount, resp.Session, nil
}

func confirmSale(client *http.Client, baseURL string, id uuid.UUID, indices []int) (float64, *session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/sale/confirm", baseURL, id), SaleRequest{Indices: indices}, &resp)
	if err != nil {
		return 0, nil, err
	}
	if resp.Amount == nil {
		return 0, nil, fmt.Errorf("sale response missing amount")
	}
	return *resp.Amount, resp.Session, nil
}

func walkAway(client *http.Client, baseURL string, id uuid.UUID) (*session.Session, error) {
	var resp actionResponse
	err := postJSON(client, fmt.Sprintf("%s/v1/session/%s/encounter/walkaway", baseURL, id), struct{}{}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// postJSON posts a JSON body and decodes the response into out. Non-2xx
// responses are surfaced as the API's error message.
func postJSON(client *http.Client, url string, in, out interface{}) error {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}
