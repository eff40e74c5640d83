package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// QueryAPI is the client for the natural-language query service. The service
// is a stub with exactly one round trip: a free-text question in, a single
// answer out.
type QueryAPI struct {
	session *Session
}

// NewQueryAPI returns the natural-language query client for the session.
func NewQueryAPI(session *Session) *QueryAPI {
	return &QueryAPI{session: session}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer       string   `json:"answer"`
	RelevantData []Record `json:"relevant_data"`
}

// Ask sends a question and returns the service's answer plus whatever records
// it considered relevant.
func (api *QueryAPI) Ask(ctx context.Context, question string) (string, RecordSet, error) {
	base := api.session.Config().QueryAPIURL
	if base == "" {
		return "", nil, errors.New("query service URL is not configured")
	}
	payload, err := json.Marshal(queryRequest{Query: question})
	if err != nil {
		return "", nil, err
	}
	reqURL := base + "/llm/"
	raw, err := api.session.request(ctx, http.MethodPost, reqURL, applicationJson, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	var resp queryResponse
	if err := decodeInto(http.MethodPost, reqURL, raw, &resp); err != nil {
		return "", nil, err
	}
	return resp.Answer, resp.RelevantData, nil
}
