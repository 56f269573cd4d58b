package repository

import (
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrMissingCMFKey = errors.New("falta CMF_API_KEY en la configuración")

// CMFClient reads the current UF from the CMF public API.
type CMFClient struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewCMFClient(apiURL, apiKey string, timeout time.Duration) *CMFClient {
	return &CMFClient{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
	}
}

type cmfResponse struct {
	UFs []struct {
		Valor string `json:"Valor"`
		Fecha string `json:"Fecha"`
	} `json:"UFs"`
}

func (c *CMFClient) FetchCurrent(ctx context.Context) (*entities.UFValue, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCMFKey
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("formato", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("consultando UF: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultando UF: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("consultando UF: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewUpstreamError(resp.StatusCode, "Error al consultar UF", "").
			WithBody(strings.TrimSpace(string(raw)))
	}

	var doc cmfResponse
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("respuesta UF inesperada: %w", err)
	}
	if len(doc.UFs) == 0 {
		return nil, errors.New("respuesta UF inesperada")
	}
	value, err := utils.ParseChileanNumber(doc.UFs[0].Valor)
	if err != nil {
		return nil, fmt.Errorf("no se pudo parsear el valor UF: %w", err)
	}
	return &entities.UFValue{ValueCLP: value, Date: doc.UFs[0].Fecha}, nil
}
