package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/rational-approx/internal/config"
	"github.com/iwvelando/rational-approx/internal/conversion"
	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the conversion API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single ad-hoc conversion (JSON body)
	mux.HandleFunc("/api/convert", h.handleConvert)

	// Batch conversion from an uploaded YAML config
	mux.HandleFunc("/api/batch", h.handleBatch)

	// Config serialization endpoint for canonical YAML downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type convertRequest struct {
	Name      string   `json:"name,omitempty"`
	Value     *float64 `json:"value"`
	Precision float64  `json:"precision,omitempty"`
	Width     int      `json:"width,omitempty"`
}

type convertResponse struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Precision   float64 `json:"precision"`
	Width       int     `json:"width"`
	Numerator   int64   `json:"numerator"`
	Denominator int64   `json:"denominator"`
	Fraction    string  `json:"fraction"`
	Float       float64 `json:"float"`
	Residual    float64 `json:"residual"`

	InLowestTerms bool   `json:"inLowestTerms"`
	Iterations    int    `json:"iterations"`
	Converged     bool   `json:"converged"`
	Duration      string `json:"duration,omitempty"`
}

type batchResponse struct {
	Targets     []string               `json:"targets"`
	Conversions []convertResponse      `json:"conversions"`
	CSV         string                 `json:"csv"`
	Warnings    []string               `json:"warnings,omitempty"`
	Duration    string                 `json:"duration"`
	Config      map[string]interface{} `json:"config,omitempty"`
	ConfigYAML  string                 `json:"configYaml,omitempty"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleConvert")
		return
	}
	if req.Value == nil {
		h.respondError(w, http.StatusBadRequest, "missing value", "server.handleConvert")
		return
	}

	target := config.Target{
		Name:      req.Name,
		Value:     *req.Value,
		Precision: req.Precision,
		Width:     req.Width,
	}
	if target.Name == "" {
		target.Name = "ad hoc"
	}
	if target.Precision == 0 {
		target.Precision = constants.DefaultTargetPrecision
	}
	if target.Width == 0 {
		target.Width = constants.DefaultWidth
	}

	result, err := conversion.Convert(h.logger, target)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleConvert")
		return
	}

	elapsed := time.Since(start)
	response := toConvertResponse(result)
	response.Duration = elapsed.String()

	h.logger.Info("conversion computed",
		zap.String("op", "server.handleConvert"),
		zap.String("fraction", result.Text),
		zap.Bool("converged", result.Converged),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleBatch")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleBatch")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", "server.handleBatch")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleBatch"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleBatch")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleBatch")
		return
	}

	h.runBatch(w, configBytes, configMap, start, "server.handleBatch")
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) runBatch(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	cfg.ApplyDefaults()
	warnings := cfg.ValidateConfiguration()

	results, err := conversion.GetConversions(h.logger, cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute conversions: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := batchResponse{
		Targets:     extractTargetNames(results),
		Conversions: buildConversionResponses(results),
		CSV:         output.CsvString(results),
		Warnings:    warnings,
		Duration:    elapsed.String(),
		Config:      configMap,
		ConfigYAML:  string(configBytes),
	}

	h.logger.Info("batch computed",
		zap.String("op", op),
		zap.Int("targets", len(response.Targets)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// marshalOrderedConfigYAML renders a config map as YAML with the
// logging, output, and defaults sections first and the remaining keys
// in sorted order, so exported configs diff cleanly.
func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "defaults"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("conversion request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func extractTargetNames(results []conversion.Conversion) []string {
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	return names
}

func buildConversionResponses(results []conversion.Conversion) []convertResponse {
	responses := make([]convertResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, toConvertResponse(result))
	}
	return responses
}

func toConvertResponse(result conversion.Conversion) convertResponse {
	return convertResponse{
		Name:        result.Name,
		Value:       result.Value,
		Precision:   result.Precision,
		Width:       result.Width,
		Numerator:   result.Numerator,
		Denominator: result.Denominator,
		Fraction:    result.Text,
		Float:       result.Float,
		Residual:    result.Residual,

		InLowestTerms: result.InLowestTerms,
		Iterations:    result.Iterations,
		Converged:     result.Converged,
	}
}
