package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/assetorbit/engine/pkg/models/api"
	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/services/transform/excel"
	"github.com/assetorbit/engine/pkg/services/transform/ninjaone"
	"github.com/assetorbit/engine/pkg/services/transform/telus"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ActiveRules(ctx context.Context) ([]domain.WorkloadCategoryRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WorkloadCategoryRule), args.Error(1)
}

func (m *mockCatalog) Categories(ctx context.Context, includeInactive bool) ([]domain.WorkloadCategory, error) {
	args := m.Called(ctx, includeInactive)
	return args.Get(0).([]domain.WorkloadCategory), args.Error(1)
}

func (m *mockCatalog) SaveCategory(ctx context.Context, category domain.WorkloadCategory) (domain.WorkloadCategory, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(domain.WorkloadCategory), args.Error(1)
}

func (m *mockCatalog) SaveRule(ctx context.Context, rule domain.WorkloadCategoryRule) (domain.WorkloadCategoryRule, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(domain.WorkloadCategoryRule), args.Error(1)
}

func (m *mockCatalog) DeactivateCategory(ctx context.Context, category domain.WorkloadCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	registry, err := transform.NewRegistry(transform.Config{}, ninjaone.New(), telus.New(), excel.New())
	require.NoError(t, err)

	catalog := new(mockCatalog)
	categoryID := uuid.New()
	ruleID := uuid.New()

	webAPI := NewWebAPI(logger, Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			Registry: registry,
			Engine:   rules.NewEngine(),
			Catalog:  catalog,
		},
	})
	testServer := httptest.NewServer(webAPI.Router())
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "ListSources",
			method:         http.MethodGet,
			path:           "/api/v1/sources",
			expectedStatus: http.StatusOK,
			expected:       []api.Source{{ID: "EXCEL"}, {ID: "NINJAONE"}, {ID: "TELUS"}},
			parseResponse:  unmarshalResponse[[]api.Source](),
		},
		{
			name:           "GetColumnMappings_UnknownSource",
			method:         http.MethodGet,
			path:           "/api/v1/sources/JAMF/mappings",
			expectedStatus: http.StatusNotFound,
			expected:       map[string]string{"error": `source "JAMF" is not supported`},
			parseResponse:  unmarshalResponse[map[string]string](),
		},
		{
			name:   "TransformRows",
			method: http.MethodPost,
			path:   "/api/v1/sources/TELUS/transform",
			body: api.TransformRequest{
				Rows: []map[string]string{{
					"Device Name":     "SAMSUNG GALAXY S23 128GB",
					"IMEI":            "356938035643809",
					"Subscriber Name": "John Smith",
					"Phone Number":    "(604) 555-0123",
				}},
			},
			expectedStatus: http.StatusOK,
			expected: api.TransformResponse{
				Source: "TELUS",
				Results: []api.TransformationResult{{
					DirectFields: api.DirectFields{
						AssetTag:     "TEL-JOHNSMITH",
						SerialNumber: "356938035643809",
						Model:        "GALAXY S23 128GB",
						Make:         "SAMSUNG",
						AssetType:    "PHONE",
						Status:       "ASSIGNED",
						Source:       "TELUS",
					},
					Specifications: map[string]string{
						"imei":         "356938035643809",
						"storage":      "128 GB",
						"carrier":      "Telus",
						"phoneNumber":  "6045550123",
						"assignedUser": "John Smith",
					},
					ValidationErrors: []string{},
				}},
			},
			parseResponse: unmarshalResponse[api.TransformResponse](),
		},
		{
			name:   "ValidateFields_MissingMandatory",
			method: http.MethodPost,
			path:   "/api/v1/sources/EXCEL/validate",
			body: api.ValidateRequest{
				DirectFields: api.DirectFields{AssetTag: "BGC-001"},
			},
			expectedStatus: http.StatusOK,
			expected: api.ValidateResponse{
				IsValid: false,
				Errors:  []string{`field "serialNumber" is required for source EXCEL`},
			},
			parseResponse: unmarshalResponse[api.ValidateResponse](),
		},
		{
			name:   "Classify_InlineRules",
			method: http.MethodPost,
			path:   "/api/v1/classify",
			body: api.ClassifyRequest{
				Assets: []map[string]any{
					{"assetType": "LAPTOP", "specifications": map[string]any{"ram": "16 GB"}},
					{"assetType": "PHONE"},
				},
				Rules: []api.Rule{{
					ID:          ruleID.String(),
					CategoryID:  categoryID.String(),
					Priority:    1,
					SourceField: "assetType",
					Operator:    "=",
					Value:       "laptop",
					IsActive:    true,
				}},
			},
			expectedStatus: http.StatusOK,
			expected: api.ClassifyResponse{
				Results: []api.Classification{
					{Matched: true, CategoryID: categoryID.String(), RuleID: ruleID.String()},
					{Matched: false},
				},
			},
			parseResponse: unmarshalResponse[api.ClassifyResponse](),
		},
		{
			name:   "Classify_StoredRules",
			method: http.MethodPost,
			path:   "/api/v1/classify",
			body: api.ClassifyRequest{
				Assets: []map[string]any{{"status": "AVAILABLE"}},
			},
			setupMocks: func() {
				catalog.On("ActiveRules", mock.Anything).Return(
					[]domain.WorkloadCategoryRule{{
						ID:          ruleID,
						CategoryID:  categoryID,
						Priority:    1,
						SourceField: "status",
						Operator:    domain.OperatorEquals,
						Value:       "AVAILABLE",
						IsActive:    true,
					}},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expected: api.ClassifyResponse{
				Results: []api.Classification{
					{Matched: true, CategoryID: categoryID.String(), RuleID: ruleID.String()},
				},
			},
			parseResponse: unmarshalResponse[api.ClassifyResponse](),
		},
		{
			name:   "Classify_UnknownOperatorRejected",
			method: http.MethodPost,
			path:   "/api/v1/classify",
			body: api.ClassifyRequest{
				Assets: []map[string]any{{"assetType": "LAPTOP"}},
				Rules: []api.Rule{{
					CategoryID:  categoryID.String(),
					Priority:    1,
					SourceField: "assetType",
					Operator:    "~",
					Value:       "LAPTOP",
					IsActive:    true,
				}},
			},
			expectedStatus: http.StatusBadRequest,
			expected:       map[string]string{"error": `rule has unknown operator "~"`},
			parseResponse:  unmarshalResponse[map[string]string](),
		},
		{
			name:   "TestRule_Match",
			method: http.MethodPost,
			path:   "/api/v1/rules/test",
			body: api.RuleTestRequest{
				SourceField: "specifications.ram",
				Operator:    ">=",
				Value:       "64",
				Sample: map[string]any{
					"specifications": map[string]any{"ram": "96 GB"},
				},
			},
			expectedStatus: http.StatusOK,
			expected: api.RuleTestResponse{
				Result:      true,
				Explanation: `specifications.ram ("96 GB") is at least "64"? -> true`,
			},
			parseResponse: unmarshalResponse[api.RuleTestResponse](),
		},
		{
			name:           "TransformRows_MalformedBody",
			method:         http.MethodPost,
			path:           "/api/v1/sources/EXCEL/transform",
			body:           json.RawMessage(`{"rows": "not-an-array"}`),
			expectedStatus: http.StatusBadRequest,
			expected:       map[string]string{"error": "invalid request body"},
			parseResponse:  unmarshalResponse[map[string]string](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setupMocks != nil {
				tc.setupMocks()
			}

			var reqBody io.Reader
			if tc.body != nil {
				payload, err := json.Marshal(tc.body)
				require.NoError(t, err)
				reqBody = bytes.NewReader(payload)
			}

			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, reqBody)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			if tc.expected != nil {
				assert.Equal(t, tc.expected, actual)
			}
		})
	}

	t.Run("TestRule_BrokenRegex reports the pattern error", func(t *testing.T) {
		payload, err := json.Marshal(api.RuleTestRequest{
			SourceField: "model",
			Operator:    "regex",
			Value:       "(unterminated",
			Sample:      map[string]any{"model": "Latitude 5540"},
		})
		require.NoError(t, err)

		resp, err := http.Post(testServer.URL+"/api/v1/rules/test", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		var result api.RuleTestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.False(t, result.Result)
		assert.NotEmpty(t, result.Error)
	})

	catalog.AssertExpectations(t)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
