package api

// Rule is a classification rule as exchanged over the API.
type Rule struct {
	ID          string `json:"id,omitempty"`
	CategoryID  string `json:"categoryId"`
	Priority    int    `json:"priority"`
	SourceField string `json:"sourceField"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	IsActive    bool   `json:"isActive"`
}

// ClassifyRequest carries resolved asset field sets to classify. When Rules
// is empty the stored active rule set is used.
type ClassifyRequest struct {
	Assets []map[string]any `json:"assets"`
	Rules  []Rule           `json:"rules,omitempty"`
}

// Classification is the verdict for one asset.
type Classification struct {
	Matched    bool   `json:"matched"`
	CategoryID string `json:"categoryId,omitempty"`
	RuleID     string `json:"ruleId,omitempty"`
}

// ClassifyResponse returns one classification per submitted asset, in order.
type ClassifyResponse struct {
	Results []Classification `json:"results"`
}

// RuleTestRequest carries a single rule condition plus sample field values.
type RuleTestRequest struct {
	SourceField string         `json:"sourceField"`
	Operator    string         `json:"operator"`
	Value       string         `json:"value"`
	Sample      map[string]any `json:"sample"`
}

// RuleTestResponse is the Test/Explain outcome.
type RuleTestResponse struct {
	Result      bool   `json:"result"`
	Error       string `json:"error,omitempty"`
	Explanation string `json:"explanation"`
}
