package model

type Analysis struct {
    RunID               string   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
    Provider            string   `json:"provider,omitempty" yaml:"provider,omitempty"`
    Model               string   `json:"model,omitempty" yaml:"model,omitempty"`
    PromptVersion       string   `json:"prompt_version,omitempty" yaml:"prompt_version,omitempty"`
    SecurityScore       int      `json:"security_score" yaml:"security_score"`
    OptimizationScore   int      `json:"optimization_score" yaml:"optimization_score"`
    Metrics             Metrics  `json:"optimization_metrics" yaml:"optimization_metrics"`
    Issues              string   `json:"issues,omitempty" yaml:"issues,omitempty"`
    IssueList           []Issue  `json:"issue_list,omitempty" yaml:"issue_list,omitempty"`
    OptimizedDockerfile string   `json:"optimized_dockerfile" yaml:"optimized_dockerfile"`
    Warnings            []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type Issue struct {
    Severity       string `json:"severity" yaml:"severity"`
    Category       string `json:"category" yaml:"category"`
    Description    string `json:"description" yaml:"description"`
    Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
    LineNumber     int    `json:"line_number,omitempty" yaml:"line_number,omitempty"`
}

type Metrics struct {
    LayerCount           int    `json:"layer_count" yaml:"layer_count"`
    EstimatedSize        string `json:"estimated_size" yaml:"estimated_size"`
    CacheEfficiency      int    `json:"cache_efficiency" yaml:"cache_efficiency"`
    BuildTimeScore       int    `json:"build_time_score" yaml:"build_time_score"`
    MaintainabilityScore int    `json:"maintainability_score" yaml:"maintainability_score"`
}

// UnknownSize is reported when the model gives no image size estimate.
const UnknownSize = "unknown"
