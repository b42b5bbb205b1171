package models

type AnalyzeResponse struct {
	Success bool `json:"success"`
	AnalysisResult
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
