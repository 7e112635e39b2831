package models

// GenerationResult is the structured response of the code-generation service.
type GenerationResult struct {
	// Code is the generated script.
	Code string `json:"code"`
	// Explanation describes how to install and run the script. May contain Markdown.
	Explanation string `json:"explanation"`
}
