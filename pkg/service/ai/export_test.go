package ai

// Classify exposes the error classifier to tests
var Classify = classify
