package http

// VerifySlackSignature exposes the signature check to tests
var VerifySlackSignature = verifySlackSignature
