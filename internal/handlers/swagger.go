package handlers

// @title Luna Chat API
// @version 1.0
// @description Chat endpoint answering in the voice of Luna Vale, with optional external text generation.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @tag.name chat
// @tag.description Conversation with Luna

// @tag.name diagnostics
// @tag.description Deployment smoke tests
