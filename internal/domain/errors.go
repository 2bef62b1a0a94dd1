package domain

import "errors"

var (
	// ErrCatalogNotFound signals an unknown catalog identifier.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrPackNotFound signals an unknown domain pack identifier.
	ErrPackNotFound = errors.New("domain pack not found")
	// ErrInvalidCatalog signals a catalog file failing schema validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidPack signals a domain pack file failing schema validation.
	ErrInvalidPack = errors.New("invalid domain pack")
	// ErrIntentUnresolved signals free text no router could map to an operation.
	ErrIntentUnresolved = errors.New("intent unresolved")
	// ErrChatNotConfigured signals a missing LLM client for an LLM-backed operation.
	ErrChatNotConfigured = errors.New("chat client not configured")
	// ErrChatProviderError signals an LLM provider failure.
	ErrChatProviderError = errors.New("chat provider error")
	// ErrAnalyticsDisabled signals an analytics call with no event store configured.
	ErrAnalyticsDisabled = errors.New("analytics disabled")
)
