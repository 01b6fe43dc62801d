// Package main provides the entry point for the GoEvent-Admin backend.
// It runs a Fiber based web service for an event-management platform:
// durable typed settings with public/private visibility, uploaded asset
// delivery from cloud object storage or local disk with fallback, document
// resolution (redirect, stream or 404), and retried transactional email
// over SMTP. The application uses gorm for data persistence.
package main
