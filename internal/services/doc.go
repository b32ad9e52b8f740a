// Package services implements the business logic between the HTTP handlers
// and the dataset store.
//
// # Services
//
//	EmploymentService  filter, paginate, summarise, aggregate and export
//	                   job listings from a dataset.Store
//	HealthService      liveness, readiness and version reporting
//
// Services take their dependencies through constructors, log with an
// injected *slog.Logger tagged with a component name, and accept a
// context.Context on every operation that touches the dataset.
//
// Errors returned to handlers are the sentinels in errors.go, wrapped with
// fmt.Errorf so handlers can match them with errors.Is.
package services
