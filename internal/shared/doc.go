// Package shared holds code used across jobpulse packages that belongs to
// no single layer.
//
// The testutil subpackage provides a buffered slog handler with assertions
// and JobListing fixtures for tests:
//
//	logger, logs := testutil.NewTestLogger(t)
//	svc := newService(testutil.JobsDataset(testutil.HundredJobs()), logger)
//	testutil.AssertNoErrors(t, logs)
package shared
