// Package operations runs conversion jobs.
//
// A job passes through five stages, each executed in its own trace span:
//
//	read → parse → build → render → write
//
// The table is rendered in memory, so the output file is only touched once every
// earlier stage has succeeded. Manager.Run executes one job; Manager.RunBatch
// runs the jobs of a YAML manifest concurrently with a bounded errgroup.
//
// # Usage
//
//	manager := operations.NewManager(logger, operations.WithTelemetry(tel))
//	job := operations.JobFromConfig(cfg.Converter)
//	job.Input, job.Output = "table one.txt", "table1.tex"
//	result, err := manager.Run(ctx, &job)
//
// # Error Handling
//
// Stage failures are wrapped in a StageError naming the stage and job. The
// underlying error stays reachable with errors.As, e.g. to detect an
// UnevenValuePairingError from the build stage.
package operations
