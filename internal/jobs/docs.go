// Package jobs runs the background work of the delivery service.
//
// DeliveryProcess moves a packaged delivery to delivering and then to
// delivered, waiting a random delay before each step. Processes live only in
// memory and are keyed by order ID, so a second Start for the same order is
// ignored while the first one runs.
//
// ResumeStalledJob is a github.com/robfig/cron/v3 job that looks for packaged
// or delivering records untouched for longer than a threshold and starts a
// process for them. It is the recovery path for processes lost on restart and
// is disabled unless configured.
//
// JobManager starts and stops both.
package jobs
