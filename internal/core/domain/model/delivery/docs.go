// Package delivery contains the Delivery aggregate and its status lifecycle.
//
// The package includes:
//   - Delivery: the aggregate root keyed by the order ID it fulfils
//   - Status: the lifecycle state machine and its transition rules
//   - Address: the optional structured destination
//   - Trigger: who asked for a transition (external caller or the delivery process)
//
// Key business rules:
//   - Forward path is pending -> packaged -> delivering -> delivered
//   - Cancellation is allowed from pending and packaged only
//   - delivered and cancelled are terminal
//   - The delivery process advances exactly one step at a time; external
//     status updates may skip forward
//   - Requesting the current status is a successful no-op
//   - The client ID never changes after creation
package delivery
