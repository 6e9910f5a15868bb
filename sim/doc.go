// Package sim drives the discrete-time simulation of the pad allocation
// protocol.
//
// The coordinator owns the single logical clock. Each tick it first applies
// every network delivery that has come due, then evaluates the move-decision
// rule for every party against that start-of-tick state, and only then
// applies the accepted moves: active parties in ascending id order, silent
// parties after them. Decisions never observe a same-tick move (read then
// apply), and all mutation of the two pieces of shared state, the burned-slot
// ledger and the network queue, happens inside the coordinator.
//
// Active parties are serviced before silent parties so available forward
// progress is never preempted by a yield that was not strictly necessary;
// the ordering affects only how fast waste shrinks, never safety.
//
// A run ends in one of three ways: the burn target n - m*d is reached
// (complete), no party moved across a full tick with nothing left in flight
// (clinch), or the configured tick budget runs out. The last is reported as
// its own outcome, never conflated with success.
package sim
