// Package order contains the Order aggregate and its assignment state machine.
//
// An order is placed with origin and destination coordinates and a resolved
// travel distance, and starts Unassigned. The only mutation the aggregate
// allows afterwards is the single-shot claim transition to Taken, enforced by
// the Status state machine. Concurrency control for concurrent claims lives
// in the persistence layer (serializable transactions plus a conditional
// status update); the aggregate itself only encodes which transitions are
// legal.
package order
