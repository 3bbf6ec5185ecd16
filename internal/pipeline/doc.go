// Package pipeline runs the collection steps of a system report in order.
//
// Each report section (kernel, memory, disk) is a Step that fills part of a
// model.Snapshot. Steps run one after another, in report order, and a
// failing step never stops the ones after it: the failure is logged as a
// diagnostic and recorded in the snapshot.
package pipeline
